// Package entities defines the domain entities for the notes service.
package entities

import "time"

// Note представляет собой заметку пользователя.
type Note struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new note owned by the given author.
func NewNote(authorID, title, text, slug string) *Note {
	now := time.Now()
	return &Note{
		AuthorID:  authorID,
		Title:     title,
		Text:      text,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
