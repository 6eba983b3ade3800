// Package dto содержит структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"zametka/internal/notes/domain/entities"
)

// NoteRequest представляет данные формы создания или редактирования заметки.
type NoteRequest struct {
	Title string `form:"title" json:"title"`
	Text  string `form:"text"  json:"text"`
	Slug  string `form:"slug"  json:"slug"`
}

// NoteResponse представляет заметку в ответе API.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteListResponse представляет список заметок пользователя.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// ValidationErrorResponse возвращается при ошибке валидации формы вместе
// с отправленными данными, чтобы форму можно было показать повторно.
type ValidationErrorResponse struct {
	Field string      `json:"field"`
	Error string      `json:"error"`
	Note  NoteRequest `json:"note"`
}

// NewNoteResponse преобразует доменную сущность в ответ API.
func NewNoteResponse(note *entities.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Text:      note.Text,
		Slug:      note.Slug,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// NewNoteListResponse преобразует список сущностей в ответ API.
func NewNoteListResponse(notes []*entities.Note) NoteListResponse {
	out := NoteListResponse{Notes: make([]NoteResponse, 0, len(notes))}
	for _, note := range notes {
		out.Notes = append(out.Notes, NewNoteResponse(note))
	}
	return out
}
