// Package api defines use case interfaces exposed to transport adapters.
package api

import (
	"context"

	"zametka/internal/notes/domain/entities"
)

// NoteUseCase определяет сценарии работы пользователя с заметками.
type NoteUseCase interface {
	CreateNote(ctx context.Context, userID, title, text, slug string) (*entities.Note, error)

	GetNote(ctx context.Context, userID, slug string) (*entities.Note, error)

	ListNotes(ctx context.Context, userID string) ([]*entities.Note, error)

	EditNote(ctx context.Context, userID, slug, title, text, newSlug string) (*entities.Note, error)

	DeleteNote(ctx context.Context, userID, slug string) error
}
