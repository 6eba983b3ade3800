// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"zametka/internal/notes/domain/entities"
)

// ErrDuplicateSlug возвращается хранилищем при нарушении уникального
// индекса на slug. Закрывает гонку между предварительной проверкой и
// конкурентной вставкой.
var ErrDuplicateSlug = errors.New("duplicate slug")

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Note, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, noteID string) error
	Slugs(ctx context.Context, excludeNoteID string) ([]string, error)
}
