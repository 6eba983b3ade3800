// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"zametka/internal/notes/domain/entities"
	"zametka/internal/notes/domain/services"
	"zametka/internal/notes/domain/slug"
	"zametka/internal/notes/ports/cache"
	"zametka/internal/notes/ports/repositories"
	"zametka/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	// ErrNotFound возвращается и когда заметки нет, и когда она принадлежит
	// другому пользователю: эти случаи неразличимы снаружи.
	ErrNotFound = errors.New("note not found")
	// ErrUnauthenticated возвращается для операций без пользователя.
	ErrUnauthenticated = errors.New("authentication required")
)

const cacheKeyPrefix = "notes:list:"

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo  repositories.NoteRepository
	listCache cache.Cache
	cacheTTL  time.Duration
}

// NewNoteUseCase создает новый экземпляр NoteUseCase. Кэш необязателен:
// при nil список всегда читается из хранилища.
func NewNoteUseCase(noteRepo repositories.NoteRepository, listCache cache.Cache, cacheTTL time.Duration) *NoteUseCase {
	return &NoteUseCase{
		noteRepo:  noteRepo,
		listCache: listCache,
		cacheTTL:  cacheTTL,
	}
}

// CreateNote создает новую заметку для пользователя. Если slug не задан,
// он выводится из заголовка. Валидация выполняется до записи; при ошибке
// хранилище не меняется.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, title, text, slugValue string) (*entities.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if err := validateRequired(title, text); err != nil {
		return nil, err
	}

	if slugValue == "" {
		slugValue = slug.Normalize(title)
	}

	existing, err := uc.noteRepo.Slugs(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load existing slugs: %w", err)
	}

	if err := services.ValidateSlug(slugValue, existing); err != nil {
		return nil, err
	}

	note := entities.NewNote(userID, title, text, slugValue)
	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlug) {
			// Конкурентная вставка обошла предварительную проверку;
			// уникальный индекс вернул ту же ошибку поля.
			return nil, services.NewSlugTakenError(slugValue)
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	uc.invalidateList(ctx, userID)
	return created, nil
}

// GetNote возвращает заметку по slug. Чужая заметка неотличима от
// несуществующей.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, slugID string) (*entities.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	note, err := uc.noteRepo.GetBySlug(ctx, slugID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !services.Allowed(userID, note, services.OpView) {
		return nil, ErrNotFound
	}

	return note, nil
}

// ListNotes возвращает заметки пользователя. Список читается через кэш,
// чужие заметки в выдачу не попадают никогда.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if notes, ok := uc.cachedList(ctx, userID); ok {
		return notes, nil
	}

	notes, err := uc.noteRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	uc.storeList(ctx, userID, notes)
	return notes, nil
}

// EditNote обновляет заметку автора. Slug проверяется против всех
// существующих, кроме текущего slug самой заметки.
func (uc *NoteUseCase) EditNote(ctx context.Context, userID, slugID, title, text, newSlug string) (*entities.Note, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	note, err := uc.noteRepo.GetBySlug(ctx, slugID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if !services.Allowed(userID, note, services.OpEdit) {
		return nil, ErrNotFound
	}

	if err := validateRequired(title, text); err != nil {
		return nil, err
	}

	if newSlug == "" {
		newSlug = slug.Normalize(title)
	}

	existing, err := uc.noteRepo.Slugs(ctx, note.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing slugs: %w", err)
	}

	if err := services.ValidateSlug(newSlug, existing); err != nil {
		return nil, err
	}

	note.Title = title
	note.Text = text
	note.Slug = newSlug
	note.UpdatedAt = time.Now()

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSlug) {
			return nil, services.NewSlugTakenError(newSlug)
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	uc.invalidateList(ctx, userID)
	return note, nil
}

// DeleteNote удаляет заметку автора.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, slugID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	note, err := uc.noteRepo.GetBySlug(ctx, slugID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if !services.Allowed(userID, note, services.OpDelete) {
		return ErrNotFound
	}

	if err := uc.noteRepo.Delete(ctx, note.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	uc.invalidateList(ctx, userID)
	return nil
}

// validateRequired проверяет обязательные поля заметки.
func validateRequired(title, text string) error {
	if title == "" {
		return &services.ValidationError{Field: "title", Message: "this field is required"}
	}
	if text == "" {
		return &services.ValidationError{Field: "text", Message: "this field is required"}
	}
	return nil
}

func (uc *NoteUseCase) cachedList(ctx context.Context, userID string) ([]*entities.Note, bool) {
	if uc.listCache == nil {
		return nil, false
	}

	raw, ok, err := uc.listCache.Get(ctx, cacheKeyPrefix+userID)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to read note list from cache", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var notes []*entities.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to decode cached note list", zap.Error(err))
		return nil, false
	}
	return notes, true
}

func (uc *NoteUseCase) storeList(ctx context.Context, userID string, notes []*entities.Note) {
	if uc.listCache == nil {
		return
	}

	raw, err := json.Marshal(notes)
	if err != nil {
		logger.Log(ctx).Warn(ctx, "failed to encode note list for cache", zap.Error(err))
		return
	}
	if err := uc.listCache.Set(ctx, cacheKeyPrefix+userID, string(raw), uc.cacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to store note list in cache", zap.Error(err))
	}
}

func (uc *NoteUseCase) invalidateList(ctx context.Context, userID string) {
	if uc.listCache == nil {
		return
	}

	if err := uc.listCache.Delete(ctx, cacheKeyPrefix+userID); err != nil {
		logger.Log(ctx).Warn(ctx, "failed to invalidate note list cache", zap.Error(err))
	}
}
