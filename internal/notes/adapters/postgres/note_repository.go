// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"zametka/internal/notes/domain/entities"
	"zametka/internal/notes/ports/repositories"
	"zametka/pkg/logger"
)

// uniqueViolationCode - код ошибки Postgres при нарушении уникального индекса.
const uniqueViolationCode = "23505"

// PgxPoolInterface описывает операции пула, используемые репозиторием.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку в БД. Нарушение уникального индекса по slug
// возвращается как repositories.ErrDuplicateSlug.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("authorID", note.AuthorID), zap.String("slug", note.Slug))

	var created entities.Note
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (author_id, title, text, slug)
         VALUES ($1, $2, $3, $4)
         RETURNING id, author_id, title, text, slug, created_at, updated_at`,
		note.AuthorID, note.Title, note.Text, note.Slug,
	).Scan(&created.ID, &created.AuthorID, &created.Title, &created.Text,
		&created.Slug, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "slug already taken", zap.String("slug", note.Slug))
			return nil, fmt.Errorf("slug %q: %w", note.Slug, repositories.ErrDuplicateSlug)
		}
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetBySlug получает заметку по slug. Возвращает nil, nil если заметки нет.
func (r *NoteRepository) GetBySlug(ctx context.Context, slug string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetBySlug"))
	log.Debug(ctx, "getting note", zap.String("slug", slug))

	var note entities.Note
	err := r.pool.QueryRow(ctx,
		`SELECT id, author_id, title, text, slug, created_at, updated_at
         FROM notes
         WHERE slug = $1`,
		slug,
	).Scan(&note.ID, &note.AuthorID, &note.Title, &note.Text,
		&note.Slug, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("slug", slug))
			return nil, nil
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &note, nil
}

// ListByAuthor получает заметки пользователя, новые сверху.
func (r *NoteRepository) ListByAuthor(ctx context.Context, authorID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByAuthor"))
	log.Debug(ctx, "listing notes", zap.String("authorID", authorID))

	rows, err := r.pool.Query(ctx,
		`SELECT id, author_id, title, text, slug, created_at, updated_at
         FROM notes
         WHERE author_id = $1
         ORDER BY updated_at DESC`,
		authorID,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		err := rows.Scan(&note.ID, &note.AuthorID, &note.Title, &note.Text,
			&note.Slug, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update обновляет существующую заметку.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := r.pool.Exec(ctx,
		`UPDATE notes SET title = $1, text = $2, slug = $3, updated_at = now()
         WHERE id = $4`,
		note.Title, note.Text, note.Slug, note.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "slug already taken", zap.String("slug", note.Slug))
			return fmt.Errorf("slug %q: %w", note.Slug, repositories.ErrDuplicateSlug)
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
		return fmt.Errorf("failed to update note: %w", pgx.ErrNoRows)
	}

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", noteID))

	result, err := r.pool.Exec(ctx,
		`DELETE FROM notes WHERE id = $1`,
		noteID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", noteID))
		return fmt.Errorf("failed to delete note: %w", pgx.ErrNoRows)
	}

	return nil
}

// Slugs возвращает slug всех заметок, кроме указанной. Пустой excludeNoteID
// возвращает полный набор.
func (r *NoteRepository) Slugs(ctx context.Context, excludeNoteID string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Slugs"))
	log.Debug(ctx, "loading existing slugs", zap.String("excludeNoteID", excludeNoteID))

	var (
		rows pgx.Rows
		err  error
	)
	if excludeNoteID == "" {
		rows, err = r.pool.Query(ctx, `SELECT slug FROM notes`)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT slug FROM notes WHERE id <> $1`, excludeNoteID)
	}
	if err != nil {
		log.Error(ctx, "failed to load slugs", zap.Error(err))
		return nil, fmt.Errorf("failed to load slugs: %w", err)
	}
	defer rows.Close()

	slugs := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			log.Error(ctx, "failed to scan slug", zap.Error(err))
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return slugs, nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального индекса.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
