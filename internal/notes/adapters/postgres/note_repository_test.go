package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zametka/internal/notes/adapters/postgres"
	"zametka/internal/notes/domain/entities"
	"zametka/internal/notes/ports/repositories"
	"zametka/pkg/logger"
)

var noteColumns = []string{"id", "author_id", "title", "text", "slug", "created_at", "updated_at"}

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestNoteRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	input := entities.NewNote("author-1", "Заголовок", "Текст заметки", "zagolovok")

	t.Run("Успешное создание заметки", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(input.AuthorID, input.Title, input.Text, input.Slug).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("note-1", input.AuthorID, input.Title, input.Text, input.Slug, now, now))

		repo := postgres.NewNoteRepository(mock)
		created, err := repo.Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "note-1", created.ID)
		assert.Equal(t, "zagolovok", created.Slug)
		assert.Equal(t, now, created.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Нарушение уникального индекса по slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(input.AuthorID, input.Title, input.Text, input.Slug).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "notes_slug_key"})

		repo := postgres.NewNoteRepository(mock)
		created, err := repo.Create(ctx, input)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, repositories.ErrDuplicateSlug)
		assert.Contains(t, err.Error(), "zagolovok")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO notes .+").
			WithArgs(input.AuthorID, input.Title, input.Text, input.Slug).
			WillReturnError(errors.New("database connection error"))

		repo := postgres.NewNoteRepository(mock)
		created, err := repo.Create(ctx, input)

		assert.Nil(t, created)
		assert.ErrorContains(t, err, "failed to create note")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_GetBySlug(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Заметка найдена", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, author_id, title, text, slug, created_at, updated_at FROM notes WHERE slug = .+").
			WithArgs("zagolovok").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("note-1", "author-1", "Заголовок", "Текст заметки", "zagolovok", now, now))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetBySlug(ctx, "zagolovok")

		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, "author-1", note.AuthorID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметки нет - nil без ошибки", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, author_id, title, text, slug, created_at, updated_at FROM notes WHERE slug = .+").
			WithArgs("nope").
			WillReturnRows(pgxmock.NewRows(noteColumns))

		repo := postgres.NewNoteRepository(mock)
		note, err := repo.GetBySlug(ctx, "nope")

		require.NoError(t, err)
		assert.Nil(t, note)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_ListByAuthor(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("Возвращаются только заметки автора", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, author_id, title, text, slug, created_at, updated_at FROM notes WHERE author_id = .+").
			WithArgs("author-1").
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow("note-1", "author-1", "Заголовок", "Текст", "zagolovok", now, now).
				AddRow("note-2", "author-1", "Еще одна", "Текст", "esche-odna", now, now))

		repo := postgres.NewNoteRepository(mock)
		notes, err := repo.ListByAuthor(ctx, "author-1")

		require.NoError(t, err)
		require.Len(t, notes, 2)
		for _, note := range notes {
			assert.Equal(t, "author-1", note.AuthorID)
		}

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустой список без заметок", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, author_id, title, text, slug, created_at, updated_at FROM notes WHERE author_id = .+").
			WithArgs("reader-1").
			WillReturnRows(pgxmock.NewRows(noteColumns))

		repo := postgres.NewNoteRepository(mock)
		notes, err := repo.ListByAuthor(ctx, "reader-1")

		require.NoError(t, err)
		assert.Empty(t, notes)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Update(t *testing.T) {
	ctx := testContext(t)

	note := &entities.Note{
		ID:    "note-1",
		Title: "Новый заголовок",
		Text:  "Новый текст",
		Slug:  "novyi-zagolovok",
	}

	t.Run("Успешное обновление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET .+").
			WithArgs(note.Title, note.Text, note.Slug, note.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Update(ctx, note))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующийся slug при обновлении", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET .+").
			WithArgs(note.Title, note.Text, note.Slug, note.ID).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "notes_slug_key"})

		repo := postgres.NewNoteRepository(mock)
		err = repo.Update(ctx, note)

		assert.ErrorIs(t, err, repositories.ErrDuplicateSlug)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка не существует", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE notes SET .+").
			WithArgs(note.Title, note.Text, note.Slug, note.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewNoteRepository(mock)
		assert.Error(t, repo.Update(ctx, note))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes WHERE id = .+").
			WithArgs("note-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewNoteRepository(mock)
		require.NoError(t, repo.Delete(ctx, "note-1"))

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Заметка не существует", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM notes WHERE id = .+").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewNoteRepository(mock)
		assert.Error(t, repo.Delete(ctx, "missing"))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Slugs(t *testing.T) {
	ctx := testContext(t)

	t.Run("Все slug без исключения", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT slug FROM notes").
			WillReturnRows(pgxmock.NewRows([]string{"slug"}).
				AddRow("zagolovok").
				AddRow("novyi-zagolovok"))

		repo := postgres.NewNoteRepository(mock)
		slugs, err := repo.Slugs(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, []string{"zagolovok", "novyi-zagolovok"}, slugs)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Исключение собственного slug заметки", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT slug FROM notes WHERE id <> .+").
			WithArgs("note-1").
			WillReturnRows(pgxmock.NewRows([]string{"slug"}).AddRow("drugaya"))

		repo := postgres.NewNoteRepository(mock)
		slugs, err := repo.Slugs(ctx, "note-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"drugaya"}, slugs)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
