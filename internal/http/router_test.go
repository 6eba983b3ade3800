package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authservices "zametka/internal/auth/domain/services"
	httpapp "zametka/internal/http"
	"zametka/internal/notes/app"
	"zametka/internal/notes/domain/entities"
	"zametka/internal/notes/domain/services"
)

const (
	validToken  = "valid-token"
	authorID    = "user-1"
	contentJSON = "application/json"
)

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) CreateNote(ctx context.Context, userID, title, text, slug string) (*entities.Note, error) {
	args := m.Called(ctx, userID, title, text, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) GetNote(ctx context.Context, userID, slug string) (*entities.Note, error) {
	args := m.Called(ctx, userID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) ListNotes(ctx context.Context, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) EditNote(ctx context.Context, userID, slug, title, text, newSlug string) (*entities.Note, error) {
	args := m.Called(ctx, userID, slug, title, text, newSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) DeleteNote(ctx context.Context, userID, slug string) error {
	args := m.Called(ctx, userID, slug)
	return args.Error(0)
}

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, email, username, password string) (*authservices.Session, error) {
	args := m.Called(ctx, email, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authservices.Session), args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, email, password string) (*authservices.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authservices.Session), args.Error(1)
}

// stubTokenService принимает единственный валидный токен.
type stubTokenService struct{}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (string, error) {
	if token == validToken {
		return authorID, nil
	}
	return "", authservices.ErrInvalidJWTToken
}

func newTestApp(noteUC *mockNoteUseCase, authUC *mockAuthUseCase) *fiber.App {
	fiberApp := fiber.New()
	httpapp.SetupRouter(fiberApp, noteUC, authUC, &stubTokenService{}, 15*time.Minute)
	return fiberApp
}

func doRequest(t *testing.T, fiberApp *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, out))
}

func authenticate(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: "access_token", Value: validToken})
	return req
}

func TestAnonymousRedirects(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		next   string
	}{
		{"Список заметок", http.MethodGet, "/notes/", "%2Fnotes%2F"},
		{"Создание заметки", http.MethodPost, "/add/", "%2Fadd%2F"},
		{"Просмотр заметки", http.MethodGet, "/note/zametka", "%2Fnote%2Fzametka"},
		{"Редактирование заметки", http.MethodPost, "/edit/zametka", "%2Fedit%2Fzametka"},
		{"Удаление заметки", http.MethodPost, "/delete/zametka", "%2Fdelete%2Fzametka"},
		{"Страница успеха", http.MethodGet, "/done/", "%2Fdone%2F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fiberApp := newTestApp(new(mockNoteUseCase), new(mockAuthUseCase))

			resp := doRequest(t, fiberApp, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/auth/login?next="+tt.next, resp.Header.Get("Location"))
			require.NoError(t, resp.Body.Close())
		})
	}
}

func TestHomePageIsPublic(t *testing.T) {
	fiberApp := newTestApp(new(mockNoteUseCase), new(mockAuthUseCase))

	resp := doRequest(t, fiberApp, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestAddNote(t *testing.T) {
	t.Run("Успешное создание с редиректом на страницу успеха", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("CreateNote", mock.Anything, authorID, "Заголовок", "Текст", "zametka").
			Return(&entities.Note{ID: "note-1", Slug: "zametka"}, nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/add/",
			strings.NewReader(`{"title":"Заголовок","text":"Текст","slug":"zametka"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, authenticate(req))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/done/", resp.Header.Get("Location"))
		require.NoError(t, resp.Body.Close())
		noteUC.AssertExpectations(t)
	})

	t.Run("Токен в заголовке Authorization", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("CreateNote", mock.Anything, authorID, "Заголовок", "Текст", "").
			Return(&entities.Note{ID: "note-1", Slug: "zagolovok"}, nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/add/",
			strings.NewReader(`{"title":"Заголовок","text":"Текст"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+validToken)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
		noteUC.AssertExpectations(t)
	})

	t.Run("Занятый slug возвращает форму с ошибкой", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("CreateNote", mock.Anything, authorID, "Заголовок", "Текст", "zametka").
			Return(nil, services.NewSlugTakenError("zametka"))

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/add/",
			strings.NewReader(`{"title":"Заголовок","text":"Текст","slug":"zametka"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, authenticate(req))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Field string `json:"field"`
			Error string `json:"error"`
			Note  struct {
				Title string `json:"title"`
				Text  string `json:"text"`
				Slug  string `json:"slug"`
			} `json:"note"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "slug", body.Field)
		assert.Contains(t, body.Error, "zametka - such slug already exists")
		assert.Equal(t, "Заголовок", body.Note.Title)
	})

	t.Run("Форма без заголовка", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("CreateNote", mock.Anything, authorID, "", "Текст", "").
			Return(nil, &services.ValidationError{Field: "title", Message: "this field is required"})

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/add/",
			strings.NewReader(`{"text":"Текст"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, authenticate(req))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body struct {
			Field string `json:"field"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "title", body.Field)
	})
}

func TestListNotes(t *testing.T) {
	t.Run("Список содержит только заметки пользователя", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("ListNotes", mock.Anything, authorID).Return([]*entities.Note{
			{ID: "note-1", Title: "Первая", Slug: "pervaya"},
			{ID: "note-2", Title: "Вторая", Slug: "vtoraya"},
		}, nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := authenticate(httptest.NewRequest(http.MethodGet, "/notes/", nil))
		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Notes []struct {
				Slug string `json:"slug"`
			} `json:"notes"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Notes, 2)
		assert.Equal(t, "pervaya", body.Notes[0].Slug)
		noteUC.AssertExpectations(t)
	})
}

func TestNoteDetail(t *testing.T) {
	t.Run("Заметка автора", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("GetNote", mock.Anything, authorID, "zametka").
			Return(&entities.Note{ID: "note-1", Title: "Заголовок", Slug: "zametka"}, nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := authenticate(httptest.NewRequest(http.MethodGet, "/note/zametka", nil))
		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Slug string `json:"slug"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "zametka", body.Slug)
	})

	t.Run("Чужая заметка выглядит как несуществующая", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("GetNote", mock.Anything, authorID, "chuzhaya").Return(nil, app.ErrNotFound)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := authenticate(httptest.NewRequest(http.MethodGet, "/note/chuzhaya", nil))
		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestEditNote(t *testing.T) {
	t.Run("Успешное редактирование", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("EditNote", mock.Anything, authorID, "zametka", "Новый заголовок", "Новый текст", "zametka").
			Return(&entities.Note{ID: "note-1", Slug: "zametka"}, nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/edit/zametka",
			strings.NewReader(`{"title":"Новый заголовок","text":"Новый текст","slug":"zametka"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, authenticate(req))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/done/", resp.Header.Get("Location"))
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Чужая заметка", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("EditNote", mock.Anything, authorID, "chuzhaya", "Заголовок", "Текст", "").
			Return(nil, app.ErrNotFound)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/edit/chuzhaya",
			strings.NewReader(`{"title":"Заголовок","text":"Текст"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, authenticate(req))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("Успешное удаление", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("DeleteNote", mock.Anything, authorID, "zametka").Return(nil)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := authenticate(httptest.NewRequest(http.MethodDelete, "/delete/zametka", nil))
		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/done/", resp.Header.Get("Location"))
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Чужая заметка", func(t *testing.T) {
		noteUC := new(mockNoteUseCase)
		noteUC.On("DeleteNote", mock.Anything, authorID, "chuzhaya").Return(app.ErrNotFound)

		fiberApp := newTestApp(noteUC, new(mockAuthUseCase))

		req := authenticate(httptest.NewRequest(http.MethodPost, "/delete/chuzhaya", nil))
		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})
}

func TestAuthHandlers(t *testing.T) {
	session := &authservices.Session{
		UserID:      authorID,
		Username:    "reader",
		AccessToken: validToken,
	}

	t.Run("Регистрация устанавливает cookie", func(t *testing.T) {
		authUC := new(mockAuthUseCase)
		authUC.On("Register", mock.Anything, "reader@example.com", "reader", "password1").
			Return(session, nil)

		fiberApp := newTestApp(new(mockNoteUseCase), authUC)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"email":"reader@example.com","username":"reader","password":"password1"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Set-Cookie"), "access_token="+validToken)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Повторная регистрация email", func(t *testing.T) {
		authUC := new(mockAuthUseCase)
		authUC.On("Register", mock.Anything, "reader@example.com", "reader", "password1").
			Return(nil, authservices.ErrEmailAlreadyExists)

		fiberApp := newTestApp(new(mockNoteUseCase), authUC)

		req := httptest.NewRequest(http.MethodPost, "/auth/register",
			strings.NewReader(`{"email":"reader@example.com","username":"reader","password":"password1"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Вход с редиректом на исходную страницу", func(t *testing.T) {
		authUC := new(mockAuthUseCase)
		authUC.On("Login", mock.Anything, "reader@example.com", "password1").
			Return(session, nil)

		fiberApp := newTestApp(new(mockNoteUseCase), authUC)

		req := httptest.NewRequest(http.MethodPost, "/auth/login?next=%2Fadd%2F",
			strings.NewReader(`{"email":"reader@example.com","password":"password1"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/add/", resp.Header.Get("Location"))
		assert.Contains(t, resp.Header.Get("Set-Cookie"), "access_token="+validToken)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Вход без next возвращает сессию", func(t *testing.T) {
		authUC := new(mockAuthUseCase)
		authUC.On("Login", mock.Anything, "reader@example.com", "password1").
			Return(session, nil)

		fiberApp := newTestApp(new(mockNoteUseCase), authUC)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"reader@example.com","password":"password1"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			UserID      string `json:"user_id"`
			AccessToken string `json:"access_token"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, authorID, body.UserID)
		assert.Equal(t, validToken, body.AccessToken)
	})

	t.Run("Неверные учетные данные", func(t *testing.T) {
		authUC := new(mockAuthUseCase)
		authUC.On("Login", mock.Anything, "reader@example.com", "wrong").
			Return(nil, authservices.ErrInvalidCredentials)

		fiberApp := newTestApp(new(mockNoteUseCase), authUC)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"reader@example.com","password":"wrong"}`))
		req.Header.Set(fiber.HeaderContentType, contentJSON)

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	})

	t.Run("Выход сбрасывает cookie", func(t *testing.T) {
		fiberApp := newTestApp(new(mockNoteUseCase), new(mockAuthUseCase))

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: validToken})

		resp := doRequest(t, fiberApp, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Set-Cookie"), "access_token=")
		require.NoError(t, resp.Body.Close())
	})
}
