// Package auth содержит HTTP обработчики для регистрации и входа.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"zametka/internal/auth/domain/entities"
	"zametka/internal/auth/domain/services"
	"zametka/internal/auth/ports/api"
	"zametka/internal/http/dto"
	"zametka/internal/http/middleware"
	"zametka/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"

	ErrorInvalidRequest       = "invalid request"
	ErrorInvalidCredentials   = "invalid email or password"
	ErrorEmailAlreadyExists   = "user with this email already exists"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authUseCase    api.AuthUseCase
	accessTokenTTL time.Duration
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, accessTokenTTL time.Duration) *Handler {
	return &Handler{
		authUseCase:    authUseCase,
		accessTokenTTL: accessTokenTTL,
	}
}

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respondJSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return respondJSON(ctx, http.StatusBadRequest, fiber.Map{
			"error": "email, username and password are required",
		})
	}

	session, err := h.authUseCase.Register(requestCtx, req.Email, req.Username, req.Password)
	if err != nil {
		return h.respondAuthError(ctx, err)
	}

	h.setSessionCookie(ctx, session.AccessToken)

	return respondJSON(ctx, http.StatusCreated, dto.SessionResponse{
		UserID:      session.UserID,
		Username:    session.Username,
		AccessToken: session.AccessToken,
	})
}

// Login обрабатывает запрос на вход пользователя. После успешного входа
// запрос перенаправляется на адрес из параметра next, если он задан.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respondJSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	if req.Email == "" || req.Password == "" {
		return respondJSON(ctx, http.StatusBadRequest, fiber.Map{
			"error": "email and password are required",
		})
	}

	session, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return h.respondAuthError(ctx, err)
	}

	h.setSessionCookie(ctx, session.AccessToken)

	if next := ctx.Query("next"); next != "" && next[0] == '/' {
		if err := ctx.Redirect().Status(fiber.StatusFound).To(next); err != nil {
			return fmt.Errorf("redirecting after login: %w", err)
		}
		return nil
	}

	return respondJSON(ctx, http.StatusOK, dto.SessionResponse{
		UserID:      session.UserID,
		Username:    session.Username,
		AccessToken: session.AccessToken,
	})
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})

	return respondJSON(ctx, http.StatusOK, fiber.Map{"message": "logged out successfully"})
}

func (h *Handler) setSessionCookie(ctx fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.accessTokenTTL),
		HTTPOnly: true,
	})
}

func (h *Handler) respondAuthError(ctx fiber.Ctx, err error) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return respondJSON(ctx, http.StatusConflict, fiber.Map{"error": ErrorEmailAlreadyExists})
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondJSON(ctx, http.StatusUnauthorized, fiber.Map{"error": ErrorInvalidCredentials})
	case errors.Is(err, entities.ErrInvalidEmail),
		errors.Is(err, entities.ErrEmptyUsername),
		errors.Is(err, entities.ErrPasswordTooShort),
		errors.Is(err, entities.ErrPasswordTooWeak):
		return respondJSON(ctx, http.StatusBadRequest, fiber.Map{"error": err.Error()})
	default:
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return respondJSON(ctx, http.StatusInternalServerError, fiber.Map{"error": ErrorFailedToServeRequest})
	}
}

func respondJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
