package middleware

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"zametka/internal/notes/ports/services"
	"zametka/pkg/logger"
)

// Константы для работы с аутентификацией.
const (
	// UserIDKey — ключ fiber.Locals, под которым хранится ID пользователя.
	UserIDKey = "userID"

	// AccessTokenCookie — имя cookie с access токеном для браузерных клиентов.
	AccessTokenCookie = "access_token"

	// LoginPath — адрес страницы входа, на которую отправляются анонимы.
	LoginPath = "/auth/login"

	bearerPrefix = "Bearer "

	logAuthMiddleware    = "auth middleware"
	logAnonymousRedirect = "anonymous request redirected to login"
	logInvalidToken      = "invalid access token"
)

// NewAuthMiddleware создает промежуточное ПО, требующее аутентификации.
// Токен берется из заголовка Authorization или из cookie. Анонимные
// запросы получают редирект на страницу входа с параметром next,
// указывающим исходный адрес.
func NewAuthMiddleware(tokenSvc services.TokenService) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, logAuthMiddleware)

		token := extractToken(ctx)
		if token == "" {
			log.Debug(requestCtx, logAnonymousRedirect, zap.String("path", ctx.Path()))
			return redirectToLogin(ctx)
		}

		userID, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, logInvalidToken, zap.Error(err))
			return redirectToLogin(ctx)
		}

		ctx.Locals(UserIDKey, userID)

		return ctx.Next()
	}
}

// UserID возвращает ID аутентифицированного пользователя из контекста запроса.
func UserID(ctx fiber.Ctx) string {
	userID, _ := ctx.Locals(UserIDKey).(string)
	return userID
}

func extractToken(ctx fiber.Ctx) string {
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}

	return ctx.Cookies(AccessTokenCookie)
}

func redirectToLogin(ctx fiber.Ctx) error {
	target := fmt.Sprintf("%s?next=%s", LoginPath, url.QueryEscape(ctx.OriginalURL()))
	if err := ctx.Redirect().Status(fiber.StatusFound).To(target); err != nil {
		return fmt.Errorf("redirecting to login: %w", err)
	}
	return nil
}
