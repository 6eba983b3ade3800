// Package http содержит компоненты для HTTP сервера.
package http

import (
	"time"

	"github.com/gofiber/fiber/v3"

	authapi "zametka/internal/auth/ports/api"
	"zametka/internal/http/auth"
	"zametka/internal/http/middleware"
	"zametka/internal/http/notes"
	notesapi "zametka/internal/notes/ports/api"
	"zametka/internal/notes/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(
	app *fiber.App,
	noteUseCase notesapi.NoteUseCase,
	authUseCase authapi.AuthUseCase,
	tokenSvc services.TokenService,
	accessTokenTTL time.Duration,
) {
	noteHandler := notes.NewHandler(noteUseCase)
	authHandler := auth.NewHandler(authUseCase, accessTokenTTL)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Публичные маршруты.
	app.Get("/", noteHandler.Home)

	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	// Маршруты заметок доступны только аутентифицированным пользователям.
	requireAuth := middleware.NewAuthMiddleware(tokenSvc)

	app.Get("/notes/", noteHandler.List, requireAuth)
	app.Post("/add/", noteHandler.Add, requireAuth)
	app.Get("/note/:slug", noteHandler.Detail, requireAuth)
	app.Post("/edit/:slug", noteHandler.Edit, requireAuth)
	app.Post("/delete/:slug", noteHandler.Delete, requireAuth)
	app.Delete("/delete/:slug", noteHandler.Delete, requireAuth)
	app.Get("/done/", noteHandler.Done, requireAuth)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
