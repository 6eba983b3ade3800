// Package notes содержит HTTP обработчики для работы с заметками.
package notes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"zametka/internal/http/dto"
	"zametka/internal/http/middleware"
	"zametka/internal/notes/app"
	"zametka/internal/notes/domain/services"
	"zametka/internal/notes/ports/api"
	"zametka/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerAdd    = "notes handler: add"
	LogHandlerList   = "notes handler: list"
	LogHandlerDetail = "notes handler: detail"
	LogHandlerEdit   = "notes handler: edit"
	LogHandlerDelete = "notes handler: delete"

	ErrorInvalidRequest       = "invalid request"
	ErrorNoteNotFound         = "note not found"
	ErrorFailedToServeRequest = "failed to serve request"

	// SuccessPath — адрес страницы успешного завершения операции.
	SuccessPath = "/done/"
)

// Handler содержит HTTP обработчики для заметок.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

// Home обрабатывает запрос главной страницы. Доступна без аутентификации.
func (h *Handler) Home(ctx fiber.Ctx) error {
	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "welcome to zametka",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Done обрабатывает страницу успешного завершения операции, на которую
// перенаправляются запросы после создания, изменения и удаления заметки.
func (h *Handler) Done(ctx fiber.Ctx) error {
	if err := ctx.Status(http.StatusOK).JSON(fiber.Map{
		"message": "operation completed successfully",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Add обрабатывает запрос на создание заметки.
func (h *Handler) Add(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAdd)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		if err := ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	_, err := h.noteUseCase.CreateNote(requestCtx, middleware.UserID(ctx), req.Title, req.Text, req.Slug)
	if err != nil {
		return h.respondError(ctx, err, req)
	}

	return redirectToSuccess(ctx)
}

// List обрабатывает запрос списка заметок текущего пользователя.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerList)

	notes, err := h.noteUseCase.ListNotes(requestCtx, middleware.UserID(ctx))
	if err != nil {
		return h.respondError(ctx, err, dto.NoteRequest{})
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteListResponse(notes)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Detail обрабатывает запрос отдельной заметки по slug.
func (h *Handler) Detail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDetail)

	note, err := h.noteUseCase.GetNote(requestCtx, middleware.UserID(ctx), ctx.Params("slug"))
	if err != nil {
		return h.respondError(ctx, err, dto.NoteRequest{})
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.NewNoteResponse(note)); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Edit обрабатывает запрос на изменение заметки.
func (h *Handler) Edit(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerEdit)

	var req dto.NoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		if err := ctx.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": ErrorInvalidRequest,
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	_, err := h.noteUseCase.EditNote(requestCtx, middleware.UserID(ctx), ctx.Params("slug"), req.Title, req.Text, req.Slug)
	if err != nil {
		return h.respondError(ctx, err, req)
	}

	return redirectToSuccess(ctx)
}

// Delete обрабатывает запрос на удаление заметки.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerDelete)

	if err := h.noteUseCase.DeleteNote(requestCtx, middleware.UserID(ctx), ctx.Params("slug")); err != nil {
		return h.respondError(ctx, err, dto.NoteRequest{})
	}

	return redirectToSuccess(ctx)
}

// respondError преобразует ошибки сценариев в HTTP ответы. Ошибки валидации
// возвращаются вместе с отправленными данными формы.
func (h *Handler) respondError(ctx fiber.Ctx, err error, req dto.NoteRequest) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		if err := ctx.Status(http.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Field: validationErr.Field,
			Error: validationErr.Message,
			Note:  req,
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	if errors.Is(err, app.ErrNotFound) {
		if err := ctx.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": ErrorNoteNotFound,
		}); err != nil {
			return fmt.Errorf("sending response: %w", err)
		}
		return nil
	}

	log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	if err := ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
		"error": ErrorFailedToServeRequest,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func redirectToSuccess(ctx fiber.Ctx) error {
	if err := ctx.Redirect().Status(fiber.StatusFound).To(SuccessPath); err != nil {
		return fmt.Errorf("redirecting to success page: %w", err)
	}
	return nil
}
