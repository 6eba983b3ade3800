// Package services contains pure domain rules for notes.
package services

import (
	"errors"
	"fmt"

	"zametka/internal/notes/domain/slug"
)

// ErrValidation помечает все ошибки валидации полей заметки.
var ErrValidation = errors.New("validation error")

// ValidationError описывает ошибку валидации одного поля.
// Сообщение предназначено для повторного показа формы пользователю.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error возвращает текст ошибки.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is позволяет отличать ошибки валидации через errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateSlug проверяет slug-кандидат на длину и уникальность среди
// существующих значений. Запускается до записи в хранилище: при ошибке
// ни одна запись не создается и не изменяется.
func ValidateSlug(candidate string, existing []string) error {
	if len(candidate) > slug.MaxLength {
		return &ValidationError{
			Field: "slug",
			Message: fmt.Sprintf("ensure this value has at most %d characters (it has %d)",
				slug.MaxLength, len(candidate)),
		}
	}

	for _, taken := range existing {
		if candidate == taken {
			return NewSlugTakenError(candidate)
		}
	}

	return nil
}

// NewSlugTakenError возвращает ошибку уникальности slug с самим значением
// в тексте. Используется и при предварительной проверке, и при нарушении
// уникального индекса в базе.
func NewSlugTakenError(candidate string) *ValidationError {
	return &ValidationError{
		Field:   "slug",
		Message: fmt.Sprintf("%s - such slug already exists, come up with a unique value", candidate),
	}
}
