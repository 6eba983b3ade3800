package services

import (
	"zametka/internal/notes/domain/entities"
)

// Operation - операция над заметкой, требующая проверки доступа.
type Operation string

// Операции, которые доступны только автору заметки.
const (
	OpView   Operation = "view"
	OpEdit   Operation = "edit"
	OpDelete Operation = "delete"
)

// Allowed решает, разрешена ли пользователю операция над заметкой.
// Просмотр, редактирование и удаление доступны только автору. Отказ
// наверху отображается как NOT_FOUND, чтобы не раскрывать существование
// чужих заметок.
func Allowed(userID string, note *entities.Note, op Operation) bool {
	if userID == "" || note == nil {
		return false
	}

	switch op {
	case OpView, OpEdit, OpDelete:
		return note.AuthorID == userID
	default:
		return false
	}
}
