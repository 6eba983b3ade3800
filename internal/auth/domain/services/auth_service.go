// Package services contains domain-level definitions for the auth service.
package services

import (
	"errors"
)

// Ошибки аутентификации.
var (
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Session содержит результат успешной аутентификации.
type Session struct {
	UserID      string
	Username    string
	AccessToken string
}
