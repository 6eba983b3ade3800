// Package api defines use case interfaces exposed to transport adapters.
package api

import (
	"context"

	"zametka/internal/auth/domain/services"
)

// AuthUseCase определяет сценарии регистрации и входа пользователя.
type AuthUseCase interface {
	Register(ctx context.Context, email, username, password string) (*services.Session, error)

	Login(ctx context.Context, email, password string) (*services.Session, error)
}
