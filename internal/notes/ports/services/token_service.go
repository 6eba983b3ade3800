// Package services defines service interfaces consumed by the notes side.
package services

import "context"

// TokenService проверяет access токены и возвращает ID пользователя.
type TokenService interface {
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
