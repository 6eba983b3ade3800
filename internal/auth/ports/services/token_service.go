package services

import (
	"context"

	domain "zametka/internal/auth/domain/services"
)

// TokenService определяет операции выпуска access токенов.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, claims domain.JWTClaims) (string, error)
}
