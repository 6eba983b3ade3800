package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"zametka/internal/auth/domain/services"
	svc "zametka/internal/auth/ports/services"
	"zametka/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateAccessToken = "GenerateAccessToken"
	msgGeneratingAccessToken  = "generating access token"
	msgTokenGenerated         = "token generated successfully"
	errSigningToken           = "error signing token" //nolint:gosec
)

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:      []byte(secretKey),
			AccessTokenTTL: accessTokenTTL,
		},
	}
}

// GenerateAccessToken выпускает подписанный access токен для пользователя.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, claims services.JWTClaims) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateAccessToken))
	log.Debug(ctx, msgGeneratingAccessToken, zap.String("userID", claims.UserID))

	now := time.Now()
	jwtClaims := Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errSigningToken, services.ErrGeneratingJWTToken)
	}

	log.Debug(ctx, msgTokenGenerated, zap.String("userID", claims.UserID))
	return signed, nil
}
