package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zametka/internal/notes/adapters/services"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret string, claims services.Claims, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() services.Claims {
	return services.Claims{
		UserID:   "user-1",
		Username: "author",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := services.NewJWT(testSecret)

	t.Run("valid token returns user id", func(t *testing.T) {
		token := signToken(t, testSecret, validClaims(), jwt.SigningMethodHS256)

		userID, err := svc.ValidateAccessToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := signToken(t, testSecret, claims, jwt.SigningMethodHS256)

		_, err := svc.ValidateAccessToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", validClaims(), jwt.SigningMethodHS256)

		_, err := svc.ValidateAccessToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(ctx, "not-a-token")
		assert.Error(t, err)
	})

	t.Run("empty user id rejected", func(t *testing.T) {
		claims := validClaims()
		claims.UserID = ""
		token := signToken(t, testSecret, claims, jwt.SigningMethodHS256)

		_, err := svc.ValidateAccessToken(ctx, token)
		assert.Error(t, err)
	})
}
