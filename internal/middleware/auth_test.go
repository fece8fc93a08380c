package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(viper.GetString("jwt.secret_key")))
	assert.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	viper.Set("jwt.secret_key", "test-secret")

	t.Run("valid token yields the user id", func(t *testing.T) {
		uid, err := validateToken(signToken(t, jwt.MapClaims{"user_id": "user1"}))
		assert.NoError(t, err)
		assert.Equal(t, "user1", uid)
	})

	t.Run("missing user_id claim is rejected", func(t *testing.T) {
		uid, err := validateToken(signToken(t, jwt.MapClaims{"email": "a@b.c"}))
		assert.Error(t, err)
		assert.Empty(t, uid)
	})

	t.Run("empty user_id claim is rejected", func(t *testing.T) {
		uid, err := validateToken(signToken(t, jwt.MapClaims{"user_id": ""}))
		assert.Error(t, err)
		assert.Empty(t, uid)
	})

	t.Run("non-string user_id claim is rejected", func(t *testing.T) {
		uid, err := validateToken(signToken(t, jwt.MapClaims{"user_id": 42}))
		assert.Error(t, err)
		assert.Empty(t, uid)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user1"}).
			SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		uid, err := validateToken(token)
		assert.Error(t, err)
		assert.Empty(t, uid)
	})
}

func TestAuthMiddleware_RejectsAnonymousToken(t *testing.T) {
	viper.Set("jwt.secret_key", "test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a token with no identity")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"email": "a@b.c"}))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
