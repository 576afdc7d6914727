package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	tokenManager := security.NewTokenManager("test-secret")
	middleware := AuthMiddleware(tokenManager)

	var gotClaims *security.UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)

		middleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		middleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		refresh, err := tokenManager.GenerateRefreshToken(1, "donor@test.com")
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)

		middleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		access, err := tokenManager.GenerateAccessToken(42, "donor@test.com", domain.UserRoleDonor)
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)

		middleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, gotClaims)
		assert.Equal(t, int32(42), gotClaims.UserID)
		assert.Equal(t, domain.UserRoleDonor, gotClaims.Role)
	})
}

func TestRequireRole(t *testing.T) {
	tokenManager := security.NewTokenManager("test-secret")
	middleware := AuthMiddleware(tokenManager)

	handler := RequireRole(domain.UserRoleAdmin, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("WrongRole", func(t *testing.T) {
		access, err := tokenManager.GenerateAccessToken(1, "donor@test.com", domain.UserRoleDonor)
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ngos/1/verify", nil)
		req.Header.Set("Authorization", "Bearer "+access)

		middleware(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		access, err := tokenManager.GenerateAccessToken(2, "admin@test.com", domain.UserRoleAdmin)
		assert.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ngos/1/verify", nil)
		req.Header.Set("Authorization", "Bearer "+access)

		middleware(handler).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("BurstExhausted", func(t *testing.T) {
		limited := RateLimitMiddleware(1, 2)(next)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			limited.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("DisabledWhenZero", func(t *testing.T) {
		limited := RateLimitMiddleware(0, 0)(next)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
		limited.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
