package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatstarter/internal/auth"
)

type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) bool {
	s.keys = append(s.keys, key)
	return s.allow
}

func okHandler(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := UserIDFromContext(r.Context()); ok && seen != nil {
			*seen = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute, 7*24*time.Hour)

	t.Run("accepts valid access token", func(t *testing.T) {
		accessToken, err := tokens.IssueAccessToken("user-1")
		require.NoError(t, err)

		var seen string
		handler := Authenticator(tokens)(okHandler(&seen))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", seen)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		handler := Authenticator(tokens)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("rejects refresh token on access routes", func(t *testing.T) {
		refreshToken, err := tokens.IssueRefreshToken("user-1")
		require.NoError(t, err)

		handler := Authenticator(tokens)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		handler := Authenticator(tokens)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimitByIP(t *testing.T) {
	t.Run("passes when under the limit", func(t *testing.T) {
		limiter := &stubLimiter{allow: true}
		handler := RateLimitByIP(limiter)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ip:10.0.0.1", limiter.keys[0])
	})

	t.Run("rejects with 429 when over the limit", func(t *testing.T) {
		limiter := &stubLimiter{allow: false}
		handler := RateLimitByIP(limiter)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
	})
}

func TestRateLimitByUser(t *testing.T) {
	t.Run("keys on the authenticated user", func(t *testing.T) {
		limiter := &stubLimiter{allow: true}
		handler := RateLimitByUser(limiter)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(withUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "user:user-1", limiter.keys[0])
	})

	t.Run("falls back to the address without a user", func(t *testing.T) {
		limiter := &stubLimiter{allow: true}
		handler := RateLimitByUser(limiter)(okHandler(nil))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ip:10.0.0.2:1234", limiter.keys[0])
	})
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"http://localhost:3000"})(okHandler(nil))

	t.Run("sets headers for allowed origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("ignores unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("short-circuits preflight requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
