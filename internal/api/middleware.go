package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"chatstarter/internal/auth"
	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/ratelimit"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user id stored by the
// Authenticator middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// withUserID is used by tests to simulate an authenticated request.
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Authenticator verifies the bearer access token on every request and stores
// the user id in the request context. Requests without a valid access token
// are rejected with 401.
func Authenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				respondWithError(w, fmt.Errorf("%w: missing bearer token", app_errors.ErrUnauthorized))
				return
			}

			userID, err := tokens.VerifyToken(strings.TrimPrefix(header, prefix), auth.TokenTypeAccess)
			if err != nil {
				respondWithError(w, fmt.Errorf("%w: could not validate credentials", app_errors.ErrUnauthorized))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
		})
	}
}

// Limiter is the contract the rate-limiting middleware needs; satisfied by
// *ratelimit.Limiter.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimitByIP limits unauthenticated endpoints per client address.
// Run after chi's RealIP middleware so proxy headers are honored.
func RateLimitByIP(limiter Limiter) func(http.Handler) http.Handler {
	return rateLimit(limiter, func(r *http.Request) string {
		addr := r.RemoteAddr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			addr = addr[:i]
		}
		return ratelimit.IPKey(addr)
	})
}

// RateLimitByUser limits authenticated endpoints per user. Must run inside
// the Authenticator chain; requests without a user fall back to the address.
func RateLimitByUser(limiter Limiter) func(http.Handler) http.Handler {
	return rateLimit(limiter, func(r *http.Request) string {
		if userID, ok := UserIDFromContext(r.Context()); ok {
			return ratelimit.UserKey(userID)
		}
		return ratelimit.IPKey(r.RemoteAddr)
	})
}

func rateLimit(limiter Limiter, keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), keyFn(r)) {
				respondWithJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: "Rate limit exceeded. Try again later."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and sets the response headers for the
// configured origins. Kept deliberately small; a reverse proxy usually owns
// this in production.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
				w.Header().Set("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
