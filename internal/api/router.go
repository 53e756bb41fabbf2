package api

import (
	"net/http"
	"time"

	// The blank import is required by swaggo to find the API definitions.
	_ "chatstarter/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	AuthHandler *AuthHandler
	ChatHandler *ChatHandler
	// Authenticate verifies bearer tokens and injects the user id.
	Authenticate func(http.Handler) http.Handler
	// AuthLimiter throttles unauthenticated auth endpoints per IP.
	AuthLimiter Limiter
	// ChatLimiter throttles chat endpoints per user.
	ChatLimiter Limiter
	// CORSOrigins is the allow-list of browser origins.
	CORSOrigins []string
}

// NewRouter creates and configures the chi router with all application routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.CORSOrigins))

	// Swagger UI for the generated API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness/readiness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Public auth endpoints, throttled per client IP.
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(RateLimitByIP(deps.AuthLimiter))
				r.Post("/register", deps.AuthHandler.Register)
				r.Post("/login", deps.AuthHandler.Login)
				r.Post("/refresh", deps.AuthHandler.Refresh)
			})
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Group(func(r chi.Router) {
				r.Use(deps.Authenticate)
				r.Get("/me", deps.AuthHandler.Me)
			})
		})

		// Chat endpoints require a valid access token and are throttled
		// per user.
		r.Route("/chat", func(r chi.Router) {
			r.Use(deps.Authenticate)
			r.Use(RateLimitByUser(deps.ChatLimiter))

			r.Post("/conversations", deps.ChatHandler.CreateConversation)
			r.Get("/conversations", deps.ChatHandler.ListConversations)
			r.Get("/conversations/{conversationID}", deps.ChatHandler.GetConversation)
			r.Patch("/conversations/{conversationID}", deps.ChatHandler.UpdateConversation)
			r.Delete("/conversations/{conversationID}", deps.ChatHandler.DeleteConversation)
			r.Get("/conversations/{conversationID}/messages", deps.ChatHandler.ListMessages)
			r.Post("/conversations/{conversationID}/messages", deps.ChatHandler.CreateMessage)
		})
	})

	return r
}
