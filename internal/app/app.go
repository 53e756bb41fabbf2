package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"chatstarter/internal/api"
	"chatstarter/internal/auth"
	"chatstarter/internal/config"
	"chatstarter/internal/database"
	"chatstarter/internal/llm"
	"chatstarter/internal/ratelimit"
	"chatstarter/internal/repository"
	"chatstarter/internal/service"
)

// Run assembles the application and blocks until shutdown. It returns the
// process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	repo := repository.NewSQLiteRepository(db)
	tokens := auth.NewTokenManager(
		cfg.SecretKey,
		time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenExpireDays)*24*time.Hour,
	)
	providers := llm.NewFactory(llm.Config{
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
	})

	authService := service.NewAuthService(repo, tokens)
	chatService := service.NewChatService(repo, providers)

	router := api.NewRouter(api.RouterDeps{
		AuthHandler:  api.NewAuthHandler(authService),
		ChatHandler:  api.NewChatHandler(chatService),
		Authenticate: api.Authenticator(tokens),
		AuthLimiter:  ratelimit.NewLimiter(rdb, cfg.RateLimitAuth),
		ChatLimiter:  ratelimit.NewLimiter(rdb, cfg.RateLimitChat),
		CORSOrigins:  cfg.CORSOriginsList(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			return 1
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	slog.Info("Server stopped")
	return 0
}

// setupLogger configures the global structured logger. Logs are JSON so the
// container runtime can ship them as-is.
func setupLogger(level string) {
	var logLevel slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		logLevel = slog.LevelDebug
	case "WARN":
		logLevel = slog.LevelWarn
	case "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
