package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chatstarter/internal/auth"
	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/model"
	"chatstarter/internal/repository"
)

// RegisterRequest carries the data needed to create an account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

type AuthService struct {
	repo   repository.Repository
	tokens *auth.TokenManager
}

func NewAuthService(repo repository.Repository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user account. Registering an already-used email
// returns ErrConflict.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		slog.Warn("Registration failed", "email", req.Email, "reason", "already_exists")
		return nil, fmt.Errorf("%w: email already registered", app_errors.ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not check existing user: %w", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		HashedPassword: hashed,
		FullName:       req.FullName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the email/password pair and issues an access+refresh token
// pair. Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Login failed", "email", email, "reason", "invalid_credentials")
			return nil, fmt.Errorf("%w: incorrect email or password", app_errors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		slog.Warn("Login failed", "email", email, "reason", "invalid_credentials")
		return nil, fmt.Errorf("%w: incorrect email or password", app_errors.ErrUnauthorized)
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("Login successful", "user_id", user.ID, "email", user.Email)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. The user
// must still exist.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	userID, err := s.tokens.VerifyToken(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		slog.Warn("Token refresh failed", "reason", "invalid_token")
		return nil, fmt.Errorf("%w: could not validate refresh token", app_errors.ErrUnauthorized)
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Token refresh failed", "reason", "user_not_found", "user_id", userID)
			return nil, fmt.Errorf("%w: could not validate refresh token", app_errors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}

	return s.issuePair(userID)
}

// GetUser returns the user for an already-authenticated id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not look up user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issuePair(userID string) (*model.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("could not issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("could not issue refresh token: %w", err)
	}
	return &model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
