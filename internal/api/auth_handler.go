package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/interfaces"
	"chatstarter/internal/service"
)

type AuthHandler struct {
	service interfaces.AuthService
}

func NewAuthHandler(svc interfaces.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register handles new account creation.
//
// @Summary      Register a new user
// @Description  Creates an account from email, password and an optional full name.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body      service.RegisterRequest  true  "Registration data"
// @Success      201   {object}  model.User
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// Login exchanges HTTP Basic credentials for a token pair.
//
// @Summary      Log in
// @Description  Authenticates with HTTP Basic (email as username) and returns access and refresh tokens.
// @Tags         Auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", "Basic")
		respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Basic authentication credentials required."})
		return
	}

	pair, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a fresh token pair.
//
// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        tokens  body      RefreshRequest  true  "Refresh token"
// @Success      200     {object}  model.TokenPair
// @Failure      401     {object}  ErrorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pair)
}

// Logout ends the session client-side. Tokens are not invalidated server-side;
// clients drop them.
//
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, fmt.Errorf("%w: missing authentication", app_errors.ErrUnauthorized))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
