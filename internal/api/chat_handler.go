package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/interfaces"
	"chatstarter/internal/model"
	"chatstarter/internal/service"
)

type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// requireUser extracts the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, fmt.Errorf("%w: missing authentication", app_errors.ErrUnauthorized))
		return "", false
	}
	return userID, true
}

// CreateConversation starts a new conversation.
//
// @Summary      Create a conversation
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        conversation  body      service.CreateConversationRequest  true  "Conversation data"
// @Success      201           {object}  model.Conversation
// @Failure      400           {object}  ErrorResponse
// @Router       /v1/chat/conversations [post]
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	conv, err := h.service.CreateConversation(r.Context(), userID, &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// ListConversations lists the user's conversations, newest activity first.
//
// @Summary      List conversations
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.ConversationList
// @Router       /v1/chat/conversations [get]
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	convs, err := h.service.ListConversations(r.Context(), userID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, model.ConversationList{Conversations: convs, Total: len(convs)})
}

// GetConversation returns one conversation by id.
//
// @Summary      Get a conversation
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.Conversation
// @Failure      403             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/chat/conversations/{conversationID} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	conv, err := h.service.GetConversation(r.Context(), userID, chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// UpdateConversation applies a partial update (title, system prompt).
//
// @Summary      Update a conversation
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string                             true  "Conversation ID"
// @Param        conversation    body      service.UpdateConversationRequest  true  "Fields to update"
// @Success      200             {object}  model.Conversation
// @Failure      403             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/chat/conversations/{conversationID} [patch]
func (h *ChatHandler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	conv, err := h.service.UpdateConversation(r.Context(), userID, chi.URLParam(r, "conversationID"), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// DeleteConversation removes a conversation and its messages.
//
// @Summary      Delete a conversation
// @Tags         Chat
// @Security     BearerAuth
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chat/conversations/{conversationID} [delete]
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteConversation(r.Context(), userID, chi.URLParam(r, "conversationID")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMessages returns the full message history of a conversation.
//
// @Summary      List messages
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.MessageList
// @Failure      403             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/chat/conversations/{conversationID}/messages [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	messages, err := h.service.ListMessages(r.Context(), userID, chi.URLParam(r, "conversationID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, model.MessageList{Messages: messages, Total: len(messages)})
}

// CreateMessage stores a user message and returns it together with the
// generated assistant reply.
//
// @Summary      Send a message
// @Description  Stores the user message, generates the AI reply and returns both.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string                true  "Conversation ID"
// @Param        message         body      CreateMessageRequest  true  "Message content"
// @Success      201             {object}  model.MessagePair
// @Failure      400             {object}  ErrorResponse
// @Failure      403             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      502             {object}  ErrorResponse
// @Router       /v1/chat/conversations/{conversationID}/messages [post]
func (h *ChatHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	pair, err := h.service.SendMessage(r.Context(), userID, chi.URLParam(r, "conversationID"), req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, pair)
}
