package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/interfaces/mocks"
	"chatstarter/internal/model"
	"chatstarter/internal/service"
)

func setupChatHandler(t *testing.T) (*ChatHandler, *mocks.MockChatService) {
	t.Helper()
	svc := mocks.NewMockChatService(t)
	return NewChatHandler(svc), svc
}

// authedRequest builds a request carrying an authenticated user and the chi
// route parameters the handlers read.
func authedRequest(t *testing.T, method, target, userID string, body *bytes.Buffer, params map[string]string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		req = req.WithContext(withUserID(req.Context(), userID))
	}

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestChatHandler_CreateConversation(t *testing.T) {
	t.Run("creates conversation", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		conv := &model.Conversation{ID: "conv-1", UserID: "user-1", Title: "Trip planning"}
		svc.On("CreateConversation", mock.Anything, "user-1", mock.MatchedBy(func(req *service.CreateConversationRequest) bool {
			return req.Title == "Trip planning"
		})).Return(conv, nil)

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations", "user-1",
			jsonBody(t, map[string]string{"title": "Trip planning"}), nil)
		rec := httptest.NewRecorder()

		handler.CreateConversation(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got model.Conversation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "conv-1", got.ID)
	})

	t.Run("requires a title", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations", "user-1",
			jsonBody(t, map[string]string{}), nil)
		rec := httptest.NewRecorder()

		handler.CreateConversation(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations", "",
			jsonBody(t, map[string]string{"title": "Trip planning"}), nil)
		rec := httptest.NewRecorder()

		handler.CreateConversation(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChatHandler_ListConversations(t *testing.T) {
	handler, svc := setupChatHandler(t)

	convs := []*model.Conversation{
		{ID: "conv-1", UserID: "user-1", Title: "First"},
		{ID: "conv-2", UserID: "user-1", Title: "Second"},
	}
	svc.On("ListConversations", mock.Anything, "user-1").Return(convs, nil)

	req := authedRequest(t, http.MethodGet, "/api/v1/chat/conversations", "user-1", nil, nil)
	rec := httptest.NewRecorder()

	handler.ListConversations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.ConversationList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
	assert.Len(t, got.Conversations, 2)
}

func TestChatHandler_GetConversation(t *testing.T) {
	t.Run("returns conversation", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		conv := &model.Conversation{ID: "conv-1", UserID: "user-1", Title: "Trip planning"}
		svc.On("GetConversation", mock.Anything, "user-1", "conv-1").Return(conv, nil)

		req := authedRequest(t, http.MethodGet, "/api/v1/chat/conversations/conv-1", "user-1", nil,
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.GetConversation(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps missing conversation to 404", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		svc.On("GetConversation", mock.Anything, "user-1", "missing").
			Return(nil, fmt.Errorf("%w: conversation not found", app_errors.ErrNotFound))

		req := authedRequest(t, http.MethodGet, "/api/v1/chat/conversations/missing", "user-1", nil,
			map[string]string{"conversationID": "missing"})
		rec := httptest.NewRecorder()

		handler.GetConversation(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("maps foreign conversation to 403", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		svc.On("GetConversation", mock.Anything, "user-2", "conv-1").
			Return(nil, app_errors.ErrPermission)

		req := authedRequest(t, http.MethodGet, "/api/v1/chat/conversations/conv-1", "user-2", nil,
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.GetConversation(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestChatHandler_UpdateConversation(t *testing.T) {
	handler, svc := setupChatHandler(t)

	updated := &model.Conversation{ID: "conv-1", UserID: "user-1", Title: "Renamed"}
	svc.On("UpdateConversation", mock.Anything, "user-1", "conv-1", mock.MatchedBy(func(req *service.UpdateConversationRequest) bool {
		return req.Title != nil && *req.Title == "Renamed"
	})).Return(updated, nil)

	req := authedRequest(t, http.MethodPatch, "/api/v1/chat/conversations/conv-1", "user-1",
		jsonBody(t, map[string]string{"title": "Renamed"}),
		map[string]string{"conversationID": "conv-1"})
	rec := httptest.NewRecorder()

	handler.UpdateConversation(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Renamed", got.Title)
}

func TestChatHandler_DeleteConversation(t *testing.T) {
	t.Run("deletes conversation", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		svc.On("DeleteConversation", mock.Anything, "user-1", "conv-1").Return(nil)

		req := authedRequest(t, http.MethodDelete, "/api/v1/chat/conversations/conv-1", "user-1", nil,
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.DeleteConversation(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("maps missing conversation to 404", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		svc.On("DeleteConversation", mock.Anything, "user-1", "missing").
			Return(app_errors.ErrNotFound)

		req := authedRequest(t, http.MethodDelete, "/api/v1/chat/conversations/missing", "user-1", nil,
			map[string]string{"conversationID": "missing"})
		rec := httptest.NewRecorder()

		handler.DeleteConversation(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestChatHandler_ListMessages(t *testing.T) {
	handler, svc := setupChatHandler(t)

	messages := []model.Message{
		{ID: "msg-1", ConversationID: "conv-1", Role: model.RoleUser, Content: "Hi"},
		{ID: "msg-2", ConversationID: "conv-1", Role: model.RoleAssistant, Content: "Hello!"},
	}
	svc.On("ListMessages", mock.Anything, "user-1", "conv-1").Return(messages, nil)

	req := authedRequest(t, http.MethodGet, "/api/v1/chat/conversations/conv-1/messages", "user-1", nil,
		map[string]string{"conversationID": "conv-1"})
	rec := httptest.NewRecorder()

	handler.ListMessages(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.MessageList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Total)
}

func TestChatHandler_CreateMessage(t *testing.T) {
	t.Run("returns both halves of the exchange", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		tokens := 42
		pair := &model.MessagePair{
			UserMessage:      model.Message{ID: "msg-1", Role: model.RoleUser, Content: "Hi"},
			AssistantMessage: model.Message{ID: "msg-2", Role: model.RoleAssistant, Content: "Hello!", TokensUsed: &tokens},
		}
		svc.On("SendMessage", mock.Anything, "user-1", "conv-1", "Hi").Return(pair, nil)

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations/conv-1/messages", "user-1",
			jsonBody(t, map[string]string{"role": "user", "content": "Hi"}),
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.CreateMessage(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got model.MessagePair
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Hello!", got.AssistantMessage.Content)
	})

	t.Run("only accepts the user role", func(t *testing.T) {
		handler, _ := setupChatHandler(t)

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations/conv-1/messages", "user-1",
			jsonBody(t, map[string]string{"role": "assistant", "content": "Hi"}),
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.CreateMessage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps provider failure to 502", func(t *testing.T) {
		handler, svc := setupChatHandler(t)

		svc.On("SendMessage", mock.Anything, "user-1", "conv-1", "Hi").
			Return(nil, fmt.Errorf("%w: failed to generate AI response", app_errors.ErrBadGateway))

		req := authedRequest(t, http.MethodPost, "/api/v1/chat/conversations/conv-1/messages", "user-1",
			jsonBody(t, map[string]string{"role": "user", "content": "Hi"}),
			map[string]string{"conversationID": "conv-1"})
		rec := httptest.NewRecorder()

		handler.CreateMessage(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
