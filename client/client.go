// Package client provides a typed Go client for the chat backend plus an
// in-memory state container for building interactive frontends on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"chatstarter/internal/model"
)

// ChatAPI is the slice of the backend surface the chat store depends on.
// *Client satisfies it.
type ChatAPI interface {
	CreateConversation(ctx context.Context, params CreateConversationParams) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	UpdateConversation(ctx context.Context, conversationID string, params UpdateConversationParams) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	SendMessage(ctx context.Context, conversationID, content string) (*model.MessagePair, error)
}

// CreateConversationParams is the request body for creating a conversation.
type CreateConversationParams struct {
	Title        string  `json:"title"`
	AIProvider   string  `json:"ai_provider,omitempty"`
	AIModel      string  `json:"ai_model,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

// UpdateConversationParams is the request body for a partial conversation
// update. Nil fields are left unchanged.
type UpdateConversationParams struct {
	Title        *string `json:"title,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

// APIError is a non-2xx response from the backend. The server collapses all
// failure detail into a single human-readable string, so callers can branch
// on the status code but not on a machine-readable kind.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the backend over HTTP. It is safe for concurrent use; the
// token pair is guarded so a refresh on one goroutine is visible to all.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// NewClient creates a client for the API at baseURL, e.g.
// "http://localhost:8000". Pass nil to use a default HTTP client with a
// 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetTokens installs a token pair obtained out of band, e.g. restored from
// durable storage.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// Register creates a new account. fullName may be empty.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*model.User, error) {
	body := map[string]string{"email": email, "password": password}
	if fullName != "" {
		body["full_name"] = fullName
	}
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with HTTP Basic credentials and stores the returned
// token pair on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	var pair model.TokenPair
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, &pair, func(req *http.Request) {
		req.SetBasicAuth(email, password)
	})
	if err != nil {
		return nil, err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// Refresh rotates the token pair using the stored refresh token.
func (c *Client) Refresh(ctx context.Context) (*model.TokenPair, error) {
	c.mu.RLock()
	refreshToken := c.refreshToken
	c.mu.RUnlock()

	var pair model.TokenPair
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", body, &pair, nil); err != nil {
		return nil, err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

// Logout tells the server the session ended and drops the stored tokens.
// Tokens are not invalidated server-side; forgetting them is the logout.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	c.SetTokens("", "")
	return nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user, nil); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateConversation(ctx context.Context, params CreateConversationParams) (*model.Conversation, error) {
	var conv model.Conversation
	if err := c.do(ctx, http.MethodPost, "/api/v1/chat/conversations", params, &conv, nil); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *Client) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	var list model.ConversationList
	if err := c.do(ctx, http.MethodGet, "/api/v1/chat/conversations", nil, &list, nil); err != nil {
		return nil, err
	}
	return list.Conversations, nil
}

func (c *Client) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	path := "/api/v1/chat/conversations/" + conversationID
	if err := c.do(ctx, http.MethodGet, path, nil, &conv, nil); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *Client) UpdateConversation(ctx context.Context, conversationID string, params UpdateConversationParams) (*model.Conversation, error) {
	var conv model.Conversation
	path := "/api/v1/chat/conversations/" + conversationID
	if err := c.do(ctx, http.MethodPatch, path, params, &conv, nil); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	path := "/api/v1/chat/conversations/" + conversationID
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	var list model.MessageList
	path := "/api/v1/chat/conversations/" + conversationID + "/messages"
	if err := c.do(ctx, http.MethodGet, path, nil, &list, nil); err != nil {
		return nil, err
	}
	return list.Messages, nil
}

func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*model.MessagePair, error) {
	var pair model.MessagePair
	path := "/api/v1/chat/conversations/" + conversationID + "/messages"
	body := map[string]string{"role": model.RoleUser, "content": content}
	if err := c.do(ctx, http.MethodPost, path, body, &pair, nil); err != nil {
		return nil, err
	}
	return &pair, nil
}

// do executes one request. body is JSON-encoded when non-nil, out is
// JSON-decoded from the response when non-nil, and prepare (if given) can
// adjust the request before it is sent.
func (c *Client) do(ctx context.Context, method, path string, body, out any, prepare func(*http.Request)) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	accessToken := c.accessToken
	c.mu.RUnlock()
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if prepare != nil {
		prepare(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
