package model

import "time"

// Message roles. The CHECK constraint on the messages table enforces the same set.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       *string   `json:"full_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Conversation stores metadata about a chat thread, including which AI
// provider and model answer it.
type Conversation struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	AIProvider   string    `json:"ai_provider"`
	AIModel      string    `json:"ai_model"`
	SystemPrompt *string   `json:"system_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a single confirmed chat turn as stored on the server.
// TokensUsed is set only on assistant messages.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	TokensUsed     *int      `json:"tokens_used,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationList is the response envelope for listing conversations.
type ConversationList struct {
	Conversations []*Conversation `json:"conversations"`
	Total         int             `json:"total"`
}

// MessageList is the response envelope for listing messages.
type MessageList struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

// MessagePair is returned when a message is posted: the stored user message
// plus the generated assistant reply.
type MessagePair struct {
	UserMessage      Message `json:"user_message"`
	AssistantMessage Message `json:"assistant_message"`
}

// TokenPair carries the access and refresh tokens issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
