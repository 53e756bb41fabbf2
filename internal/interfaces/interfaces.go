package interfaces

import (
	"context"

	"chatstarter/internal/model"
	"chatstarter/internal/service"
)

// This file defines the interfaces for the core services. The API layer
// depends on these instead of the concrete implementations, which decouples
// the layers and makes handler tests trivial to mock.

// AuthService defines the contract for registration and session handling.
type AuthService interface {
	Register(ctx context.Context, req *service.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// ChatService defines the contract for conversation and message logic.
type ChatService interface {
	CreateConversation(ctx context.Context, userID string, req *service.CreateConversationRequest) (*model.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, userID, conversationID string) (*model.Conversation, error)
	UpdateConversation(ctx context.Context, userID, conversationID string, req *service.UpdateConversationRequest) (*model.Conversation, error)
	DeleteConversation(ctx context.Context, userID, conversationID string) error
	ListMessages(ctx context.Context, userID, conversationID string) ([]model.Message, error)
	SendMessage(ctx context.Context, userID, conversationID, content string) (*model.MessagePair, error)
}
