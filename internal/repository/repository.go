package repository

import (
	"context"

	"chatstarter/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)

	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	GetConversationsByUser(ctx context.Context, userID string) ([]*model.Conversation, error)
	UpdateConversation(ctx context.Context, conv *model.Conversation) error
	DeleteConversation(ctx context.Context, conversationID string) error

	AddMessage(ctx context.Context, message *model.Message) error
	GetMessagesByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
}
