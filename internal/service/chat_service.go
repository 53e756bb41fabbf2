package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/llm"
	"chatstarter/internal/model"
	"chatstarter/internal/repository"
)

// CreateConversationRequest is the payload for starting a new conversation.
type CreateConversationRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=255"`
	AIProvider   string  `json:"ai_provider" validate:"omitempty,max=50"`
	AIModel      string  `json:"ai_model" validate:"omitempty,max=100"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

// UpdateConversationRequest is the payload for a partial conversation update.
// Nil fields are left unchanged.
type UpdateConversationRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

// Defaults applied when a new conversation does not name a provider/model.
const (
	defaultAIProvider = "openai"
	defaultAIModel    = "gpt-4"
)

type ChatService struct {
	repo      repository.Repository
	providers llm.ProviderFactory
}

func NewChatService(repo repository.Repository, providers llm.ProviderFactory) *ChatService {
	return &ChatService{repo: repo, providers: providers}
}

// CreateConversation starts a new conversation owned by userID.
func (s *ChatService) CreateConversation(ctx context.Context, userID string, req *CreateConversationRequest) (*model.Conversation, error) {
	provider := req.AIProvider
	if provider == "" {
		provider = defaultAIProvider
	}
	aiModel := req.AIModel
	if aiModel == "" {
		aiModel = defaultAIModel
	}

	now := time.Now().UTC()
	conv := &model.Conversation{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        req.Title,
		AIProvider:   provider,
		AIModel:      aiModel,
		SystemPrompt: req.SystemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}

	slog.Info("Conversation created", "conversation_id", conv.ID, "user_id", userID)
	return conv, nil
}

// ListConversations returns the user's conversations, newest activity first.
func (s *ChatService) ListConversations(ctx context.Context, userID string) ([]*model.Conversation, error) {
	return s.repo.GetConversationsByUser(ctx, userID)
}

// GetConversation fetches a conversation and enforces ownership: a missing id
// yields ErrNotFound, someone else's conversation yields ErrPermission.
func (s *ChatService) GetConversation(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, fmt.Errorf("%w: conversation belongs to another user", app_errors.ErrPermission)
	}
	return conv, nil
}

// UpdateConversation applies a partial update to an owned conversation.
func (s *ChatService) UpdateConversation(ctx context.Context, userID, conversationID string, req *UpdateConversationRequest) (*model.Conversation, error) {
	conv, err := s.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		conv.Title = *req.Title
	}
	if req.SystemPrompt != nil {
		conv.SystemPrompt = req.SystemPrompt
	}

	if err := s.repo.UpdateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not update conversation: %w", err)
	}
	return conv, nil
}

// DeleteConversation removes an owned conversation and, via the schema's
// cascade, all of its messages.
func (s *ChatService) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.GetConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.repo.DeleteConversation(ctx, conversationID); err != nil {
		return fmt.Errorf("could not delete conversation: %w", err)
	}
	slog.Info("Conversation deleted", "conversation_id", conversationID, "user_id", userID)
	return nil
}

// ListMessages returns the full message history of an owned conversation,
// oldest first.
func (s *ChatService) ListMessages(ctx context.Context, userID, conversationID string) ([]model.Message, error) {
	if _, err := s.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.repo.GetMessagesByConversation(ctx, conversationID)
}

// SendMessage stores the user's message, asks the conversation's AI provider
// for a reply, stores that too and returns both messages.
//
// The user message is committed before the provider call, matching the
// store-then-generate flow of the HTTP contract: if generation fails, the
// user's text is already persisted and the call returns ErrBadGateway.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID, content string) (*model.MessagePair, error) {
	conv, err := s.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	userMessage := model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           model.RoleUser,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, &userMessage); err != nil {
		return nil, fmt.Errorf("could not save user message: %w", err)
	}

	history, err := s.repo.GetMessagesByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not load message history: %w", err)
	}
	llmMessages := make([]llm.Message, 0, len(history))
	for _, msg := range history {
		llmMessages = append(llmMessages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	provider, err := s.providers.Get(conv.AIProvider)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrValidation, err)
	}

	systemPrompt := ""
	if conv.SystemPrompt != nil {
		systemPrompt = *conv.SystemPrompt
	}

	result, err := provider.Generate(ctx, llmMessages, conv.AIModel, systemPrompt)
	if err != nil {
		slog.Error("AI generation failed", "conversation_id", conversationID, "provider", conv.AIProvider, "error", err)
		return nil, fmt.Errorf("%w: failed to generate AI response: %v", app_errors.ErrBadGateway, err)
	}

	assistantMessage := model.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           model.RoleAssistant,
		Content:        result.Content,
		TokensUsed:     result.TokensUsed,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, &assistantMessage); err != nil {
		return nil, fmt.Errorf("could not save assistant message: %w", err)
	}

	slog.Info("Message exchange completed",
		"conversation_id", conversationID,
		"user_message_id", userMessage.ID,
		"assistant_message_id", assistantMessage.ID,
	)

	return &model.MessagePair{
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	}, nil
}
