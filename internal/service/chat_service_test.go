package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "chatstarter/internal/errors"
	"chatstarter/internal/llm"
	mock_llm "chatstarter/internal/llm/mocks"
	"chatstarter/internal/model"
	"chatstarter/internal/repository"
	mock_repo "chatstarter/internal/repository/mocks"
	"chatstarter/internal/service"
)

type chatMocks struct {
	repo      *mock_repo.MockRepository
	providers *mock_llm.MockProviderFactory
	provider  *mock_llm.MockProvider
}

func setupChatService(t *testing.T) (*service.ChatService, chatMocks) {
	mocks := chatMocks{
		repo:      mock_repo.NewMockRepository(t),
		providers: mock_llm.NewMockProviderFactory(t),
		provider:  mock_llm.NewMockProvider(t),
	}
	return service.NewChatService(mocks.repo, mocks.providers), mocks
}

func ownedConversation() *model.Conversation {
	prompt := "You are a helpful assistant."
	return &model.Conversation{
		ID:           "conv-1",
		UserID:       "user-1",
		Title:        "My chat",
		AIProvider:   "openai",
		AIModel:      "gpt-4",
		SystemPrompt: &prompt,
	}
}

func TestChatService_CreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - defaults applied", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("CreateConversation", ctx, mock.AnythingOfType("*model.Conversation")).Return(nil).Once()

		conv, err := chatService.CreateConversation(ctx, "user-1", &service.CreateConversationRequest{Title: "New chat"})
		require.NoError(t, err)
		assert.Equal(t, "user-1", conv.UserID)
		assert.Equal(t, "openai", conv.AIProvider)
		assert.Equal(t, "gpt-4", conv.AIModel)
		assert.NotEmpty(t, conv.ID)
	})

	t.Run("Success - explicit provider and model kept", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("CreateConversation", ctx, mock.AnythingOfType("*model.Conversation")).Return(nil).Once()

		conv, err := chatService.CreateConversation(ctx, "user-1", &service.CreateConversationRequest{
			Title:      "Claude chat",
			AIProvider: "anthropic",
			AIModel:    "claude-3-haiku",
		})
		require.NoError(t, err)
		assert.Equal(t, "anthropic", conv.AIProvider)
		assert.Equal(t, "claude-3-haiku", conv.AIModel)
	})
}

func TestChatService_GetConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()

		got, err := chatService.GetConversation(ctx, "user-1", "conv-1")
		require.NoError(t, err)
		assert.Equal(t, conv, got)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := chatService.GetConversation(ctx, "user-1", "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - owned by someone else", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()

		_, err := chatService.GetConversation(ctx, "user-2", "conv-1")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})
}

func TestChatService_UpdateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - partial update", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()
		newTitle := "Renamed"

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
		mocks.repo.On("UpdateConversation", ctx, mock.AnythingOfType("*model.Conversation")).Return(nil).Once()

		updated, err := chatService.UpdateConversation(ctx, "user-1", "conv-1", &service.UpdateConversationRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		// Untouched fields survive the partial update.
		require.NotNil(t, updated.SystemPrompt)
		assert.Equal(t, "You are a helpful assistant.", *updated.SystemPrompt)
	})

	t.Run("Failure - foreign conversation", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()
		newTitle := "Renamed"

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()

		_, err := chatService.UpdateConversation(ctx, "intruder", "conv-1", &service.UpdateConversationRequest{Title: &newTitle})
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})
}

func TestChatService_DeleteConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(ownedConversation(), nil).Once()
		mocks.repo.On("DeleteConversation", ctx, "conv-1").Return(nil).Once()

		assert.NoError(t, chatService.DeleteConversation(ctx, "user-1", "conv-1"))
	})

	t.Run("Failure - not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		err := chatService.DeleteConversation(ctx, "user-1", "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - happy path", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()
		tokens := 5

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).Return(nil).Twice()
		mocks.repo.On("GetMessagesByConversation", ctx, "conv-1").Return([]model.Message{
			{Role: model.RoleUser, Content: "Hello AI"},
		}, nil).Once()
		mocks.providers.On("Get", "openai").Return(mocks.provider, nil).Once()
		mocks.provider.On("Generate", ctx,
			[]llm.Message{{Role: "user", Content: "Hello AI"}},
			"gpt-4",
			"You are a helpful assistant.",
		).Return(&llm.Result{Content: "Hi!", TokensUsed: &tokens}, nil).Once()

		pair, err := chatService.SendMessage(ctx, "user-1", "conv-1", "Hello AI")
		require.NoError(t, err)

		assert.Equal(t, model.RoleUser, pair.UserMessage.Role)
		assert.Equal(t, "Hello AI", pair.UserMessage.Content)
		assert.Nil(t, pair.UserMessage.TokensUsed)

		assert.Equal(t, model.RoleAssistant, pair.AssistantMessage.Role)
		assert.Equal(t, "Hi!", pair.AssistantMessage.Content)
		require.NotNil(t, pair.AssistantMessage.TokensUsed)
		assert.Equal(t, 5, *pair.AssistantMessage.TokensUsed)
	})

	t.Run("Failure - provider error maps to bad gateway, user message kept", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
		// Only the user message is stored; the assistant write never happens.
		mocks.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).Return(nil).Once()
		mocks.repo.On("GetMessagesByConversation", ctx, "conv-1").Return([]model.Message{
			{Role: model.RoleUser, Content: "Hello AI"},
		}, nil).Once()
		mocks.providers.On("Get", "openai").Return(mocks.provider, nil).Once()
		mocks.provider.On("Generate", ctx, mock.Anything, "gpt-4", mock.Anything).
			Return(nil, errors.New("upstream exploded")).Once()

		_, err := chatService.SendMessage(ctx, "user-1", "conv-1", "Hello AI")
		assert.ErrorIs(t, err, app_errors.ErrBadGateway)
	})

	t.Run("Failure - unknown provider maps to validation error", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()
		conv.AIProvider = "grok"

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).Return(nil).Once()
		mocks.repo.On("GetMessagesByConversation", ctx, "conv-1").Return(nil, nil).Once()
		mocks.providers.On("Get", "grok").Return(nil, errors.New("unknown provider: grok")).Once()

		_, err := chatService.SendMessage(ctx, "user-1", "conv-1", "Hello AI")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - foreign conversation rejected before any write", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		conv := ownedConversation()

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(conv, nil).Once()

		_, err := chatService.SendMessage(ctx, "intruder", "conv-1", "Hello AI")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})
}

func TestChatService_ListMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		expected := []model.Message{{ID: "msg-1"}, {ID: "msg-2"}}

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(ownedConversation(), nil).Once()
		mocks.repo.On("GetMessagesByConversation", ctx, "conv-1").Return(expected, nil).Once()

		messages, err := chatService.ListMessages(ctx, "user-1", "conv-1")
		require.NoError(t, err)
		assert.Equal(t, expected, messages)
	})

	t.Run("Failure - ownership enforced", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetConversation", ctx, "conv-1").Return(ownedConversation(), nil).Once()

		_, err := chatService.ListMessages(ctx, "intruder", "conv-1")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})
}
