package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/chatbot"
	"karesave-backend/internal/models"
)

func TestChatService_SendStoresBothSides(t *testing.T) {
	repo := &chatRepoMock{}
	svc := NewChatService(chatbot.NewResponder(nil), repo, zap.NewNop())
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.ChatMessage) bool { return !m.IsBot })).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.ChatMessage) bool { return m.IsBot })).Return(nil).Once()

	ex, err := svc.Send(context.Background(), "s1", SendMessageRequest{Text: "  tell me about biogas  "})
	require.NoError(t, err)
	assert.Equal(t, "tell me about biogas", ex.Message.Text)
	assert.True(t, ex.Reply.IsBot)
	assert.Equal(t, chatbot.English, ex.Reply.Language)
	assert.NotEmpty(t, ex.Reply.Text)
	repo.AssertExpectations(t)
}

func TestChatService_StorageFailureStillReplies(t *testing.T) {
	repo := &chatRepoMock{}
	svc := NewChatService(chatbot.NewResponder(nil), repo, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()

	ex, err := svc.Send(context.Background(), "s1", SendMessageRequest{Text: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.Reply.Text)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestChatService_EmptyAndLongMessages(t *testing.T) {
	svc := NewChatService(chatbot.NewResponder(nil), nil, zap.NewNop())

	_, err := svc.Send(context.Background(), "s1", SendMessageRequest{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	long := strings.Repeat("न", maxChatMessageLength+10)
	ex, err := svc.Send(context.Background(), "s1", SendMessageRequest{Text: long})
	require.NoError(t, err)
	assert.Len(t, []rune(ex.Message.Text), maxChatMessageLength)
	assert.Equal(t, chatbot.Hindi, ex.Reply.Language)
}

func TestChatService_HistoryWithoutStore(t *testing.T) {
	svc := NewChatService(chatbot.NewResponder(nil), nil, zap.NewNop())

	msgs, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NotEmpty(t, svc.QuickReplies(chatbot.Telugu))
}
