package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"karesave-backend/internal/chatbot"
	"karesave-backend/internal/models"
	"karesave-backend/internal/repositories"
)

const (
	maxChatMessageLength = 1000
	chatHistoryLimit     = 100
)

type ChatService struct {
	responder   *chatbot.Responder
	messageRepo repositories.ChatMessageRepository
	log         *zap.Logger
	now         func() time.Time
}

// NewChatService accepts a nil messageRepo; the bot still answers but
// nothing is stored.
func NewChatService(responder *chatbot.Responder, messageRepo repositories.ChatMessageRepository, log *zap.Logger) *ChatService {
	return &ChatService{
		responder:   responder,
		messageRepo: messageRepo,
		log:         log,
		now:         time.Now,
	}
}

type SendMessageRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
}

type ChatExchange struct {
	Message models.ChatMessage `json:"message"`
	Reply   models.ChatMessage `json:"reply"`
}

// Send answers one message and records both sides of the exchange. Storage
// failures are logged, never returned.
func (s *ChatService) Send(ctx context.Context, sessionID string, req SendMessageRequest) (*ChatExchange, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if r := []rune(text); len(r) > maxChatMessageLength {
		text = string(r[:maxChatMessageLength])
	}

	reply := s.responder.Respond(text, req.Language)
	now := s.now().UTC()

	exchange := &ChatExchange{
		Message: models.ChatMessage{
			SessionID: sessionID,
			Text:      text,
			Language:  reply.Language,
			Timestamp: now,
		},
		Reply: models.ChatMessage{
			SessionID:   sessionID,
			Text:        reply.Text,
			IsBot:       true,
			Language:    reply.Language,
			Suggestions: reply.Suggestions,
			Timestamp:   now,
		},
	}

	if s.messageRepo != nil {
		for _, msg := range []*models.ChatMessage{&exchange.Message, &exchange.Reply} {
			if err := s.messageRepo.Create(ctx, msg); err != nil {
				s.log.Warn("failed to store chat message", zap.String("session_id", sessionID), zap.Error(err))
				break
			}
		}
	}
	return exchange, nil
}

// History returns the session's stored messages oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	if s.messageRepo == nil {
		return []models.ChatMessage{}, nil
	}
	msgs, err := s.messageRepo.ListBySession(ctx, sessionID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *ChatService) QuickReplies(lang string) []string {
	return s.responder.QuickReplies(lang)
}
