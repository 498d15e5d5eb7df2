package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"karesave-backend/internal/chatbot"
	"karesave-backend/internal/middleware"
	"karesave-backend/internal/services"
)

func TestChatHandler(t *testing.T) {
	router := newRouter()
	svc := services.NewChatService(chatbot.NewResponder(nil), nil, zap.NewNop())
	NewChatHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	w := doJSON(t, router, http.MethodPost, "/api/v1/chat/messages",
		map[string]string{"text": "How can I volunteer?"}, middleware.SessionHeader, session)
	require.Equal(t, http.StatusOK, w.Code)
	var ex services.ChatExchange
	decode(t, w, &ex)
	assert.True(t, ex.Reply.IsBot)
	assert.Equal(t, chatbot.English, ex.Reply.Language)

	w = doJSON(t, router, http.MethodPost, "/api/v1/chat/messages", map[string]string{"text": "  "}, middleware.SessionHeader, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var qr struct {
		QuickReplies []string `json:"quick_replies"`
	}
	decode(t, doJSON(t, router, http.MethodGet, "/api/v1/chat/quick-replies?lang=hi", nil), &qr)
	assert.NotEmpty(t, qr.QuickReplies)

	w = doJSON(t, router, http.MethodGet, "/api/v1/chat/messages", nil, middleware.SessionHeader, session)
	assert.Equal(t, http.StatusOK, w.Code)
}
