package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karesave-backend/internal/middleware"
	"karesave-backend/internal/services"
)

type ChatHandler struct {
	chatService ChatServiceInterface
}

func NewChatHandler(chatService ChatServiceInterface) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("/messages", h.SendMessage)
		chat.GET("/messages", h.History)
		chat.GET("/quick-replies", h.QuickReplies)
	}
}

// @Summary Ask the assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body services.SendMessageRequest true "Message and optional language (en, hi, te)"
// @Success 200 {object} services.ChatExchange
// @Router /api/v1/chat/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	exchange, err := h.chatService.Send(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func (h *ChatHandler) History(c *gin.Context) {
	msgs, err := h.chatService.History(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *ChatHandler) QuickReplies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quick_replies": h.chatService.QuickReplies(c.Query("lang"))})
}
