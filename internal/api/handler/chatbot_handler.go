package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsingh-08/NetraAI/internal/domain"
)

// ChatResponder answers a query and returns the response plus the
// normalized form of the query.
type ChatResponder interface {
	Reply(query string) (response string, normalized string)
}

type ChatbotHandler struct {
	chatbot ChatResponder
}

func NewChatbotHandler(chatbot ChatResponder) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// POST /chatbot
//
// A missing or empty query is not an error; it falls through to the
// chatbot's default response.
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	response, normalized := h.chatbot.Reply(req.Query)

	c.JSON(http.StatusOK, domain.ChatResponse{
		Success:  true,
		Response: response,
		Query:    normalized,
	})
}
