package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartlink-app/smartlink/internal/logger"
	"github.com/smartlink-app/smartlink/internal/services"
)

// ChatRequest is the JSON body for chat messages.
type ChatRequest struct {
	Message string `json:"message"`
}

// IngestRequest is the JSON body for storing a context document.
type IngestRequest struct {
	UserID uint   `json:"userId"`
	Text   string `json:"text"`
}

// ChatHandler answers the authenticated user's question, grounded in their
// ingested documents when any exist.
func ChatHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
			return
		}

		reply, err := chatService.Chat(c.Request.Context(), currentUserID(c), req.Message)
		if err != nil {
			logger.Error("chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process chat request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// LegacyChatHandler is the unauthenticated variant taking the user ID as a
// path parameter. Kept for older clients.
func LegacyChatHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Message is required"})
			return
		}

		reply, err := chatService.Chat(c.Request.Context(), uint(userID), req.Message)
		if err != nil {
			logger.Error("chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process chat request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// IngestHandler embeds and stores a text document for later chat grounding.
// Repeated ingestion of identical text creates independent documents.
func IngestHandler(chatService *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing text"})
			return
		}

		if _, err := chatService.Ingest(c.Request.Context(), req.UserID, req.Text); err != nil {
			logger.Error("ingest failed", zap.Uint("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store embedding"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Embedding stored successfully"})
	}
}
