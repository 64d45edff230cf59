package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/app"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ClearHistoryRequest struct {
	SessionID string `json:"sessionId"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Start(c *gin.Context) {
	sessionID := h.chatService.StartSession()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionID,
		"timestamp": time.Now().Format(time.RFC3339),
		"message":   "새로운 상담 세션이 시작되었습니다.",
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "메시지가 필요합니다.",
		})
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), app.SendMessageInput{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, app.ErrMessageEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "메시지가 필요합니다.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "서버 오류가 발생했습니다.",
		})
		return
	}

	payload := gin.H{
		"success":   true,
		"response":  result.Response,
		"sessionId": result.SessionID,
	}
	if result.DataSource != "" {
		payload["dataSource"] = result.DataSource
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.Query("sessionId")
	}
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "세션 ID가 필요합니다.",
		})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	messages, err := h.chatService.History(c.Request.Context(), sessionID, limit)
	if err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "세션을 찾을 수 없습니다.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "서버 오류가 발생했습니다.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionID,
		"messages":  messages,
	})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	var req ClearHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "세션 ID가 필요합니다.",
		})
		return
	}

	if err := h.chatService.ClearHistory(c.Request.Context(), req.SessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "세션을 찾을 수 없습니다.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "대화 기록이 삭제되었습니다.",
	})
}
