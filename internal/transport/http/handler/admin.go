package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hr-assistant/internal/app"
	"hr-assistant/internal/transport/http/response"
)

type AdminHandler struct {
	adminService *app.AdminService
	chatService  *app.ChatService
}

type AdminLoginRequest struct {
	AdminKey string `json:"adminKey" binding:"required"`
}

func NewAdminHandler(adminService *app.AdminService, chatService *app.ChatService) *AdminHandler {
	return &AdminHandler{adminService: adminService, chatService: chatService}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.adminService.Login(req.AdminKey)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "admin login failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *AdminHandler) ListSessions(c *gin.Context) {
	response.OK(c, h.chatService.ListSessions())
}

func (h *AdminHandler) Reload(c *gin.Context) {
	if err := h.adminService.Reload(); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "reload failed")
		return
	}
	response.OK(c, gin.H{"reloaded": true})
}
