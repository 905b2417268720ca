package handler

import (
	"errors"
	"net/http"

	"github.com/hashir13-debug/bites-tracking/internal/middleware"
	"github.com/hashir13-debug/bites-tracking/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and rider code check-in
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password, middleware.ClientID(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Credentials"})
			return
		}
		internalError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":  user.Role,
		"email": user.Email,
	})
}

func (h *AuthHandler) CheckCode(c *gin.Context) {
	rider, err := h.service.CheckRiderCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrRiderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false})
			return
		}
		internalError(c, err, "Failed to check code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": rider.Name})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg gin.IRouter) {
	rg.POST("/login", middleware.ClientIdentity(DefaultWebClient), h.Login)
	rg.GET("/check_code/:code", h.CheckCode)
}
