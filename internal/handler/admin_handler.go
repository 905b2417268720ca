package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/hashir13-debug/bites-tracking/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin account management
type AdminHandler struct {
	service service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

func (h *AdminHandler) GetAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to retrieve admins")
		return
	}
	c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.service.AddAdmin(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrAdminAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err, "Failed to add admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin ID"})
		return
	}
	if err := h.service.DeleteAdmin(c.Request.Context(), id); err != nil {
		internalError(c, err, "Failed to delete admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterAdminRoutes registers admin management routes
func (h *AdminHandler) RegisterAdminRoutes(rg gin.IRouter) {
	rg.GET("/get_admins", h.GetAdmins)
	rg.POST("/add_admin", h.AddAdmin)
	rg.DELETE("/delete_admin/:id", h.DeleteAdmin)
}
