package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/hashir13-debug/bites-tracking/internal/middleware"
	"github.com/hashir13-debug/bites-tracking/internal/service"

	"github.com/gin-gonic/gin"
)

// RiderHandler handles rider registration, dispatch and status reports
type RiderHandler struct {
	service service.RiderService
}

// NewRiderHandler creates a new RiderHandler
func NewRiderHandler(s service.RiderService) *RiderHandler {
	return &RiderHandler{service: s}
}

func (h *RiderHandler) GetRiders(c *gin.Context) {
	riders, err := h.service.ListRiders(c.Request.Context())
	if err != nil {
		internalError(c, err, "Failed to retrieve riders")
		return
	}
	c.JSON(http.StatusOK, riders)
}

func (h *RiderHandler) AddRider(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rider, err := h.service.AddRider(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCodeSpaceExhausted) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err, "Failed to add rider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": rider.Code})
}

func (h *RiderHandler) SetOnRoute(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.service.SetOnRoute(c.Request.Context(), req.Code); err != nil {
		internalError(c, err, "Failed to set rider on route")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RiderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Code   string `json:"code" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	_, err := h.service.UpdateStatus(c.Request.Context(), req.Code, req.Status, middleware.ClientID(c))
	if err != nil {
		var cooldown *service.CooldownError
		switch {
		case errors.Is(err, service.ErrRiderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid Code"})
		case errors.As(err, &cooldown):
			if cooldown.Remaining > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(cooldown.Remaining.Seconds()))))
			}
			c.JSON(http.StatusForbidden, gin.H{"error": cooldown.Error()})
		default:
			internalError(c, err, "Failed to update status")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RiderHandler) DeleteRider(c *gin.Context) {
	if err := h.service.DeleteRider(c.Request.Context(), c.Param("code")); err != nil {
		internalError(c, err, "Failed to delete rider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRiderRoutes registers rider routes
func (h *RiderHandler) RegisterRiderRoutes(rg gin.IRouter) {
	rg.GET("/get_riders", h.GetRiders)
	rg.POST("/add_rider", h.AddRider)
	rg.POST("/admin/on_route", h.SetOnRoute)
	rg.POST("/update_status", middleware.ClientIdentity(DefaultMobileClient), h.UpdateStatus)
	rg.DELETE("/delete_rider/:code", h.DeleteRider)
}
