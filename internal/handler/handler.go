package handler

import (
	"net/http"

	"github.com/hashir13-debug/bites-tracking/internal/middleware"

	"github.com/gin-gonic/gin"
)

const (
	// Client identifiers used when the caller sends no User-Agent
	DefaultWebClient    = "Web Browser"
	DefaultMobileClient = "Mobile/App"
)

// internalError logs err against the request and answers with a generic 500
func internalError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	middleware.Logger(c).WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
