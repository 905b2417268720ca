package handler

import (
	"context"
	"net/http"

	"github.com/hashir13-debug/bites-tracking/internal/middleware"

	"github.com/gin-gonic/gin"
)

const homeMessage = "Bites4Life API is Running!"

// Pinger reports store reachability; *pgxpool.Pool satisfies it
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the gin engine with every route registered. db may be nil
// when running on the in-memory store.
func NewRouter(auth *AuthHandler, admin *AdminHandler, rider *RiderHandler, db Pinger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, homeMessage)
	})
	router.GET("/health", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "memory"})
			return
		}
		if err := db.Ping(c.Request.Context()); err != nil {
			middleware.Logger(c).WithError(err).Warn("health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	auth.RegisterAuthRoutes(router)
	admin.RegisterAdminRoutes(router)
	rider.RegisterRiderRoutes(router)

	return router
}
