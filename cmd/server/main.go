package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashir13-debug/bites-tracking/internal/config"
	"github.com/hashir13-debug/bites-tracking/internal/handler"
	"github.com/hashir13-debug/bites-tracking/internal/logger"
	"github.com/hashir13-debug/bites-tracking/internal/repository"
	"github.com/hashir13-debug/bites-tracking/internal/repository/memory"
	"github.com/hashir13-debug/bites-tracking/internal/service"
	"github.com/hashir13-debug/bites-tracking/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx := context.Background()

	// --- Record store ---
	var (
		userRepo  repository.UserRepository
		riderRepo repository.RiderRepository
		pinger    handler.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		userRepo = memory.NewUserRepository()
		riderRepo = memory.NewRiderRepository()
	default:
		dbPool, err := config.ConnectDB(ctx, &cfg.DB)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()

		if err := config.AutoMigrate(ctx, dbPool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		userRepo = repository.NewUserRepository(dbPool)
		riderRepo = repository.NewRiderRepository(dbPool)
		pinger = dbPool
	}

	// --- Initialize Services ---
	clock := utils.NewClock(cfg.Rider.Location)
	authService := service.NewAuthService(userRepo, riderRepo)
	adminService := service.NewAdminService(userRepo)
	riderService := service.NewRiderService(riderRepo, cfg.Rider, clock, utils.NewCodeGenerator())

	if err := authService.EnsureSuperadmin(ctx, cfg.Seed.SuperadminEmail, cfg.Seed.SuperadminPassword); err != nil {
		log.Fatalf("Failed to seed superadmin: %v", err)
	}

	// --- Initialize Handlers ---
	router := handler.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewAdminHandler(adminService),
		handler.NewRiderHandler(riderService),
		pinger,
	)

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}
