package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"shortener/internal/config"
	"shortener/internal/database"
	httpdelivery "shortener/internal/delivery/http"
	"shortener/internal/generator"
	"shortener/internal/repository/sqlite"
	"shortener/internal/usecase"

	_ "modernc.org/sqlite"

	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg := config.Load()

	// Ensure data directory exists
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create data directory", zap.Error(err))
		}
	}

	// Open database
	db, err := database.OpenDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	logger.Info("database initialized", zap.String("path", cfg.DatabasePath))

	// Wire dependencies
	linkRepo := sqlite.NewLinkRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	gen := generator.New(cfg.ShortCodeLength)

	linkService := usecase.NewLinkService(linkRepo, gen, logger)
	authService := usecase.NewAuthService(userRepo, []byte(cfg.JWTSecret), logger)

	handler := httpdelivery.NewHandler(linkService, cfg.BaseURL, cfg.FallbackURL, cfg.AllowAnonymousLinks, logger)
	authHandler := httpdelivery.NewAuthHandler(authService, logger)
	router := httpdelivery.NewRouter(handler, authHandler, authService, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("base_url", cfg.BaseURL),
			zap.Bool("allow_anonymous_links", cfg.AllowAnonymousLinks),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	// Graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
