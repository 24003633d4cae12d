// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pranavkale/eventslots/internal/auth"
	"github.com/pranavkale/eventslots/internal/clock"
	"github.com/pranavkale/eventslots/internal/config"
	"github.com/pranavkale/eventslots/internal/database"
	"github.com/pranavkale/eventslots/internal/handler"
	"github.com/pranavkale/eventslots/internal/logger"
	"github.com/pranavkale/eventslots/internal/repository"
	"github.com/pranavkale/eventslots/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	pool, err := database.NewPool(ctx, cfg.DB)
	if err != nil {
		zlog.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()
	zlog.Info("connected to postgres", zap.String("db", cfg.DB.DBName))

	if err := database.Migrate(ctx, pool); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}

	// Wire up layers.
	eventRepo := repository.NewEventRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	eventSvc := service.NewEventService(eventRepo, slotRepo, clock.NewSystem())
	bookingSvc := service.NewBookingService(eventRepo, slotRepo, bookingRepo)
	userSvc := service.NewUserService(userRepo, auth.BcryptHasher{}, jwtManager)

	router := handler.NewRouter(
		handler.NewEventHandler(eventSvc, zlog),
		handler.NewBookingHandler(bookingSvc, zlog),
		handler.NewUserHandler(userSvc, zlog),
		jwtManager,
		zlog,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		zlog.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
