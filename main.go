package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diarquia/config"
	"diarquia/handlers"
	"diarquia/routes"
	"diarquia/services/booking"
	"diarquia/services/calendar"
	"diarquia/services/notification"
	"diarquia/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	utils.InitializeLogger(cfg.Env)
	logger := utils.GetLogger()
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// services.
	eventService := calendar.NewEventService(cfg)
	notificationService := notification.NewNotificationService(cfg)
	bookingService := &booking.DefaultBookingService{
		Events:   eventService,
		Notifier: notificationService,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, cfg, logger)
	routes.RegisterRoutes(router, cfg, bookingHandler)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("LA DIARQUÍA - SERVIDOR BACKEND",
		zap.String("addr", srv.Addr),
		zap.String("environment", cfg.Env),
		zap.String("cors", strings.Join(cfg.AllowedOrigins, ", ")),
		zap.Strings("endpoints", []string{"GET /", "GET /health", "POST /api/bookings"}))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
