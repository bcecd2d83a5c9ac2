package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"diarquia/config"
	"diarquia/handlers"
	"diarquia/middleware"
)

// RegisterRoutes wires the full HTTP surface onto the router: CORS,
// rate limiting, the banner and health endpoints, the booking intake
// endpoint, and the catch-all 404.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, bookingHandler *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(cfg.MaxRequestsPerMin))

	r.GET("/", handlers.Index())
	r.GET("/health", handlers.Health(cfg))

	api := r.Group("/api/bookings")
	{
		api.POST("", bookingHandler.CreateBooking)
	}

	r.NoRoute(handlers.NotFound())
}
