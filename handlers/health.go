package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"diarquia/config"
	"diarquia/models"
)

// Index handles GET / with the service banner and endpoint list.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Envelope{
			Success: true,
			Message: "La Diarquía - API de Reservas",
			Data: gin.H{
				"version": "1.0.0",
				"endpoints": gin.H{
					"health":   "GET /health",
					"bookings": "POST /api/bookings",
				},
			},
		})
	}
}

// Health handles GET /health.
func Health(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Envelope{
			Success: true,
			Message: "Servidor funcionando correctamente",
			Data: gin.H{
				"timestamp":   time.Now().UTC().Format(time.RFC3339),
				"environment": cfg.Env,
			},
		})
	}
}

// NotFound handles every unmatched route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Envelope{
			Success: false,
			Message: "Ruta no encontrada",
			Details: gin.H{"path": c.Request.URL.Path},
		})
	}
}
