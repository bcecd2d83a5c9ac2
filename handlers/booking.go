package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diarquia/config"
	"diarquia/models"
	"diarquia/services/booking"
	"diarquia/services/calendar"
	"diarquia/services/notification"
	"diarquia/utils"
)

// BookingHandler adapts HTTP requests to the booking pipeline and maps
// the error taxonomy to response statuses.
type BookingHandler struct {
	Service booking.BookingService
	Cfg     *config.Config
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, cfg *config.Config, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Cfg: cfg, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Cuerpo de la petición inválido", err.Error())
		return
	}

	h.Logger.Info("Processing new booking",
		zap.String("service", req.Service),
		zap.String("date", req.Date),
		zap.String("time", req.Time))

	result, err := h.Service.ProcessBooking(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Envelope{
		Success: true,
		Message: "Reserva creada exitosamente",
		Data:    result,
	})
}

// respondError is the single place translating pipeline failures into
// transport responses. Calendar-provider failures (including its
// missing configuration) map to 503 with a generic retry-later message
// so provider internals never reach the end user. A notification
// failure happens after the event exists and gets its own category.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		resp := models.Envelope{Success: false, Message: vErr.Message}
		if vErr.MissingFields != nil {
			resp.Details = gin.H{"missingFields": vErr.MissingFields}
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	var calErr *calendar.Error
	var cfgErr *config.MissingKeysError
	if errors.As(err, &calErr) || (errors.As(err, &cfgErr) && cfgErr.Component == "google_calendar") {
		h.Logger.Error("Calendar provider failure", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.Envelope{
			Success: false,
			Message: "Error al conectar con Google Calendar. Intenta más tarde.",
		})
		return
	}

	var notifErr *notification.Error
	if errors.As(err, &notifErr) {
		h.Logger.Error("Confirmation failure after event creation", zap.Error(err))
		resp := models.Envelope{
			Success: false,
			Message: "La reserva fue agendada, pero no se pudo enviar la confirmación por WhatsApp",
		}
		if !h.Cfg.IsProduction() {
			resp.Error = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	h.Logger.Error("Unhandled booking failure", zap.Error(err))
	resp := models.Envelope{Success: false, Message: "Error interno del servidor"}
	if !h.Cfg.IsProduction() {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
