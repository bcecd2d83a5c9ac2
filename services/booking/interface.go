package booking

import (
	"context"

	"diarquia/models"
	"diarquia/services/calendar"
	"diarquia/services/notification"
)

// BookingService defines the interface for processing a booking
// submission end to end.
type BookingService interface {
	ProcessBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Events   calendar.EventService
	Notifier notification.NotificationService
}
