package calendar

import (
	"context"

	gcal "google.golang.org/api/calendar/v3"

	"diarquia/models"
)

// EventService defines the calendar-provider operations the booking
// pipeline depends on.
type EventService interface {
	CreateEvent(ctx context.Context, booking models.BookingRequest) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, startDate, endDate string) ([]*gcal.Event, error)
}
