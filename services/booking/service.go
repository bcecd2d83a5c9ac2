package booking

import (
	"context"

	"go.uber.org/zap"

	"diarquia/models"
	"diarquia/utils"
)

// ProcessBooking runs the intake pipeline in strict order: validate,
// create the calendar event, send the WhatsApp confirmation, assemble
// the result. A validation failure makes no external call; a calendar
// failure aborts before the confirmation is attempted. If the
// confirmation fails after the event was created, the event stays:
// there is no compensating rollback, the error category tells the
// caller which half happened.
func (s *DefaultBookingService) ProcessBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResult, error) {
	logger := utils.GetLogger()

	if err := ValidateBookingRequest(req); err != nil {
		logger.Warn("Booking validation failed", zap.Error(err))
		return nil, err
	}

	logger.Info("Creating calendar event",
		zap.String("service", req.Service),
		zap.String("date", req.Date),
		zap.String("time", req.Time))
	event, err := s.Events.CreateEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Sending WhatsApp confirmation", zap.String("eventID", event.ID))
	receipt, err := s.Notifier.SendConfirmation(ctx, req)
	if err != nil {
		logger.Error("Confirmation failed after event creation",
			zap.String("eventID", event.ID), zap.Error(err))
		return nil, err
	}

	return &models.BookingResult{
		BookingID:         event.ID,
		CalendarEventID:   event.ID,
		CalendarEventLink: event.HTMLLink,
		WhatsAppMessageID: receipt.MessageID,
		Customer: models.Customer{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		},
		Appointment: models.Appointment{
			Service: req.Service,
			Date:    req.Date,
			Time:    req.Time,
		},
	}, nil
}
