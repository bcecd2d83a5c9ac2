package notification

import (
	"context"

	"diarquia/models"
)

// NotificationService defines the messaging-provider operations the
// booking pipeline depends on.
type NotificationService interface {
	// SendConfirmation sends the pre-approved booking confirmation
	// template to the customer.
	SendConfirmation(ctx context.Context, booking models.BookingRequest) (*models.NotificationReceipt, error)
	// SendMessage sends a freeform text message, for reminder and
	// cancellation flows.
	SendMessage(ctx context.Context, phone, text string) (*models.NotificationReceipt, error)
}
