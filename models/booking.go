package models

// BookingRequest is the inbound booking submission. Nothing is
// persisted; the request lives only for one pipeline run.
type BookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
}

// CalendarEvent is the read-only view of the event created by the
// calendar provider.
type CalendarEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
	Status   string `json:"status"`
	Created  string `json:"created"`
}

// NotificationReceipt is the read-only view of the confirmation message
// accepted by the messaging provider.
type NotificationReceipt struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
}

// Customer is the customer subset echoed back in a BookingResult.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Appointment is the appointment subset echoed back in a BookingResult.
type Appointment struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// BookingResult is the composite returned to the caller after a fully
// successful pipeline run.
type BookingResult struct {
	BookingID         string      `json:"bookingId"`
	CalendarEventID   string      `json:"calendarEventId"`
	CalendarEventLink string      `json:"calendarEventLink"`
	WhatsAppMessageID string      `json:"whatsappMessageId"`
	Customer          Customer    `json:"customer"`
	Appointment       Appointment `json:"appointment"`
}
