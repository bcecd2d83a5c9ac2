package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"diarquia/config"
	"diarquia/models"
	"diarquia/utils"
)

const (
	shopLocation = "Almte. Pastene 70, Providencia, Santiago, Chile"
	shopTimezone = "America/Santiago"
	// Calendar color for barbershop bookings (blue).
	eventColorID = "9"

	callTimeout = 10 * time.Second
)

// DefaultEventService implements EventService against the Google
// Calendar API using a service account.
type DefaultEventService struct {
	Cfg *config.Config

	mu  sync.Mutex
	svc *gcal.Service
}

func NewEventService(cfg *config.Config) *DefaultEventService {
	return &DefaultEventService{Cfg: cfg}
}

// client returns the Calendar API client, building it on first use.
// Missing credentials fail fast before any network traffic.
func (s *DefaultEventService) client(ctx context.Context) (*gcal.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.svc != nil {
		return s.svc, nil
	}

	var missing []string
	if strings.TrimSpace(s.Cfg.GoogleClientEmail) == "" {
		missing = append(missing, "GOOGLE_CLIENT_EMAIL")
	}
	if strings.TrimSpace(s.Cfg.GooglePrivateKey) == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}
	if strings.TrimSpace(s.Cfg.GoogleCalendarID) == "" {
		missing = append(missing, "GOOGLE_CALENDAR_ID")
	}
	if len(missing) > 0 {
		return nil, &config.MissingKeysError{Component: "google_calendar", Keys: missing}
	}

	conf := &jwt.Config{
		Email:        s.Cfg.GoogleClientEmail,
		PrivateKey:   []byte(s.Cfg.GooglePrivateKey),
		PrivateKeyID: s.Cfg.GooglePrivateKeyID,
		Scopes:       []string{gcal.CalendarScope},
		TokenURL:     google.JWTTokenURL,
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(conf.Client(context.Background())))
	if err != nil {
		return nil, newError("configuration", err.Error())
	}
	s.svc = svc
	return svc, nil
}

// CreateEvent inserts a one-hour appointment event into the configured
// calendar and returns the provider's view of it. The call is not
// idempotent; repeated calls create duplicate events.
func (s *DefaultEventService) CreateEvent(ctx context.Context, booking models.BookingRequest) (*models.CalendarEvent, error) {
	logger := utils.GetLogger()

	svc, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	start := fmt.Sprintf("%sT%s:00", booking.Date, booking.Time)
	end := endDateTime(booking.Date, booking.Time)
	description := models.ServiceDetailed(booking.Service)

	event := &gcal.Event{
		Summary: fmt.Sprintf("%s - %s", description, booking.Name),
		Description: strings.TrimSpace(fmt.Sprintf(`
**RESERVA - LA DIARQUÍA BARBERÍA**

Cliente: %s
Email: %s
Teléfono: %s
Servicio: %s

---
Reserva realizada a través del sistema web de La Diarquía.
`, booking.Name, booking.Email, booking.Phone, description)),
		Location: shopLocation,
		Start:    &gcal.EventDateTime{DateTime: start, TimeZone: shopTimezone},
		End:      &gcal.EventDateTime{DateTime: end, TimeZone: shopTimezone},
		// The customer is not attached as an attendee: inviting guests
		// from a service account requires domain-wide delegation.
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
		ColorId: eventColorID,
	}

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := svc.Events.Insert(s.Cfg.GoogleCalendarID, event).Context(callCtx).Do()
	if err != nil {
		logger.Error("Failed to create calendar event", zap.Error(err))
		return nil, mapGoogleError(err)
	}

	logger.Info("Calendar event created", zap.String("eventID", resp.Id))

	return &models.CalendarEvent{
		ID:       resp.Id,
		HTMLLink: resp.HtmlLink,
		Status:   resp.Status,
		Created:  resp.Created,
	}, nil
}

// ListEvents returns the events between two dates (inclusive), for
// availability checks. Dates are YYYY-MM-DD.
func (s *DefaultEventService) ListEvents(ctx context.Context, startDate, endDate string) ([]*gcal.Event, error) {
	svc, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(shopTimezone)
	if err != nil {
		return nil, newError("configuration", err.Error())
	}
	timeMin, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return nil, newError("badRequest", fmt.Sprintf("fecha de inicio inválida: %s", startDate))
	}
	timeMax, err := time.ParseInLocation("2006-01-02", endDate, loc)
	if err != nil {
		return nil, newError("badRequest", fmt.Sprintf("fecha de fin inválida: %s", endDate))
	}
	timeMax = timeMax.Add(24*time.Hour - time.Second)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := svc.Events.List(s.Cfg.GoogleCalendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		TimeZone(shopTimezone).
		SingleEvents(true).
		OrderBy("startTime").
		Context(callCtx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return resp.Items, nil
}

// endDateTime computes the event end one hour after the start time.
// When the hour token of the start time does not parse, the historical
// fallback keeps an end hour of zero instead of failing the booking.
func endDateTime(date, timeOfDay string) string {
	hourToken, minuteToken, _ := strings.Cut(timeOfDay, ":")

	endHour := 0
	if h, err := strconv.Atoi(strings.TrimSpace(hourToken)); err == nil {
		endHour = h + 1
	}

	endMinute := "00"
	if m, err := strconv.Atoi(strings.TrimSpace(minuteToken)); err == nil {
		endMinute = fmt.Sprintf("%02d", m)
	}

	return fmt.Sprintf("%sT%02d:%s:00", date, endHour, endMinute)
}

// mapGoogleError translates a googleapi error into the calendar error
// taxonomy. Non-API errors (timeouts, transport) are wrapped verbatim.
func mapGoogleError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return newError("invalidCredentials", "Credenciales inválidas o expiradas")
		case 403:
			return newError("insufficientPermissions", "Permisos insuficientes")
		case 404:
			return newError("calendarNotFound", "Calendar ID no encontrado")
		}
		return newError("provider", apiErr.Message)
	}
	return newError("provider", err.Error())
}
