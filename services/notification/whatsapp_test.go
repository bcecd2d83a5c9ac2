package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"diarquia/config"
	"diarquia/models"
)

func testBooking() models.BookingRequest {
	return models.BookingRequest{
		Name:    "Juan Pérez",
		Email:   "juan@example.com",
		Phone:   "+56 912345678",
		Service: "corte-barba-diarquia",
		Date:    "2026-09-15",
		Time:    "15:30",
	}
}

func newTestService(t *testing.T, handler http.Handler) *DefaultNotificationService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewNotificationService(&config.Config{
		WhatsAppPhoneNumberID: "123456",
		WhatsAppAccessToken:   "test-token",
		WhatsAppAPIBaseURL:    server.URL,
	})
}

func acceptedResponse(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(map[string]any{
		"messaging_product": "whatsapp",
		"messages":          []map[string]string{{"id": "wamid.ABC"}},
	})
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"+56 912345678", "56912345678"},
		{"+56 9 1234 5678", "56912345678"},
		{"56-9-1234-5678", "56912345678"},
		{"56912345678", "56912345678"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate("2026-09-15"); got != "15/09/2026" {
		t.Errorf("formatDate = %q, want 15/09/2026", got)
	}
	if got := formatDate("mañana"); got != "mañana" {
		t.Errorf("non-ISO dates pass through, got %q", got)
	}
}

func TestSendConfirmation_TemplatePayload(t *testing.T) {
	var sent messagePayload
	var auth string
	mux := http.NewServeMux()
	mux.HandleFunc("/123456/messages", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		acceptedResponse(w)
	})

	s := newTestService(t, mux)
	receipt, err := s.SendConfirmation(context.Background(), testBooking())
	if err != nil {
		t.Fatalf("SendConfirmation failed: %v", err)
	}

	if auth != "Bearer test-token" {
		t.Errorf("unexpected authorization header: %q", auth)
	}
	if receipt.MessageID != "wamid.ABC" || receipt.Status != "sent" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if receipt.Recipient != "56912345678" {
		t.Errorf("recipient must be normalized, got %q", receipt.Recipient)
	}

	if sent.MessagingProduct != "whatsapp" || sent.Type != "template" {
		t.Errorf("unexpected payload shape: %+v", sent)
	}
	if sent.To != "56912345678" {
		t.Errorf("unexpected recipient: %q", sent.To)
	}
	if sent.Template.Name != confirmationTemplate || sent.Template.Language["code"] != "es" {
		t.Errorf("unexpected template: %+v", sent.Template)
	}
	params := sent.Template.Components[0].Parameters
	if len(params) != 4 {
		t.Fatalf("expected four positional parameters, got %d", len(params))
	}
	want := []string{"Juan Pérez", `Corte y Barba "La Diarquía"`, "15/09/2026", "15:30"}
	for i, p := range params {
		if p.Type != "text" || p.Text != want[i] {
			t.Errorf("parameter %d = %+v, want text %q", i+1, p, want[i])
		}
	}
}

func TestSendConfirmation_UnknownServicePassesThrough(t *testing.T) {
	var sent messagePayload
	mux := http.NewServeMux()
	mux.HandleFunc("/123456/messages", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		acceptedResponse(w)
	})

	s := newTestService(t, mux)
	b := testBooking()
	b.Service = "afeitado-clasico"
	if _, err := s.SendConfirmation(context.Background(), b); err != nil {
		t.Fatalf("SendConfirmation failed: %v", err)
	}
	if got := sent.Template.Components[0].Parameters[1].Text; got != "afeitado-clasico" {
		t.Errorf("unknown service id must pass through verbatim, got %q", got)
	}
}

func TestSendConfirmation_ProviderErrors(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
		wantMsg  string
	}{
		{http.StatusUnauthorized, "invalidToken", "Token de acceso inválido o expirado"},
		{http.StatusForbidden, "insufficientPermissions", "Permisos insuficientes"},
		{http.StatusNotFound, "phoneLineNotFound", "Phone Number ID no encontrado"},
		{http.StatusBadRequest, "badRequest", "(#132001) Template name does not exist"},
	}
	for _, tt := range tests {
		mux := http.NewServeMux()
		mux.HandleFunc("/123456/messages", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "(#132001) Template name does not exist"},
			})
		})

		s := newTestService(t, mux)
		_, err := s.SendConfirmation(context.Background(), testBooking())

		var notifErr *Error
		if !errors.As(err, &notifErr) {
			t.Fatalf("status %d: expected notification Error, got %v", tt.status, err)
		}
		if notifErr.Code != tt.wantCode {
			t.Errorf("status %d: code = %q, want %q", tt.status, notifErr.Code, tt.wantCode)
		}
		if notifErr.Message != tt.wantMsg {
			t.Errorf("status %d: message = %q, want %q", tt.status, notifErr.Message, tt.wantMsg)
		}
	}
}

func TestSendConfirmation_ProviderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	s := NewNotificationService(&config.Config{
		WhatsAppPhoneNumberID: "123456",
		WhatsAppAccessToken:   "test-token",
		WhatsAppAPIBaseURL:    server.URL,
	})

	_, err := s.SendConfirmation(context.Background(), testBooking())
	var notifErr *Error
	if !errors.As(err, &notifErr) || notifErr.Code != "unreachable" {
		t.Fatalf("expected unreachable error, got %v", err)
	}
}

func TestSendConfirmation_MissingConfiguration(t *testing.T) {
	s := NewNotificationService(&config.Config{})

	_, err := s.SendConfirmation(context.Background(), testBooking())
	var cfgErr *config.MissingKeysError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected MissingKeysError, got %v", err)
	}
	if cfgErr.Component != "whatsapp" {
		t.Errorf("unexpected component: %q", cfgErr.Component)
	}
	if len(cfgErr.Keys) != 2 {
		t.Errorf("expected both keys reported, got %v", cfgErr.Keys)
	}
}

func TestSendMessage_Freeform(t *testing.T) {
	var sent messagePayload
	mux := http.NewServeMux()
	mux.HandleFunc("/123456/messages", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		acceptedResponse(w)
	})

	s := newTestService(t, mux)
	receipt, err := s.SendMessage(context.Background(), "+56 912345678", "Recordatorio: tu cita es mañana")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if sent.Type != "text" || sent.RecipientType != "individual" {
		t.Errorf("unexpected payload shape: %+v", sent)
	}
	if sent.Text == nil || sent.Text.Body != "Recordatorio: tu cita es mañana" || sent.Text.PreviewURL {
		t.Errorf("unexpected text body: %+v", sent.Text)
	}
	if receipt.Recipient != "56912345678" {
		t.Errorf("recipient must be normalized, got %q", receipt.Recipient)
	}
}
