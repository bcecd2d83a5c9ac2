package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"diarquia/config"
	"diarquia/models"
	"diarquia/utils"
)

const (
	// Pre-approved template registered in Meta Business Manager.
	confirmationTemplate = "confirmacion_reserva_barberia"
	templateLanguage     = "es"
)

var phoneReplacer = strings.NewReplacer(" ", "", "-", "", "+", "")

// DefaultNotificationService implements NotificationService against the
// WhatsApp Business (Meta Graph) API.
type DefaultNotificationService struct {
	Cfg    *config.Config
	Client *http.Client
}

func NewNotificationService(cfg *config.Config) *DefaultNotificationService {
	return &DefaultNotificationService{
		Cfg:    cfg,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type textParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string          `json:"type"`
	Parameters []textParameter `json:"parameters"`
}

type templateBody struct {
	Name       string              `json:"name"`
	Language   map[string]string   `json:"language"`
	Components []templateComponent `json:"components"`
}

type messagePayload struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type,omitempty"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Template         *templateBody `json:"template,omitempty"`
	Text             *textBody     `json:"text,omitempty"`
}

type textBody struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type graphResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type graphErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SendConfirmation sends the booking confirmation template with four
// positional parameters: name, service, date (DD/MM/YYYY) and time.
// The call is not idempotent; repeated calls send duplicate messages.
func (s *DefaultNotificationService) SendConfirmation(ctx context.Context, booking models.BookingRequest) (*models.NotificationReceipt, error) {
	if err := s.requireConfig(); err != nil {
		return nil, err
	}

	recipient := NormalizePhone(booking.Phone)
	serviceName := models.ServiceFriendly(booking.Service)

	payload := messagePayload{
		MessagingProduct: "whatsapp",
		To:               recipient,
		Type:             "template",
		Template: &templateBody{
			Name:     confirmationTemplate,
			Language: map[string]string{"code": templateLanguage},
			Components: []templateComponent{
				{
					Type: "body",
					Parameters: []textParameter{
						{Type: "text", Text: booking.Name},
						{Type: "text", Text: serviceName},
						{Type: "text", Text: formatDate(booking.Date)},
						{Type: "text", Text: booking.Time},
					},
				},
			},
		},
	}

	receipt, err := s.post(ctx, payload, recipient)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("WhatsApp confirmation sent",
		zap.String("template", confirmationTemplate),
		zap.String("messageID", receipt.MessageID))
	return receipt, nil
}

// SendMessage sends a freeform text message to the given phone.
func (s *DefaultNotificationService) SendMessage(ctx context.Context, phone, text string) (*models.NotificationReceipt, error) {
	if err := s.requireConfig(); err != nil {
		return nil, err
	}

	recipient := NormalizePhone(phone)
	payload := messagePayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipient,
		Type:             "text",
		Text:             &textBody{PreviewURL: false, Body: text},
	}

	return s.post(ctx, payload, recipient)
}

func (s *DefaultNotificationService) requireConfig() error {
	var missing []string
	if strings.TrimSpace(s.Cfg.WhatsAppPhoneNumberID) == "" {
		missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
	}
	if strings.TrimSpace(s.Cfg.WhatsAppAccessToken) == "" {
		missing = append(missing, "WHATSAPP_ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return &config.MissingKeysError{Component: "whatsapp", Keys: missing}
	}
	return nil
}

func (s *DefaultNotificationService) post(ctx context.Context, payload messagePayload, recipient string) (*models.NotificationReceipt, error) {
	logger := utils.GetLogger()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newError("provider", err.Error())
	}

	url := fmt.Sprintf("%s/%s/messages", strings.TrimRight(s.Cfg.WhatsAppAPIBaseURL, "/"), s.Cfg.WhatsAppPhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newError("provider", err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+s.Cfg.WhatsAppAccessToken)
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("Failed to reach WhatsApp API", zap.Error(err))
		return nil, newError("unreachable", "No se pudo conectar con la API de Meta")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var graphErr graphErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&graphErr)
		logger.Error("WhatsApp API error",
			zap.Int("status", resp.StatusCode),
			zap.String("providerMessage", graphErr.Error.Message))
		return nil, mapStatusError(resp.StatusCode, graphErr.Error.Message)
	}

	var result graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, newError("provider", err.Error())
	}
	if len(result.Messages) == 0 {
		return nil, newError("provider", "respuesta sin mensajes")
	}

	return &models.NotificationReceipt{
		MessageID: result.Messages[0].ID,
		Status:    "sent",
		Recipient: recipient,
	}, nil
}

// NormalizePhone strips spaces, hyphens and the leading plus sign, as
// the Graph API expects bare digits with the country code.
func NormalizePhone(phone string) string {
	return phoneReplacer.Replace(phone)
}

// formatDate turns YYYY-MM-DD into DD/MM/YYYY for display. Anything
// else passes through verbatim.
func formatDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

func mapStatusError(status int, providerMessage string) error {
	switch status {
	case http.StatusUnauthorized:
		return newError("invalidToken", "Token de acceso inválido o expirado")
	case http.StatusForbidden:
		return newError("insufficientPermissions", "Permisos insuficientes")
	case http.StatusNotFound:
		return newError("phoneLineNotFound", "Phone Number ID no encontrado")
	case http.StatusBadRequest:
		if providerMessage == "" {
			providerMessage = "Solicitud inválida"
		}
		return newError("badRequest", providerMessage)
	}
	if providerMessage == "" {
		providerMessage = "Error desconocido"
	}
	return newError("provider", fmt.Sprintf("Error %d - %s", status, providerMessage))
}
