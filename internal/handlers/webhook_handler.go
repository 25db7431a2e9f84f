package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wcarvalho/sms-expense-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// Webhook response bodies. Notification providers show these verbatim, so
// they stay plain text rather than the JSON error envelope.
const (
	webhookRecorded        = "Transaction recorded successfully"
	webhookNoAmount        = "Could not parse transaction amount"
	webhookNoDescription   = "Could not parse transaction description"
	webhookNoDate          = "Could not parse transaction date"
	webhookNoSubject       = "Could not find email subject"
	webhookInternalError   = "Internal server error"
	webhookSubjectPartName = `name="subject"`
)

// emailEnvelope is the JSON fallback payload for providers that post the
// encoded message as a JSON field instead of a raw body.
type emailEnvelope struct {
	Body string `json:"body"`
}

// WebhookHandler handles inbound notification webhooks
type WebhookHandler struct {
	ingestion services.IngestionServiceInterface
	boundary  string
}

// NewWebhookHandler creates a new webhook handler. The boundary is the
// multipart delimiter the email forwarding provider uses.
func NewWebhookHandler(ingestion services.IngestionServiceInterface, boundary string) *WebhookHandler {
	return &WebhookHandler{
		ingestion: ingestion,
		boundary:  boundary,
	}
}

// HandleSMS records a transaction from an SMS alert. The provider posts
// the message text as the Body form field.
func (h *WebhookHandler) HandleSMS(c echo.Context) error {
	body := c.FormValue("Body")
	if body == "" {
		return c.String(http.StatusBadRequest, webhookNoAmount)
	}

	if _, err := h.ingestion.IngestSMS(body); err != nil {
		return h.smsParseResponse(c, err)
	}

	return c.String(http.StatusOK, webhookRecorded)
}

// HandleEmail records a transaction from a forwarded email. The provider
// posts the raw message base64 encoded, either directly as the request
// body or wrapped in a JSON envelope. The decoded message is a multipart
// form whose subject part carries the bank alert.
func (h *WebhookHandler) HandleEmail(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		slog.Error("Failed to read email webhook body", "error", err)
		return c.String(http.StatusInternalServerError, webhookInternalError)
	}

	encoded := strings.TrimSpace(string(raw))
	if strings.HasPrefix(encoded, "{") {
		var envelope emailEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return c.String(http.StatusBadRequest, webhookNoSubject)
		}
		encoded = strings.TrimSpace(envelope.Body)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return c.String(http.StatusBadRequest, webhookNoSubject)
	}

	subject, ok := h.extractSubject(string(decoded))
	if !ok {
		return c.String(http.StatusBadRequest, webhookNoSubject)
	}

	if _, err := h.ingestion.IngestEmail(subject); err != nil {
		return h.emailParseResponse(c, err)
	}

	return c.String(http.StatusOK, webhookRecorded)
}

// extractSubject pulls the subject line out of the decoded multipart
// message and strips any forwarding prefix.
func (h *WebhookHandler) extractSubject(message string) (string, bool) {
	parts := strings.Split(message, "--"+h.boundary)
	for _, part := range parts {
		if !strings.Contains(part, webhookSubjectPartName) {
			continue
		}

		// Part content follows the blank line after the part headers.
		_, content, found := strings.Cut(part, "\r\n\r\n")
		if !found {
			_, content, found = strings.Cut(part, "\n\n")
		}
		if !found {
			continue
		}

		subject := strings.TrimSpace(content)
		if subject == "" {
			continue
		}

		// Forwarded mail keeps the original subject after the last Fwd:
		// marker.
		segments := strings.Split(subject, "Fwd:")
		subject = strings.TrimSpace(segments[len(segments)-1])
		if subject == "" {
			continue
		}
		return subject, true
	}
	return "", false
}

func (h *WebhookHandler) smsParseResponse(c echo.Context, err error) error {
	switch err {
	case services.ErrAmountNotFound:
		return c.String(http.StatusBadRequest, webhookNoAmount)
	case services.ErrDescriptionNotFound:
		return c.String(http.StatusBadRequest, webhookNoDescription)
	case services.ErrDateNotFound:
		return c.String(http.StatusBadRequest, webhookNoDate)
	default:
		slog.Error("Failed to ingest SMS transaction", "error", err)
		return c.String(http.StatusInternalServerError, webhookInternalError)
	}
}

func (h *WebhookHandler) emailParseResponse(c echo.Context, err error) error {
	switch err {
	case services.ErrAmountNotFound:
		return c.String(http.StatusBadRequest, webhookNoAmount)
	case services.ErrDescriptionNotFound:
		return c.String(http.StatusBadRequest, webhookNoDescription)
	default:
		slog.Error("Failed to ingest email transaction", "error", err)
		return c.String(http.StatusInternalServerError, webhookInternalError)
	}
}
