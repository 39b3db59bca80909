package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vjdev/jobsdigest/internal/model"
)

var _ model.Sender = (*WhatsAppSender)(nil)

const whatsAppAPIBase = "https://graph.facebook.com/v22.0"

// WhatsAppSender delivers digest segments to one recipient through the
// WhatsApp Business Cloud API.
type WhatsAppSender struct {
	token      string
	phoneID    string
	recipient  string
	httpClient *http.Client
	logger     *slog.Logger

	baseURL string // overridable in tests
}

// NewWhatsAppSender returns a sender posting via the given business phone id.
func NewWhatsAppSender(token, phoneID, recipient string, httpClient *http.Client, logger *slog.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		token:      token,
		phoneID:    phoneID,
		recipient:  recipient,
		httpClient: httpClient,
		logger:     logger,
		baseURL:    whatsAppAPIBase,
	}
}

func (s *WhatsAppSender) Name() string { return "whatsapp" }

type whatsAppPayload struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

// Send posts one plain-text message to the configured recipient.
func (s *WhatsAppSender) Send(ctx context.Context, text string) error {
	payload := whatsAppPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               s.recipient,
		Type:             "text",
		Text:             whatsAppText{Body: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to whatsapp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		s.logger.Error("whatsapp send failed", "status", resp.StatusCode, "body", string(detail))
		return &model.HTTPError{StatusCode: resp.StatusCode}
	}
	return nil
}
