package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

// Ensure TelegramSender implements the delivery contracts.
var (
	_ model.Sender       = (*TelegramSender)(nil)
	_ model.AdminAlerter = (*TelegramSender)(nil)
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramSender delivers digest segments to a Telegram channel via the Bot
// API, and operator alerts to a separate admin chat.
type TelegramSender struct {
	token       string
	channelID   string
	adminChatID string // empty disables admin alerts
	httpClient  *http.Client
	logger      *slog.Logger

	baseURL    string        // overridable in tests
	retryDelay time.Duration // base backoff, doubled per attempt
}

// NewTelegramSender returns a sender posting to the given channel id.
func NewTelegramSender(token, channelID, adminChatID string, httpClient *http.Client, logger *slog.Logger) *TelegramSender {
	return &TelegramSender{
		token:       token,
		channelID:   channelID,
		adminChatID: adminChatID,
		httpClient:  httpClient,
		logger:      logger,
		baseURL:     telegramAPIBase,
		retryDelay:  time.Second,
	}
}

func (s *TelegramSender) Name() string { return "telegram" }

// Send posts one Markdown message to the channel, retrying transient
// failures up to three attempts with exponential backoff. A 429 response's
// Retry-After header overrides the backoff.
func (s *TelegramSender) Send(ctx context.Context, text string) error {
	return s.sendTo(ctx, s.channelID, text)
}

// AdminAlert posts an operator-facing alert to the admin chat. It is a no-op
// when no admin chat id is configured.
func (s *TelegramSender) AdminAlert(ctx context.Context, message string) error {
	if s.adminChatID == "" {
		return nil
	}
	return s.sendTo(ctx, s.adminChatID, "⚠️ ADMIN ALERT: "+message)
}

type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *TelegramSender) sendTo(ctx context.Context, chatID, text string) error {
	const attempts = 3

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := s.retryDelay << (attempt - 1)
			if d := retryAfterOf(lastErr); d > 0 {
				delay = d
			}
			s.logger.Warn("telegram send failed, retrying",
				"attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return fmt.Errorf("telegram send cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		lastErr = s.post(ctx, chatID, text)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("telegram send after %d attempts: %w", attempts, lastErr)
}

func (s *TelegramSender) post(ctx context.Context, chatID, text string) error {
	payload := telegramPayload{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to telegram: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	var tr telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode telegram response: %w", err)
	}
	if !tr.OK {
		return fmt.Errorf("telegram rejected message: %s", tr.Description)
	}
	return nil
}

// retryAfterOf extracts the Retry-After duration from an HTTPError, if any.
func retryAfterOf(err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}
	return 0
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports the seconds format; returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
