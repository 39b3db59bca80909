package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/vjdev/jobsdigest/internal/secrets"
)

// Credentials holds channel and API tokens. They come from the
// environment; anything left blank is looked up in the OS keyring.
type Credentials struct {
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID   string `env:"TELEGRAM_CHANNEL_ID"`
	TelegramAdminChatID string `env:"TELEGRAM_ADMIN_CHAT_ID"`
	WhatsAppToken       string `env:"WHATSAPP_TOKEN"`
	WhatsAppPhoneID     string `env:"WHATSAPP_PHONE_ID"`
	WhatsAppRecipient   string `env:"WHATSAPP_RECIPIENT"`
	SerpAPIKey          string `env:"SERPAPI_KEY"`
}

// LoadCredentials reads tokens from the environment, then fills any
// blanks from the keyring. Missing secrets are not an error here;
// each channel validates what it needs when enabled.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("parsing credential env vars: %w", err)
	}
	// Keyring failures (headless hosts, no secret service) are treated
	// the same as an absent secret.
	fill := func(dst *string, key string) {
		if *dst != "" {
			return
		}
		if v, err := secrets.Resolve(key); err == nil {
			*dst = v
		}
	}
	for key, dst := range map[string]*string{
		"TELEGRAM_BOT_TOKEN":     &creds.TelegramBotToken,
		"TELEGRAM_CHANNEL_ID":    &creds.TelegramChannelID,
		"TELEGRAM_ADMIN_CHAT_ID": &creds.TelegramAdminChatID,
		"WHATSAPP_TOKEN":         &creds.WhatsAppToken,
		"WHATSAPP_PHONE_ID":      &creds.WhatsAppPhoneID,
		"WHATSAPP_RECIPIENT":     &creds.WhatsAppRecipient,
		"SERPAPI_KEY":            &creds.SerpAPIKey,
	} {
		fill(dst, key)
	}
	return creds, nil
}

// ValidateTelegram reports whether the Telegram channel can run.
func (c Credentials) ValidateTelegram() error {
	if c.TelegramBotToken == "" || c.TelegramChannelID == "" {
		return errors.New("telegram channel needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHANNEL_ID")
	}
	return nil
}

// ValidateWhatsApp reports whether the WhatsApp channel can run.
func (c Credentials) ValidateWhatsApp() error {
	if c.WhatsAppToken == "" || c.WhatsAppPhoneID == "" || c.WhatsAppRecipient == "" {
		return errors.New("whatsapp channel needs WHATSAPP_TOKEN, WHATSAPP_PHONE_ID and WHATSAPP_RECIPIENT")
	}
	return nil
}
