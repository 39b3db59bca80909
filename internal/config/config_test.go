package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
run_time_utc: "06:15"
sources:
  remoteok: true
  remotive: false
fetch:
  timeout: 10s
  host_rate: 0.5
  host_burst: 1
  retry_max: 5
  retry_base_delay: 1s
curation:
  company_cap: 3
  priority_keywords: [golang]
  metro_keywords: [pune]
delivery:
  segment_limit: 2000
  segment_delay: 500ms
  channels: [telegram, whatsapp]
store:
  path: /tmp/digest.db
lock:
  path: /tmp/digest.lock
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.RunTimeUTC != "06:15" {
		t.Errorf("run time = %q", cfg.RunTimeUTC)
	}
	if cfg.Fetch.Timeout.Std() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.Fetch.Timeout.Std())
	}
	if cfg.Delivery.SegmentDelay.Std() != 500*time.Millisecond {
		t.Errorf("segment delay = %v", cfg.Delivery.SegmentDelay.Std())
	}
	if cfg.Curation.CompanyCap != 3 || cfg.Delivery.SegmentLimit != 2000 {
		t.Errorf("curation/delivery knobs not honored: %+v", cfg)
	}
	if cfg.Sources["remotive"] {
		t.Error("remotive should be disabled")
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.RunTimeUTC != "08:30" {
		t.Errorf("default run time = %q", cfg.RunTimeUTC)
	}
	if cfg.Curation.CompanyCap != 5 {
		t.Errorf("default company cap = %d", cfg.Curation.CompanyCap)
	}
	if cfg.Delivery.SegmentLimit != 3800 {
		t.Errorf("default segment limit = %d", cfg.Delivery.SegmentLimit)
	}
	if !cfg.Sources["remoteok"] || cfg.Sources["googlejobs"] {
		t.Errorf("default sources = %v", cfg.Sources)
	}
	if len(cfg.Curation.MetroKeywords) == 0 || len(cfg.Curation.PriorityKeywords) == 0 {
		t.Error("default keyword lists missing")
	}
	if cfg.Fetch.RetryMax != 3 || cfg.Fetch.Timeout.Std() != 30*time.Second {
		t.Errorf("fetch defaults = %+v", cfg.Fetch)
	}
}

func TestLoad_RejectsBadRunTime(t *testing.T) {
	_, err := Load(writeConfig(t, `run_time_utc: "25:99"`))
	if err == nil || !strings.Contains(err.Error(), "run_time_utc") {
		t.Errorf("Load() = %v, want run_time_utc error", err)
	}
}

func TestLoad_RejectsUnknownChannel(t *testing.T) {
	_, err := Load(writeConfig(t, `
delivery:
  channels: [carrier-pigeon]
`))
	if err == nil || !strings.Contains(err.Error(), "carrier-pigeon") {
		t.Errorf("Load() = %v, want unknown channel error", err)
	}
}

func TestLoad_RejectsTinySegmentLimit(t *testing.T) {
	_, err := Load(writeConfig(t, `
delivery:
  segment_limit: 50
`))
	if err == nil {
		t.Error("expected error for unusable segment_limit")
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
fetch:
  timeout: soon
`))
	if err == nil || !strings.Contains(err.Error(), "soon") {
		t.Errorf("Load() = %v, want duration parse error", err)
	}
}

func TestParseRunTime(t *testing.T) {
	h, m, err := ParseRunTime("23:05")
	if err != nil || h != 23 || m != 5 {
		t.Errorf("ParseRunTime = %d:%d, %v", h, m, err)
	}
	if _, _, err := ParseRunTime("8.30"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestLoadCredentials_EnvAndKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHANNEL_ID", "")
	t.Setenv("WHATSAPP_TOKEN", "")
	if err := keyring.Set("jobsdigest", "TELEGRAM_CHANNEL_ID", "@from-keyring"); err != nil {
		t.Fatal(err)
	}

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() = %v", err)
	}
	if creds.TelegramBotToken != "env-token" {
		t.Errorf("bot token = %q", creds.TelegramBotToken)
	}
	if creds.TelegramChannelID != "@from-keyring" {
		t.Errorf("channel id = %q, want keyring fallback", creds.TelegramChannelID)
	}
}

func TestCredentials_Validate(t *testing.T) {
	c := Credentials{TelegramBotToken: "t", TelegramChannelID: "@c"}
	if err := c.ValidateTelegram(); err != nil {
		t.Errorf("ValidateTelegram() = %v", err)
	}
	if err := c.ValidateWhatsApp(); err == nil {
		t.Error("ValidateWhatsApp() should fail without credentials")
	}
}
