package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vjdev/jobsdigest/internal/collect"
	"github.com/vjdev/jobsdigest/internal/config"
	"github.com/vjdev/jobsdigest/internal/curate"
	"github.com/vjdev/jobsdigest/internal/digest"
	"github.com/vjdev/jobsdigest/internal/model"
	"github.com/vjdev/jobsdigest/internal/notifier"
	"github.com/vjdev/jobsdigest/internal/pipeline"
	"github.com/vjdev/jobsdigest/internal/ratelimit"
	"github.com/vjdev/jobsdigest/internal/retry"
	"github.com/vjdev/jobsdigest/internal/source"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobsdigest",
	Short: "Daily tech jobs digest for Telegram and WhatsApp",
	Long:  "Jobsdigest collects fresh engineering roles from remote job boards, curates them into a daily digest and posts it to your channels.",
	// Default to `start` so that `jobsdigest` with no args runs the daemon.
	RunE: runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBSDIGEST_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBSDIGEST_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBSDIGEST_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// loadCredentials pulls a local .env in first so development setups
// work like production ones.
func loadCredentials() (config.Credentials, error) {
	_ = godotenv.Load()
	return config.LoadCredentials()
}

// newFetchClient builds the HTTP client all adapters share. Every
// request passes through the per-host rate limiter.
func newFetchClient(cfg *config.Config) *http.Client {
	limiter := ratelimit.NewHostLimiter(cfg.Fetch.HostRate, cfg.Fetch.HostBurst)
	return &http.Client{
		Timeout:   cfg.Fetch.Timeout.Std(),
		Transport: ratelimit.NewTransport(limiter, nil),
	}
}

// sourceOrder fixes the wiring order of the adapters. Dedup keeps the
// first record seen for an id, so earlier sources win ties; ranging over
// the config map would reshuffle that on every start.
var sourceOrder = []string{"remoteok", "remotive", "weworkremotely", "workingnomads", "googlejobs"}

func buildAdapters(cfg *config.Config, creds config.Credentials, httpClient *http.Client, logger *slog.Logger) []model.SourceAdapter {
	known := make(map[string]bool, len(sourceOrder))
	for _, name := range sourceOrder {
		known[name] = true
	}
	for name := range cfg.Sources {
		if !known[name] {
			logger.Warn("unknown source, skipping", "source", name)
		}
	}

	var adapters []model.SourceAdapter
	for _, name := range sourceOrder {
		if !cfg.Sources[name] {
			continue
		}
		var a model.SourceAdapter
		switch name {
		case "remoteok":
			a = source.NewRemoteOK(httpClient, logger)
		case "remotive":
			a = source.NewRemotive(httpClient, logger)
		case "weworkremotely":
			a = source.NewWeWorkRemotely(httpClient, logger)
		case "workingnomads":
			a = source.NewWorkingNomads(httpClient, logger)
		case "googlejobs":
			a = source.NewGoogleJobs(httpClient, creds.SerpAPIKey, logger)
		}
		a = retry.Wrap(a, retry.Options{
			MaxAttempts: cfg.Fetch.RetryMax,
			BaseDelay:   cfg.Fetch.RetryBaseDelay.Std(),
		}, logger)
		adapters = append(adapters, a)
		logger.Info("registered source", "source", a.Name())
	}
	return adapters
}

// buildChannels maps the configured delivery channels onto senders.
// The Telegram sender doubles as the admin alerter when present;
// otherwise alerts just go to the log.
func buildChannels(cfg *config.Config, creds config.Credentials, httpClient *http.Client, logger *slog.Logger) ([]pipeline.Channel, model.AdminAlerter, error) {
	var channels []pipeline.Channel
	var alerter model.AdminAlerter = notifier.NewLogSender(logger)

	for _, name := range cfg.Delivery.Channels {
		switch name {
		case "telegram":
			if err := creds.ValidateTelegram(); err != nil {
				return nil, nil, err
			}
			tg := notifier.NewTelegramSender(
				creds.TelegramBotToken,
				creds.TelegramChannelID,
				creds.TelegramAdminChatID,
				httpClient, logger,
			)
			channels = append(channels, pipeline.Channel{Sender: tg, Style: digest.MarkdownLink})
			alerter = tg
		case "whatsapp":
			if err := creds.ValidateWhatsApp(); err != nil {
				return nil, nil, err
			}
			wa := notifier.NewWhatsAppSender(
				creds.WhatsAppToken,
				creds.WhatsAppPhoneID,
				creds.WhatsAppRecipient,
				httpClient, logger,
			)
			channels = append(channels, pipeline.Channel{Sender: wa, Style: digest.PlainLink})
		case "log":
			channels = append(channels, pipeline.Channel{Sender: notifier.NewLogSender(logger), Style: digest.PlainLink})
		default:
			return nil, nil, fmt.Errorf("unknown delivery channel %q", name)
		}
		logger.Info("registered channel", "channel", name)
	}
	return channels, alerter, nil
}

func curateOptions(cfg *config.Config) curate.Options {
	return curate.Options{
		CompanyCap:       cfg.Curation.CompanyCap,
		PriorityKeywords: cfg.Curation.PriorityKeywords,
		MetroKeywords:    cfg.Curation.MetroKeywords,
	}
}

func buildPipeline(cfg *config.Config, creds config.Credentials, store model.PostedStore, logger *slog.Logger) (*pipeline.Pipeline, error) {
	httpClient := newFetchClient(cfg)

	adapters := buildAdapters(cfg, creds, httpClient, logger)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no sources enabled")
	}

	channels, alerter, err := buildChannels(cfg, creds, httpClient, logger)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Params{
		Collector:    collect.New(adapters, cfg.Fetch.Timeout.Std(), logger),
		Store:        store,
		Channels:     channels,
		Alerter:      alerter,
		CurateOpts:   curateOptions(cfg),
		SegmentLimit: cfg.Delivery.SegmentLimit,
		SegmentDelay: cfg.Delivery.SegmentDelay.Std(),
		Logger:       logger,
	}), nil
}
