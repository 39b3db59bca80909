package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vjdev/jobsdigest/internal/collect"
	"github.com/vjdev/jobsdigest/internal/curate"
	"github.com/vjdev/jobsdigest/internal/dedup"
	"github.com/vjdev/jobsdigest/internal/digest"
	"github.com/vjdev/jobsdigest/internal/model"
	"github.com/vjdev/jobsdigest/internal/preview"
	"github.com/vjdev/jobsdigest/internal/store"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview today's digest without posting it",
	Long:  "Collects and curates a digest, then opens it in an interactive pager. Nothing is sent and nothing is marked as posted.",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

// readOnlyStore answers Exists from the real history but swallows
// writes, so previewing never consumes a job.
type readOnlyStore struct {
	inner model.PostedStore
}

func (r readOnlyStore) Exists(id string) (bool, error) { return r.inner.Exists(id) }
func (r readOnlyStore) Insert(id, url string) error    { return nil }

func runPreview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	creds, err := loadCredentials()
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	// Preview still consults the history so it matches what a real
	// run would post; fall back to an empty store if there is none.
	var posted model.PostedStore = store.NewNopStore()
	if sqlStore, err := store.NewSQLiteStore(cfg.Store.Path); err == nil {
		defer sqlStore.Close()
		posted = sqlStore
	}

	httpClient := newFetchClient(cfg)
	adapters := buildAdapters(cfg, creds, httpClient, logger)
	if len(adapters) == 0 {
		logger.Error("no sources enabled")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batch, err := collect.New(adapters, cfg.Fetch.Timeout.Std(), logger).Collect(ctx)
	if err != nil {
		logger.Error("collection failed", "error", err)
		os.Exit(1)
	}

	fresh, err := dedup.Filter(batch, posted)
	if err != nil {
		logger.Error("dedup failed", "error", err)
		os.Exit(1)
	}

	d, err := curate.Run(fresh, readOnlyStore{posted}, curateOptions(cfg))
	if err != nil {
		logger.Error("curation failed", "error", err)
		os.Exit(1)
	}
	if d.Total() == 0 {
		logger.Info("digest is empty, nothing to preview")
		return nil
	}

	segments := digest.Pack(digest.Chunks(d, digest.MarkdownLink, time.Now()), cfg.Delivery.SegmentLimit)
	logger.Info("digest ready", "jobs", d.Total(), "segments", len(segments))
	return preview.RunDigestPager(segments)
}
