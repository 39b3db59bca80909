package source

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/vjdev/jobsdigest/internal/model"
)

const workingNomadsBase = "https://www.workingnomads.com"

type WorkingNomads struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // overridable in tests

	now func() time.Time
}

var _ model.SourceAdapter = (*WorkingNomads)(nil)

func NewWorkingNomads(httpClient *http.Client, logger *slog.Logger) *WorkingNomads {
	return &WorkingNomads{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    workingNomadsBase,
		now:        time.Now,
	}
}

func (w *WorkingNomads) Name() string { return "WorkingNomads" }

func (w *WorkingNomads) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	url := w.baseURL + "/jobs/rss?category=development,sysadmin"
	items, err := fetchRSS(ctx, w.httpClient, url)
	if err != nil {
		return nil, err
	}

	cutoff := w.now().Add(-recencyWindow)
	var recs []model.JobRecord
	for _, item := range items {
		postedAt, err := parsePubDate(item.PubDate)
		if err != nil {
			w.logger.Warn("skipping item with bad pubDate", "source", w.Name(), "pubDate", item.PubDate)
			continue
		}
		if postedAt.Before(cutoff) {
			continue
		}

		role, company := splitAtTitle(item.Title)
		postedAt = postedAt.UTC()
		recs = append(recs, model.JobRecord{
			ID:       item.Link,
			Company:  company,
			Role:     role,
			Location: locationFromDescription(item.Description),
			PostedAt: &postedAt,
			URL:      item.Link,
			Source:   w.Name(),
		})
	}
	return recs, nil
}

// splitAtTitle splits the "Role @ Company" feed title convention,
// using the last separator so role names containing "@" survive.
func splitAtTitle(title string) (role, company string) {
	idx := strings.LastIndex(title, " @ ")
	if idx < 0 {
		return strings.TrimSpace(title), "Unknown"
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// locationFromDescription digs the location line out of the HTML
// description. The feed marks it with a "Location:" label; absent
// that, the listing is treated as plain remote.
func locationFromDescription(descHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(descHTML))
	if err != nil {
		return "Remote"
	}
	location := "Remote"
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if rest, ok := strings.CutPrefix(text, "Location:"); ok {
			if v := strings.TrimSpace(rest); v != "" {
				location = NormalizeLocation(v)
			}
			return false
		}
		return true
	})
	return location
}
