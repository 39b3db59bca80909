package source

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

const weWorkRemotelyBase = "https://weworkremotely.com"

type WeWorkRemotely struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // overridable in tests

	now func() time.Time
}

var _ model.SourceAdapter = (*WeWorkRemotely)(nil)

func NewWeWorkRemotely(httpClient *http.Client, logger *slog.Logger) *WeWorkRemotely {
	return &WeWorkRemotely{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    weWorkRemotelyBase,
		now:        time.Now,
	}
}

func (w *WeWorkRemotely) Name() string { return "WeWorkRemotely" }

func (w *WeWorkRemotely) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	items, err := fetchRSS(ctx, w.httpClient, w.baseURL+"/remote-jobs.rss")
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

		company, role := splitFeedTitle(item.Title)
		if !wwrRelevant(role) {
			continue
		}
		postedAt = postedAt.UTC()
		recs = append(recs, model.JobRecord{
			ID:       idOrURL(item.GUID, item.Link),
			Company:  company,
			Role:     role,
			Location: "Remote",
			PostedAt: &postedAt,
			URL:      item.Link,
			Source:   w.Name(),
		})
	}
	return recs, nil
}

// The feed mixes design, marketing and sales listings in with the
// engineering ones; keep only roles that read like engineering.
var wwrKeywords = []string{
	"developer", "software", "engineer", "devops", "sre",
	"backend", "frontend", "full stack", "qa", "tester",
}

func wwrRelevant(role string) bool {
	r := strings.ToLower(role)
	for _, k := range wwrKeywords {
		if strings.Contains(r, k) {
			return true
		}
	}
	return false
}

// splitFeedTitle splits the "Company: Role" convention used by the
// feed. Titles without a colon carry the role only.
func splitFeedTitle(title string) (company, role string) {
	company, role, found := strings.Cut(title, ":")
	if !found {
		return "Unknown", strings.TrimSpace(title)
	}
	return strings.TrimSpace(company), strings.TrimSpace(role)
}
