package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

const remoteOKAPIBase = "https://remoteok.com"

// remoteOKTags mark listings worth keeping even when the title alone
// is ambiguous.
var remoteOKTags = map[string]bool{
	"dev": true, "engineer": true, "developer": true, "backend": true,
	"frontend": true, "full stack": true, "sre": true, "devops": true,
	"qa": true, "test": true,
}

type RemoteOK struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // overridable in tests

	now func() time.Time
}

var _ model.SourceAdapter = (*RemoteOK)(nil)

func NewRemoteOK(httpClient *http.Client, logger *slog.Logger) *RemoteOK {
	return &RemoteOK{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    remoteOKAPIBase,
		now:        time.Now,
	}
}

func (r *RemoteOK) Name() string { return "RemoteOK" }

type remoteOKItem struct {
	Legal     string      `json:"legal"`
	ID        json.Number `json:"id"`
	Date      string      `json:"date"`
	Position  string      `json:"position"`
	Company   string      `json:"company"`
	Location  string      `json:"location"`
	URL       string      `json:"url"`
	Tags      []string    `json:"tags"`
	SalaryMin json.Number `json:"salary_min"`
	SalaryMax json.Number `json:"salary_max"`
}

func (r *RemoteOK) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	var items []remoteOKItem
	if err := getJSON(ctx, r.httpClient, r.baseURL+"/api", &items); err != nil {
		return nil, err
	}
	// The first element is a legal notice, not a listing.
	if len(items) > 0 && items[0].Legal != "" {
		items = items[1:]
	}

	cutoff := r.now().Add(-recencyWindow)
	var recs []model.JobRecord
	for _, item := range items {
		postedAt, err := parseISODate(item.Date)
		if err != nil {
			r.logger.Warn("skipping listing with bad date", "source", r.Name(), "date", item.Date)
			continue
		}
		if postedAt.Before(cutoff) {
			continue
		}
		if !r.relevant(item) {
			continue
		}
		recs = append(recs, model.JobRecord{
			ID:       idOrURL(item.ID.String(), item.URL),
			Company:  orDefault(item.Company, "Unknown Company"),
			Role:     orDefault(item.Position, "Unknown Role"),
			Location: NormalizeLocation(orDefault(item.Location, "Remote")),
			PostedAt: &postedAt,
			Salary:   formatSalaryRange(item.SalaryMin, item.SalaryMax),
			URL:      item.URL,
			Source:   r.Name(),
		})
	}
	return recs, nil
}

func (r *RemoteOK) relevant(item remoteOKItem) bool {
	for _, tag := range item.Tags {
		if remoteOKTags[strings.ToLower(tag)] {
			return true
		}
	}
	return relevantRole(item.Position)
}

// parseISODate reads the date part of an ISO 8601 timestamp. The time
// of day, when present, is ignored; listings are filtered on days.
func parseISODate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, "T")
	return time.Parse("2006-01-02", datePart)
}

func formatSalaryRange(min, max json.Number) string {
	if max.String() == "" || max.String() == "0" {
		return ""
	}
	return fmt.Sprintf("$%s - $%s", min, max)
}

func idOrURL(id, url string) string {
	if id != "" {
		return id
	}
	return url
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
