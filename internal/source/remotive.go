package source

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

const remotiveAPIBase = "https://remotive.com"

var remotiveCategories = map[string]bool{
	"software development": true,
	"qa":                   true,
	"devops / sysadmin":    true,
	"data":                 true,
}

type Remotive struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string // overridable in tests

	now func() time.Time
}

var _ model.SourceAdapter = (*Remotive)(nil)

func NewRemotive(httpClient *http.Client, logger *slog.Logger) *Remotive {
	return &Remotive{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    remotiveAPIBase,
		now:        time.Now,
	}
}

func (r *Remotive) Name() string { return "Remotive" }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	CompanyName     string      `json:"company_name"`
	Location        string      `json:"candidate_required_location"`
	URL             string      `json:"url"`
	Category        string      `json:"category"`
	PublicationDate string      `json:"publication_date"`
	Salary          string      `json:"salary"`
}

func (r *Remotive) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	var resp remotiveResponse
	if err := getJSON(ctx, r.httpClient, r.baseURL+"/api/remote-jobs", &resp); err != nil {
		return nil, err
	}

	cutoff := r.now().Add(-recencyWindow)
	var recs []model.JobRecord
	for _, job := range resp.Jobs {
		postedAt, err := parseISODate(job.PublicationDate)
		if err != nil {
			continue
		}
		if postedAt.Before(cutoff) {
			continue
		}
		if !remotiveCategories[strings.ToLower(job.Category)] && !relevantRole(job.Title) {
			continue
		}
		recs = append(recs, model.JobRecord{
			ID:       idOrURL(job.ID.String(), job.URL),
			Company:  orDefault(job.CompanyName, "Unknown Company"),
			Role:     orDefault(job.Title, "Unknown Role"),
			Location: NormalizeLocation(orDefault(job.Location, "Remote")),
			PostedAt: &postedAt,
			Salary:   job.Salary,
			URL:      job.URL,
			Source:   r.Name(),
		})
	}
	return recs, nil
}
