package source

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vjdev/jobsdigest/internal/model"
)

const serpAPIBase = "https://serpapi.com"

// googleJobsQueries are run against the aggregator each cycle. They
// target the India market; remote coverage comes from the other
// boards.
var googleJobsQueries = []string{
	"Software Engineer jobs in India",
	"DevOps jobs in India",
	"QA Engineer jobs in India",
}

// GoogleJobs pulls listings from the Google Jobs aggregator through
// SerpApi. It aggregates LinkedIn, Naukri and friends, which is the
// only India-focused coverage in the source set.
type GoogleJobs struct {
	httpClient *http.Client
	apiKey     string
	logger     *slog.Logger
	baseURL    string // overridable in tests
}

var _ model.SourceAdapter = (*GoogleJobs)(nil)

func NewGoogleJobs(httpClient *http.Client, apiKey string, logger *slog.Logger) *GoogleJobs {
	return &GoogleJobs{
		httpClient: httpClient,
		apiKey:     apiKey,
		logger:     logger,
		baseURL:    serpAPIBase,
	}
}

func (g *GoogleJobs) Name() string { return "Google Jobs" }

type serpAPIResponse struct {
	JobsResults []serpAPIJob `json:"jobs_results"`
}

type serpAPIJob struct {
	JobID              string `json:"job_id"`
	Title              string `json:"title"`
	CompanyName        string `json:"company_name"`
	Location           string `json:"location"`
	Salary             string `json:"salary"`
	ApplyOptions       []struct {
		Link string `json:"link"`
	} `json:"apply_options"`
	DetectedExtensions struct {
		PostedAt string `json:"posted_at"`
	} `json:"detected_extensions"`
}

func (g *GoogleJobs) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	if g.apiKey == "" {
		g.logger.Warn("no SerpApi key configured, skipping Google Jobs")
		return nil, nil
	}

	var recs []model.JobRecord
	for _, query := range googleJobsQueries {
		page, err := g.search(ctx, query)
		if err != nil {
			return nil, err
		}
		recs = append(recs, page...)
	}
	return recs, nil
}

func (g *GoogleJobs) search(ctx context.Context, query string) ([]model.JobRecord, error) {
	params := url.Values{
		"engine":  {"google_jobs"},
		"q":       {query},
		"hl":      {"en"},
		"api_key": {g.apiKey},
		// The engine does the recency filtering for us.
		"chips": {"date_posted:today"},
	}
	var resp serpAPIResponse
	if err := getJSON(ctx, g.httpClient, g.baseURL+"/search.json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var recs []model.JobRecord
	for _, job := range resp.JobsResults {
		// Without a stable id there is no way to dedup the listing
		// across days.
		if job.JobID == "" {
			continue
		}
		jobURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
		if len(job.ApplyOptions) > 0 && job.ApplyOptions[0].Link != "" {
			jobURL = job.ApplyOptions[0].Link
		}
		recs = append(recs, model.JobRecord{
			ID:       job.JobID,
			Company:  orDefault(job.CompanyName, "Unknown Company"),
			Role:     orDefault(job.Title, "Unknown Role"),
			Location: NormalizeLocation(orDefault(job.Location, "India")),
			Salary:   job.Salary,
			URL:      jobURL,
			Source:   g.Name(),
		})
	}
	return recs, nil
}
