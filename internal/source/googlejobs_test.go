package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const serpAPIFixture = `{
  "jobs_results": [
    {"job_id": "gj-1", "title": "Software Engineer", "company_name": "Acme India",
     "location": "Bengaluru, Karnataka", "salary": "25 LPA",
     "apply_options": [{"link": "https://careers.acme.in/1"}],
     "detected_extensions": {"posted_at": "2 hours ago"}},
    {"title": "Phantom Listing", "company_name": "NoID Corp", "location": "Mumbai"}
  ]
}`

func TestGoogleJobs_Fetch(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if q.Get("engine") != "google_jobs" || q.Get("api_key") != "serp-key" {
			t.Errorf("query = %v", q)
		}
		if q.Get("chips") != "date_posted:today" {
			t.Errorf("chips = %q", q.Get("chips"))
		}
		_, _ = w.Write([]byte(serpAPIFixture))
	}))
	defer srv.Close()

	a := NewGoogleJobs(srv.Client(), "serp-key", discardLogger())
	a.baseURL = srv.URL

	recs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if int(calls.Load()) != len(googleJobsQueries) {
		t.Errorf("made %d searches, want %d", calls.Load(), len(googleJobsQueries))
	}
	// One record per query; the id-less listing is dropped each time.
	if len(recs) != len(googleJobsQueries) {
		t.Fatalf("got %d records: %+v", len(recs), recs)
	}
	got := recs[0]
	if got.ID != "gj-1" || got.URL != "https://careers.acme.in/1" {
		t.Errorf("record = %+v", got)
	}
	if got.Location != "Bengaluru" {
		t.Errorf("location = %q", got.Location)
	}
	if got.Source != "Google Jobs" {
		t.Errorf("source = %q", got.Source)
	}
}

func TestGoogleJobs_NoKeySkips(t *testing.T) {
	a := NewGoogleJobs(http.DefaultClient, "", discardLogger())
	recs, err := a.Fetch(context.Background())
	if err != nil || recs != nil {
		t.Errorf("Fetch() = %v, %v; want nil, nil without a key", recs, err)
	}
}
