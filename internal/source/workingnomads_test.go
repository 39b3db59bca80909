package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const workingNomadsFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Working Nomads</title>
  <item>
    <title>Golang Developer @ Acme</title>
    <link>https://www.workingnomads.com/jobs/golang-acme</link>
    <pubDate>Sun, 15 Jun 2025 06:00:00 +0000</pubDate>
    <description>&lt;p&gt;Ship services.&lt;/p&gt;&lt;p&gt;Location: Pune, India&lt;/p&gt;</description>
  </item>
  <item>
    <title>SRE @ Nova</title>
    <link>https://www.workingnomads.com/jobs/sre-nova</link>
    <pubDate>Sun, 15 Jun 2025 06:00:00 +0000</pubDate>
    <description>&lt;p&gt;On call, sometimes.&lt;/p&gt;</description>
  </item>
  <item>
    <title>Old Job @ Stale</title>
    <link>https://www.workingnomads.com/jobs/old</link>
    <pubDate>Sun, 01 Jun 2025 06:00:00 +0000</pubDate>
    <description></description>
  </item>
</channel>
</rss>`

func TestWorkingNomads_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/rss" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "development,sysadmin" {
			t.Errorf("category = %q", got)
		}
		_, _ = w.Write([]byte(workingNomadsFixture))
	}))
	defer srv.Close()

	a := NewWorkingNomads(srv.Client(), discardLogger())
	a.baseURL = srv.URL
	a.now = func() time.Time { return fixedNow }

	recs, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(recs), recs)
	}
	if recs[0].Role != "Golang Developer" || recs[0].Company != "Acme" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[0].Location != "Pune" {
		t.Errorf("location = %q, want Pune from description", recs[0].Location)
	}
	if recs[1].Location != "Remote" {
		t.Errorf("location = %q, want Remote fallback", recs[1].Location)
	}
	if recs[0].ID != "https://www.workingnomads.com/jobs/golang-acme" {
		t.Errorf("id = %q, want the listing URL", recs[0].ID)
	}
}
