package source

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedNow keeps the 24h recency window stable across test fixtures.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Unknown"},
		{"Remote", "Remote"},
		{"REMOTE (Worldwide)", "Remote - Worldwide"},
		{"Remote, India only", "Remote - India"},
		{"remote - asia pacific", "Remote - Asia"},
		{"bengaluru, karnataka", "Bengaluru"},
		{"Greater Noida", "Noida"},
		{"new york city", "New York City"},
	}
	for _, tt := range tests {
		if got := NormalizeLocation(tt.in); got != tt.want {
			t.Errorf("NormalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePubDate(t *testing.T) {
	for _, s := range []string{
		"Mon, 16 Jun 2025 12:00:00 +0000",
		"Mon, 16 Jun 2025 12:00:00 GMT",
	} {
		if _, err := parsePubDate(s); err != nil {
			t.Errorf("parsePubDate(%q) = %v", s, err)
		}
	}
	if _, err := parsePubDate("yesterday-ish"); err == nil {
		t.Error("expected error for junk pubDate")
	}
}

func TestSplitFeedTitle(t *testing.T) {
	company, role := splitFeedTitle("Acme Corp: Senior Backend Engineer")
	if company != "Acme Corp" || role != "Senior Backend Engineer" {
		t.Errorf("got %q / %q", company, role)
	}
	company, role = splitFeedTitle("Just A Role")
	if company != "Unknown" || role != "Just A Role" {
		t.Errorf("got %q / %q", company, role)
	}
}

func TestSplitAtTitle(t *testing.T) {
	role, company := splitAtTitle("Backend Developer @ Acme")
	if role != "Backend Developer" || company != "Acme" {
		t.Errorf("got %q / %q", role, company)
	}
	role, company = splitAtTitle("DevRel @ Heart @ Nova Labs")
	if role != "DevRel @ Heart" || company != "Nova Labs" {
		t.Errorf("last separator should win, got %q / %q", role, company)
	}
}

func TestLocationFromDescription(t *testing.T) {
	html := `<p>Great gig.</p><p>Location: Bangalore, India</p>`
	if got := locationFromDescription(html); got != "Bangalore" {
		t.Errorf("got %q, want Bangalore", got)
	}
	if got := locationFromDescription("<p>no hints here</p>"); got != "Remote" {
		t.Errorf("got %q, want Remote fallback", got)
	}
}
