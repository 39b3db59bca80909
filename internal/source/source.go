// Package source implements the job-board adapters. Each adapter
// fetches one board, keeps only postings from the last day that look
// like engineering roles, and maps them onto the shared record shape.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vjdev/jobsdigest/internal/model"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// recencyWindow is how far back a posting may be and still make
// today's digest.
const recencyWindow = 24 * time.Hour

var roleKeywords = []string{"developer", "engineer", "sre", "devops", "tester"}

func relevantRole(title string) bool {
	t := strings.ToLower(title)
	for _, k := range roleKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("GET %s", url),
		}
	}
	return io.ReadAll(resp.Body)
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	body, err := get(ctx, client, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// NormalizeLocation standardizes free-form location strings so the
// classifier sees a predictable vocabulary.
func NormalizeLocation(location string) string {
	if location == "" {
		return "Unknown"
	}
	lower := strings.ToLower(location)
	if strings.Contains(lower, "remote") {
		switch {
		case strings.Contains(lower, "india"):
			return "Remote - India"
		case strings.Contains(lower, "asia"):
			return "Remote - Asia"
		case strings.Contains(lower, "worldwide"):
			return "Remote - Worldwide"
		default:
			return "Remote"
		}
	}
	cities := []string{"Bangalore", "Bengaluru", "Hyderabad", "Mumbai", "Chennai", "Delhi", "Pune", "Gurgaon", "Noida"}
	for _, city := range cities {
		if strings.Contains(lower, strings.ToLower(city)) {
			return city
		}
	}
	return titleCase(location)
}

func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range strings.ToLower(s) {
		if startOfWord && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		startOfWord = !unicode.IsLetter(r)
		b.WriteRune(r)
	}
	return b.String()
}
