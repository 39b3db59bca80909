package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"
)

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

type rssFeed struct {
	Items []rssItem `xml:"channel>item"`
}

func fetchRSS(ctx context.Context, client *http.Client, url string) ([]rssItem, error) {
	body, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decoding feed %s: %w", url, err)
	}
	return feed.Items, nil
}

// parsePubDate handles the RFC 1123 variants seen in job-board feeds.
func parsePubDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable pubDate %q", s)
}
