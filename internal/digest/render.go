// Package digest renders curated records into chat text and packs the text
// into bounded-length message segments.
package digest

import (
	"fmt"
	"time"

	"github.com/vjdev/jobsdigest/internal/classify"
	"github.com/vjdev/jobsdigest/internal/curate"
	"github.com/vjdev/jobsdigest/internal/model"
)

// LinkStyle selects how the apply link is rendered. Telegram supports
// Markdown links; WhatsApp wants a bare URL.
type LinkStyle int

const (
	MarkdownLink LinkStyle = iota
	PlainLink
)

const (
	remoteSectionHeader = "🌍 *REMOTE ROLES*\n──────────────\n"
	indiaSectionHeader  = "🇮🇳 *INDIA ROLES*\n──────────────\n"
)

// Header returns the digest title line for the given day.
func Header(now time.Time) string {
	return fmt.Sprintf("🚀 *Daily Tech Jobs Digest — %s*\n\n", now.UTC().Format("02 Jan 2006"))
}

// Footer returns the closing count line.
func Footer(remote, india int) string {
	return fmt.Sprintf("\n🌍 %d Remote | 🇮🇳 %d India | Total: %d jobs", remote, india, remote+india)
}

// RenderEntry renders one record with the fixed template: title, company,
// flag + location, relative posted time, salary, link, source.
func RenderEntry(rec model.JobRecord, style LinkStyle, now time.Time) string {
	title := rec.Role
	if r := []rune(title); len(r) > 60 {
		title = string(r[:57]) + "..."
	}

	flag := "🇮🇳"
	if classify.IsRemote(rec.Location) {
		flag = "🌍"
	}

	salary := rec.Salary
	if salary == "" {
		salary = "Not disclosed"
	}

	link := "🔗 Apply: " + rec.URL
	if style == MarkdownLink {
		link = "🔗 [Apply Now](" + rec.URL + ")"
	}

	return fmt.Sprintf("*%s*\n🏢 %s\n%s %s\n🕐 %s\n💰 %s\n%s\n🏷️ %s\n\n",
		title, rec.Company, flag, rec.Location, RelativeTime(rec.PostedAt, now), salary, link, rec.Source)
}

// RelativeTime renders an age string against now, floor-divided per unit:
// under a minute "Just now", under an hour in minutes, under a day in hours,
// otherwise in days. A nil timestamp reads "recently". Both instants are
// taken in UTC so the output never depends on the host time zone.
func RelativeTime(postedAt *time.Time, now time.Time) string {
	if postedAt == nil {
		return "recently"
	}
	diff := now.UTC().Sub(postedAt.UTC())
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d mins ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours())/24)
	}
}

// Chunks flattens a curated digest into the ordered chunk list the packer
// consumes: header, remote section, india section, footer. Empty sections
// are omitted entirely.
func Chunks(d curate.Digest, style LinkStyle, now time.Time) []Chunk {
	chunks := []Chunk{{Kind: HeaderChunk, Text: Header(now)}}

	if len(d.Remote) > 0 {
		chunks = append(chunks, Chunk{Kind: SectionChunk, Text: remoteSectionHeader})
		for _, rec := range d.Remote {
			chunks = append(chunks, Chunk{Kind: JobChunk, Text: RenderEntry(rec, style, now)})
		}
	}
	if len(d.India) > 0 {
		if len(d.Remote) > 0 {
			chunks = append(chunks, Chunk{Kind: SectionChunk, Text: "\n"})
		}
		chunks = append(chunks, Chunk{Kind: SectionChunk, Text: indiaSectionHeader})
		for _, rec := range d.India {
			chunks = append(chunks, Chunk{Kind: JobChunk, Text: RenderEntry(rec, style, now)})
		}
	}

	chunks = append(chunks, Chunk{Kind: FooterChunk, Text: Footer(len(d.Remote), len(d.India))})
	return chunks
}
