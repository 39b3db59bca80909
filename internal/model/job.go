package model

import (
	"context"
	"time"
)

// Unified representation of a job posting from any source.
type JobRecord struct {
	ID       string     // source-scoped unique identifier, global dedup key
	Company  string     // company name
	Role     string     // job title
	Location string     // free-text location
	PostedAt *time.Time // nullable (not all sources provide this)
	Salary   string     // empty means undisclosed
	URL      string     // canonical apply link
	Source   string     // source adapter display name
}

// SourceAdapter fetches job postings from one external source.
type SourceAdapter interface {
	Name() string
	Fetch(ctx context.Context) ([]JobRecord, error)
}

// PostedStore tracks which job IDs have already been published.
// Insert has insert-or-ignore semantics: re-inserting an id is a no-op.
type PostedStore interface {
	Exists(id string) (bool, error)
	Insert(id, url string) error
}

// Sender delivers one text segment to a chat channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// AdminAlerter raises operator-facing alerts outside the digest channel.
type AdminAlerter interface {
	AdminAlert(ctx context.Context, message string) error
}
