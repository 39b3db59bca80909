package collect

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAdapter returns fixed records or a fixed error, with an optional delay
// to shuffle completion order.
type fakeAdapter struct {
	name  string
	recs  []model.JobRecord
	err   error
	delay time.Duration
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.recs, f.err
}

func rec(id string) model.JobRecord {
	return model.JobRecord{ID: id, URL: "https://example.com/" + id}
}

func TestCollect_ConcatenatesInAdapterOrder(t *testing.T) {
	// The first adapter is slowest; its records must still come first.
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "slow", recs: []model.JobRecord{rec("a1"), rec("a2")}, delay: 50 * time.Millisecond},
		&fakeAdapter{name: "fast", recs: []model.JobRecord{rec("b1")}},
	}
	c := New(adapters, time.Second, discardLogger())

	batch, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	want := []string{"a1", "a2", "b1"}
	if len(batch) != len(want) {
		t.Fatalf("Collect() returned %d records, want %d", len(batch), len(want))
	}
	for i, id := range want {
		if batch[i].ID != id {
			t.Errorf("batch[%d].ID = %q, want %q", i, batch[i].ID, id)
		}
	}
}

func TestCollect_ToleratesFailingAdapters(t *testing.T) {
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "down1", err: errors.New("boom")},
		&fakeAdapter{name: "down2", err: errors.New("boom")},
		&fakeAdapter{name: "up", recs: []model.JobRecord{rec("x")}},
	}
	c := New(adapters, time.Second, discardLogger())

	batch, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v, want nil with one healthy adapter", err)
	}
	if len(batch) != 1 || batch[0].ID != "x" {
		t.Errorf("batch = %v, want the healthy adapter's record", batch)
	}
}

func TestCollect_AllFailed(t *testing.T) {
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "down1", err: errors.New("boom")},
		&fakeAdapter{name: "down2", err: errors.New("boom")},
	}
	c := New(adapters, time.Second, discardLogger())

	_, err := c.Collect(context.Background())
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Errorf("Collect() error = %v, want ErrAllSourcesFailed", err)
	}
}

func TestCollect_EmptyResultsAreNotFailure(t *testing.T) {
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "quiet"},
	}
	c := New(adapters, time.Second, discardLogger())

	batch, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v, want nil for empty-but-healthy source", err)
	}
	if len(batch) != 0 {
		t.Errorf("batch = %v, want empty", batch)
	}
}

func TestCollect_DropsMalformedRecords(t *testing.T) {
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "sloppy", recs: []model.JobRecord{
			rec("ok"),
			{ID: "", URL: "https://example.com/nourl"},
			{ID: "nourl", URL: ""},
		}},
	}
	c := New(adapters, time.Second, discardLogger())

	batch, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "ok" {
		t.Errorf("batch = %v, want only the well-formed record", batch)
	}
}

func TestCollect_AdapterTimeout(t *testing.T) {
	adapters := []model.SourceAdapter{
		&fakeAdapter{name: "hang", recs: []model.JobRecord{rec("late")}, delay: time.Second},
		&fakeAdapter{name: "quick", recs: []model.JobRecord{rec("q")}},
	}
	c := New(adapters, 20*time.Millisecond, discardLogger())

	batch, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "q" {
		t.Errorf("batch = %v, want the quick adapter's record only", batch)
	}
}
