package publish

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vjdev/jobsdigest/internal/digest"
	"github.com/vjdev/jobsdigest/internal/model"
)

type fakeSender struct {
	name   string
	sent   []string
	failOn map[int]bool // 0-based call index -> fail
	calls  int
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(ctx context.Context, text string) error {
	idx := f.calls
	f.calls++
	if f.failOn[idx] {
		return errors.New("send failed")
	}
	f.sent = append(f.sent, text)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func segs(texts ...string) []digest.Segment {
	out := make([]digest.Segment, len(texts))
	for i, t := range texts {
		out[i] = digest.Segment{Text: t}
	}
	return out
}

func TestPublish_AllChannelsGetAllSegments(t *testing.T) {
	a := &fakeSender{name: "telegram"}
	b := &fakeSender{name: "whatsapp"}
	p := New([]model.Sender{a, b}, 0, discardLogger())

	res := p.Publish(context.Background(), segs("one", "two", "three"))

	if res.Delivered != 6 || res.Failed != 0 {
		t.Errorf("result = %+v, want 6 delivered 0 failed", res)
	}
	for _, f := range []*fakeSender{a, b} {
		if len(f.sent) != 3 {
			t.Fatalf("%s received %d segments, want 3", f.name, len(f.sent))
		}
		if f.sent[0] != "one" || f.sent[1] != "two" || f.sent[2] != "three" {
			t.Errorf("%s segments out of order: %v", f.name, f.sent)
		}
	}
}

func TestPublish_FailureDoesNotStopChannel(t *testing.T) {
	a := &fakeSender{name: "telegram", failOn: map[int]bool{1: true}}
	p := New([]model.Sender{a}, 0, discardLogger())

	res := p.Publish(context.Background(), segs("one", "two", "three"))

	if res.Delivered != 2 || res.Failed != 1 {
		t.Errorf("result = %+v, want 2 delivered 1 failed", res)
	}
	if len(a.sent) != 2 || a.sent[1] != "three" {
		t.Errorf("channel should keep going after a failed segment, got %v", a.sent)
	}
}

func TestPublish_BrokenChannelDoesNotBlockOthers(t *testing.T) {
	broken := &fakeSender{name: "whatsapp", failOn: map[int]bool{0: true, 1: true}}
	ok := &fakeSender{name: "telegram"}
	p := New([]model.Sender{broken, ok}, 0, discardLogger())

	res := p.Publish(context.Background(), segs("one", "two"))

	if res.Delivered != 2 || res.Failed != 2 {
		t.Errorf("result = %+v, want 2 delivered 2 failed", res)
	}
	if len(ok.sent) != 2 {
		t.Errorf("healthy channel received %d segments, want 2", len(ok.sent))
	}
}

func TestPublish_ContextCancelledCountsRemaining(t *testing.T) {
	a := &fakeSender{name: "telegram"}
	p := New([]model.Sender{a}, 50*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Publish(ctx, segs("one", "two", "three"))

	// First segment goes out before the inter-segment wait notices
	// the cancelled context.
	if res.Delivered != 1 || res.Failed != 2 {
		t.Errorf("result = %+v, want 1 delivered 2 failed", res)
	}
}

func TestPublish_NoSegments(t *testing.T) {
	a := &fakeSender{name: "telegram"}
	p := New([]model.Sender{a}, 0, discardLogger())

	res := p.Publish(context.Background(), nil)
	if res.Delivered != 0 || res.Failed != 0 {
		t.Errorf("result = %+v, want zero", res)
	}
	if a.calls != 0 {
		t.Errorf("no sends expected, got %d", a.calls)
	}
}
