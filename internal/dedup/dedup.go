// Package dedup removes already-published and repeated records from a batch.
package dedup

import (
	"fmt"

	"github.com/vjdev/jobsdigest/internal/model"
)

// Filter returns the records whose ids are neither in the posted store nor
// seen earlier in the same batch. The first occurrence of an id wins, so
// source priority is whatever order the collector produced. Input order is
// preserved; the input slice is not modified.
func Filter(batch []model.JobRecord, store model.PostedStore) ([]model.JobRecord, error) {
	seen := make(map[string]struct{}, len(batch))
	out := make([]model.JobRecord, 0, len(batch))

	for _, rec := range batch {
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		posted, err := store.Exists(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("checking posted status for %s: %w", rec.ID, err)
		}
		if posted {
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}
