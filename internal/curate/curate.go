// Package curate turns a deduplicated batch into the final publish list:
// priority ordering, per-company capping, and display sectioning.
package curate

import (
	"fmt"
	"sort"

	"github.com/vjdev/jobsdigest/internal/classify"
	"github.com/vjdev/jobsdigest/internal/model"
)

// Options are the injectable business knobs. Zero values are not defaulted
// here; config.Load owns defaults.
type Options struct {
	CompanyCap       int      // max records per company per digest
	PriorityKeywords []string // role keywords scoring priority 0
	MetroKeywords    []string // India metro city keywords
}

// Digest is the curated output, already in display order and split into the
// two rendering sections.
type Digest struct {
	Remote []model.JobRecord
	India  []model.JobRecord
}

// Total returns the number of admitted records across both sections.
func (d Digest) Total() int {
	return len(d.Remote) + len(d.India)
}

// Run curates the batch and marks every admitted record as posted. The steps
// run in a fixed order; reordering them changes the output:
//
//  1. stable sort by recency (missing PostedAt sorts oldest)
//  2. priority score roles, stable sort by (score, company)
//  3. admit records while the company is under the cap
//  4. insert (id, url) of every admitted record into the store
//  5. re-sort for display: remote first, then India metro, then role, company
//  6. split into Remote and India sections
//
// Records whose location is neither remote nor an Indian metro stay in the
// candidate list; section membership is re-derived at display time, where
// anything not remote lands in the India section. Marking posted happens
// before any delivery attempt: a send failure later never re-surfaces a job.
func Run(batch []model.JobRecord, store model.PostedStore, opts Options) (Digest, error) {
	candidates := make([]model.JobRecord, len(batch))
	copy(candidates, batch)

	sort.SliceStable(candidates, func(i, j int) bool {
		return postedUnix(candidates[i]) > postedUnix(candidates[j])
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		pi := classify.Priority(candidates[i].Role, opts.PriorityKeywords)
		pj := classify.Priority(candidates[j].Role, opts.PriorityKeywords)
		if pi != pj {
			return pi < pj
		}
		return candidates[i].Company < candidates[j].Company
	})

	perCompany := make(map[string]int)
	admitted := make([]model.JobRecord, 0, len(candidates))
	for _, rec := range candidates {
		if perCompany[rec.Company] >= opts.CompanyCap {
			continue
		}
		perCompany[rec.Company]++
		admitted = append(admitted, rec)
	}

	for _, rec := range admitted {
		if err := store.Insert(rec.ID, rec.URL); err != nil {
			return Digest{}, fmt.Errorf("marking %s posted: %w", rec.ID, err)
		}
	}

	sort.SliceStable(admitted, func(i, j int) bool {
		return displayKeyLess(admitted[i], admitted[j], opts.MetroKeywords)
	})

	var d Digest
	for _, rec := range admitted {
		if classify.IsRemote(rec.Location) {
			d.Remote = append(d.Remote, rec)
		} else {
			d.India = append(d.India, rec)
		}
	}
	return d, nil
}

// postedUnix treats a missing timestamp as the epoch so undated records sort
// behind every dated one in the recency pass.
func postedUnix(rec model.JobRecord) int64 {
	if rec.PostedAt == nil {
		return 0
	}
	return rec.PostedAt.Unix()
}

// displayKeyLess orders by (remote first, India metro first, role, company).
func displayKeyLess(a, b model.JobRecord, metros []string) bool {
	ra, rb := boolKey(classify.IsRemote(a.Location)), boolKey(classify.IsRemote(b.Location))
	if ra != rb {
		return ra < rb
	}
	ia := boolKey(classify.Location(a.Location, metros) == classify.IndiaMetro)
	ib := boolKey(classify.Location(b.Location, metros) == classify.IndiaMetro)
	if ia != ib {
		return ia < ib
	}
	if a.Role != b.Role {
		return a.Role < b.Role
	}
	return a.Company < b.Company
}

func boolKey(b bool) int {
	if b {
		return 0
	}
	return 1
}
