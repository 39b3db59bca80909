package store

import "time"

// NopStore is a no-op store used in dry-run mode. Nothing is ever marked
// posted, so every record appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Exists(id string) (bool, error)        { return false, nil }
func (s *NopStore) Insert(id, url string) error           { return nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error { return nil }
