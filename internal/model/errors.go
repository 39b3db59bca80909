package model

import (
	"fmt"
	"time"
)

// HTTPError is returned by source adapters and notifiers when a job board
// or chat API answers with a non-success status. The retry layer inspects
// the code to separate transient failures (429, 5xx) from permanent ones.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from the board's Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
