// Package ratelimit keeps outbound fetches polite: every host gets its
// own token bucket, shared by all adapters talking to it.
package ratelimit

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter hands out one rate.Limiter per hostname. Limiters are
// created lazily on first use.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewHostLimiter(rps float64, burst int) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(h.rps, h.burst)
		h.limiters[host] = l
	}
	return l
}

// Transport is an http.RoundTripper that blocks each request until the
// target host's bucket has a token. Zero value is unusable; build it
// with NewTransport.
type Transport struct {
	limiter *HostLimiter
	next    http.RoundTripper
}

func NewTransport(limiter *HostLimiter, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{limiter: limiter, next: next}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.limiter(req.URL.Hostname()).Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
