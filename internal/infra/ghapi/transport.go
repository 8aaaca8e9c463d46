package ghapi

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitTransport is an http.RoundTripper that waits on a rate.Limiter
// before every request.
type RateLimitTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

// NewRateLimitTransport returns a transport allowing limit requests per second
// with the given burst. A nil base uses http.DefaultTransport.
func NewRateLimitTransport(limit rate.Limit, burst int, base http.RoundTripper) *RateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RateLimitTransport{
		limiter: rate.NewLimiter(limit, burst),
		base:    base,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
