// Package worker provides the per-host politeness limiter used by the
// fetcher. The pipeline itself is sequential; the limiter only spaces out
// consecutive requests to the same host.
package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum delay between requests to the same host.
// Hosts not seen before get a fresh limiter on first use.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	delay    time.Duration
}

// NewLimiter creates a limiter with the given minimum per-host delay.
// A zero or negative delay disables spacing entirely.
func NewLimiter(delay time.Duration) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until a request to the URL's host is allowed, honoring an
// optional override delay (e.g. a robots.txt crawl-delay) when it is longer
// than the configured default.
func (l *Limiter) Wait(ctx context.Context, rawURL string, override time.Duration) error {
	delay := l.delay
	if override > delay {
		delay = override
	}
	if delay <= 0 {
		return nil
	}

	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}

	return l.hostLimiter(host, delay).Wait(ctx)
}

// hostLimiter returns the limiter for a host, creating or retuning it as
// needed. Burst is 1: the first request goes through immediately, every
// later one waits out the delay.
func (l *Limiter) hostLimiter(host string, delay time.Duration) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
		l.limiters[host] = limiter
		return limiter
	}

	// A robots crawl-delay can lower the rate for this host mid-run.
	if want := rate.Every(delay); want < limiter.Limit() {
		limiter.SetLimit(want)
	}
	return limiter
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
