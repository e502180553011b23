// Package worker provides the per-domain throttle used when fetching
// article content.
package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter rate-limits outbound requests independently per domain, so
// one slow or strict site does not starve fetches from the others.
type Limiter struct {
	mu      sync.Mutex
	domains map[string]*rate.Limiter
	qps     rate.Limit
	burst   int
}

// NewLimiter creates a limiter applying requestsPerSecond with the
// given burst to every domain it sees.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 2
	}
	return &Limiter{
		domains: make(map[string]*rate.Limiter),
		qps:     rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Wait blocks until the domain of rawURL has capacity or the context
// is cancelled.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	return l.forDomain(parsed.Host).Wait(ctx)
}

// WaitWithDelay waits for rate capacity and then sleeps for delay,
// honoring context cancellation. The extra delay carries a site's
// robots.txt crawl-delay request on top of our own pacing.
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// SetDomainRate overrides the rate for one domain.
func (l *Limiter) SetDomainRate(domain string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.burst
	}
	l.mu.Lock()
	l.domains[domain] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	l.mu.Unlock()
}

func (l *Limiter) forDomain(domain string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.domains[domain]
	if !ok {
		limiter = rate.NewLimiter(l.qps, l.burst)
		l.domains[domain] = limiter
	}
	return limiter
}
