// Package util holds shared HTTP plumbing for the fetch stage:
// robots.txt compliance and outbound client construction.
package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers whether an article URL may be fetched under
// the site's robots.txt. Parsed policies are cached per host for the
// life of the checker, which matches a single screening run.
type RobotsChecker struct {
	mu        sync.RWMutex
	byHost    map[string]*robotstxt.RobotsData
	client    *http.Client
	userAgent string
}

// NewRobotsChecker builds a checker that identifies as userAgent when
// fetching robots.txt files.
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		byHost:    make(map[string]*robotstxt.RobotsData),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// CanFetch reports whether rawURL is allowed for our user agent along
// with any crawl delay the site requests. When robots.txt cannot be
// retrieved the URL is allowed; screening sources are public news
// pages and an unreachable policy file should not blank out a source.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := r.policy(ctx, parsed)
	if err != nil {
		return true, 0, nil
	}

	allowed := data.TestAgent(parsed.Path, r.userAgent)
	var delay time.Duration
	if group := data.FindGroup(r.userAgent); group != nil {
		delay = group.CrawlDelay
	}
	return allowed, delay, nil
}

func (r *RobotsChecker) policy(ctx context.Context, page *url.URL) (*robotstxt.RobotsData, error) {
	r.mu.RLock()
	data, ok := r.byHost[page.Host]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", page.Scheme, page.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.byHost[page.Host] = data
	r.mu.Unlock()
	return data, nil
}
