// Package search runs the generated query set against a web search
// provider and consolidates the results.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"negscreen/internal/model"
)

// Provider executes a single query against a search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Adapter fans the query set out to a provider, tolerating per-query
// failures.
type Adapter struct {
	provider Provider
	topK     int
	log      *zap.Logger
}

// NewAdapter wires a provider into the pipeline's search stage.
func NewAdapter(provider Provider, cfg model.SearchConfig, log *zap.Logger) *Adapter {
	topK := cfg.TopK
	if topK <= 0 {
		topK = 15
	}
	return &Adapter{provider: provider, topK: topK, log: log.Named("search")}
}

// Run executes every query in the set and merges the results, deduped
// by URL with first occurrence winning, truncated to the configured
// cap. It returns an error only when every query failed.
func (a *Adapter) Run(ctx context.Context, queries model.QuerySet) ([]model.SearchResult, error) {
	all := queries.All()
	if len(all) == 0 {
		return nil, fmt.Errorf("search: no queries to run")
	}

	seen := make(map[string]bool)
	var results []model.SearchResult
	failures := 0

	for _, q := range all {
		found, err := a.provider.Search(ctx, q)
		if err != nil {
			failures++
			a.log.Warn("query failed", zap.String("query", q), zap.Error(err))
			continue
		}
		for _, r := range found {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			results = append(results, r)
		}
	}

	if failures == len(all) {
		return nil, fmt.Errorf("search: all %d queries failed", len(all))
	}

	if len(results) > a.topK {
		results = results[:a.topK]
	}
	a.log.Info("search complete",
		zap.String("provider", a.provider.Name()),
		zap.Int("queries", len(all)),
		zap.Int("failed", failures),
		zap.Int("results", len(results)))
	return results, nil
}
