package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"negscreen/internal/model"
)

// MockProvider returns canned results without touching the network.
// It is selected when no search API key is configured, keeping local
// runs and tests fully offline.
type MockProvider struct{}

// NewMockProvider creates an offline provider.
func NewMockProvider() *MockProvider { return &MockProvider{} }

// Name implements Provider.
func (m *MockProvider) Name() string { return "mock" }

// Search implements Provider. URLs embed the query so different
// queries yield distinct results and dedup behavior stays realistic.
func (m *MockProvider) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	slug := url.QueryEscape(query)
	today := time.Now().Format("2006-01-02")
	return []model.SearchResult{
		{
			URL:         fmt.Sprintf("https://mock-news.example.com/articles/%s-1", slug),
			Title:       fmt.Sprintf("Report: %s", query),
			Description: fmt.Sprintf("Coverage related to the search %q with no adverse findings.", query),
			Source:      "Mock News",
			PublishedAt: today,
		},
		{
			URL:         fmt.Sprintf("https://mock-news.example.com/articles/%s-2", slug),
			Title:       fmt.Sprintf("Background briefing on %s", query),
			Description: fmt.Sprintf("Profile piece mentioning %q in a routine business context.", query),
			Source:      "Mock News",
			PublishedAt: today,
		},
	}, nil
}
