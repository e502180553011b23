package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"negscreen/internal/model"
)

type stubProvider struct {
	results map[string][]model.SearchResult
	errs    map[string]error
	calls   []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(_ context.Context, query string) ([]model.SearchResult, error) {
	s.calls = append(s.calls, query)
	if err := s.errs[query]; err != nil {
		return nil, err
	}
	return s.results[query], nil
}

func result(url string) model.SearchResult {
	return model.SearchResult{URL: url, Title: "t", Description: "d", Source: "web", PublishedAt: "2026-08-28"}
}

func TestAdapterDedupesByURL(t *testing.T) {
	stub := &stubProvider{results: map[string][]model.SearchResult{
		"q1": {result("https://a.example/1"), result("https://a.example/2")},
		"q2": {result("https://a.example/2"), result("https://a.example/3")},
	}}
	adapter := NewAdapter(stub, model.SearchConfig{TopK: 15}, zap.NewNop())

	got, err := adapter.Run(context.Background(), model.QuerySet{WebQueries: []string{"q1", "q2"}})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "https://a.example/1", got[0].URL)
	assert.Equal(t, "https://a.example/2", got[1].URL)
	assert.Equal(t, "https://a.example/3", got[2].URL)
}

func TestAdapterToleratesPartialFailure(t *testing.T) {
	stub := &stubProvider{
		results: map[string][]model.SearchResult{"q1": {result("https://a.example/1")}},
		errs:    map[string]error{"q2": errors.New("throttled")},
	}
	adapter := NewAdapter(stub, model.SearchConfig{TopK: 15}, zap.NewNop())

	got, err := adapter.Run(context.Background(), model.QuerySet{WebQueries: []string{"q1", "q2"}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAdapterErrorsWhenAllFail(t *testing.T) {
	stub := &stubProvider{errs: map[string]error{
		"q1": errors.New("down"),
		"q2": errors.New("down"),
	}}
	adapter := NewAdapter(stub, model.SearchConfig{TopK: 15}, zap.NewNop())

	_, err := adapter.Run(context.Background(), model.QuerySet{WebQueries: []string{"q1"}, NewsQueries: []string{"q2"}})
	require.Error(t, err)
}

func TestAdapterTruncatesToTopK(t *testing.T) {
	many := make([]model.SearchResult, 20)
	for i := range many {
		many[i] = result("https://a.example/" + string(rune('a'+i)))
	}
	stub := &stubProvider{results: map[string][]model.SearchResult{"q1": many}}
	adapter := NewAdapter(stub, model.SearchConfig{TopK: 5}, zap.NewNop())

	got, err := adapter.Run(context.Background(), model.QuerySet{WebQueries: []string{"q1"}})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestBingParsesWebAndNews(t *testing.T) {
	var gotKey, gotQuery, gotFreshness string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotQuery = r.URL.Query().Get("q")
		gotFreshness = r.URL.Query().Get("freshness")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"webPages": {"value": [
				{"url": "https://site.example/a", "name": "Page A", "snippet": "snippet a"}
			]},
			"news": {"value": [
				{"url": "https://news.example/b", "name": "Story B", "description": "desc b",
				 "datePublished": "2026-08-20T14:02:00.0000000Z",
				 "provider": [{"name": "Example Times"}]}
			]}
		}`))
	}))
	defer srv.Close()

	provider, err := NewBingProvider(model.SearchConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL,
		TopK:     15,
		DaysBack: 30,
		Market:   "en-US",
	}, zap.NewNop())
	require.NoError(t, err)

	results, err := provider.Search(context.Background(), "jane smith fraud")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "jane smith fraud", gotQuery)
	assert.Equal(t, "Month", gotFreshness)

	assert.Equal(t, "https://site.example/a", results[0].URL)
	assert.Equal(t, "web", results[0].Source)
	assert.NotEmpty(t, results[0].PublishedAt)

	assert.Equal(t, "https://news.example/b", results[1].URL)
	assert.Equal(t, "Example Times", results[1].Source)
	assert.Equal(t, "2026-08-20", results[1].PublishedAt)
}

func TestBingNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider, err := NewBingProvider(model.SearchConfig{APIKey: "k", Endpoint: srv.URL}, zap.NewNop())
	require.NoError(t, err)

	_, err = provider.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBingRequiresKey(t *testing.T) {
	_, err := NewBingProvider(model.SearchConfig{}, zap.NewNop())
	require.Error(t, err)
}

func TestFreshnessFor(t *testing.T) {
	assert.Equal(t, "", freshnessFor(0))
	assert.Equal(t, "Day", freshnessFor(1))
	assert.Equal(t, "Week", freshnessFor(7))
	assert.Equal(t, "Month", freshnessFor(30))
}

func TestFactorySelectsMockWithoutKey(t *testing.T) {
	provider := NewProvider(model.SearchConfig{}, zap.NewNop())
	assert.Equal(t, "mock", provider.Name())
}

func TestMockProviderDistinctURLsPerQuery(t *testing.T) {
	mock := NewMockProvider()
	a, err := mock.Search(context.Background(), "alpha")
	require.NoError(t, err)
	b, err := mock.Search(context.Background(), "beta")
	require.NoError(t, err)
	assert.NotEqual(t, a[0].URL, b[0].URL)
}
