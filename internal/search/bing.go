package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"negscreen/internal/model"
	"negscreen/internal/util"
)

// BingProvider queries the Bing Web Search v7 API. A single call
// returns both web page and news results for the query.
type BingProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	market   string
	count    int
	daysBack int
	log      *zap.Logger
}

// NewBingProvider builds a provider from the search configuration.
func NewBingProvider(cfg model.SearchConfig, log *zap.Logger) (*BingProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("bing: API key is required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.bing.microsoft.com/v7.0/search"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	count := cfg.TopK
	if count <= 0 {
		count = 15
	}
	return &BingProvider{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   util.NewHTTPClient(timeout, "", ""),
		market:   cfg.Market,
		count:    count,
		daysBack: cfg.DaysBack,
		log:      log.Named("bing"),
	}, nil
}

// Name implements Provider.
func (b *BingProvider) Name() string { return "bing" }

type bingResponse struct {
	WebPages struct {
		Value []struct {
			URL     string `json:"url"`
			Name    string `json:"name"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
	News struct {
		Value []struct {
			URL           string `json:"url"`
			Name          string `json:"name"`
			Description   string `json:"description"`
			DatePublished string `json:"datePublished"`
			Provider      []struct {
				Name string `json:"name"`
			} `json:"provider"`
		} `json:"value"`
	} `json:"news"`
}

// Search implements Provider.
func (b *BingProvider) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("bing: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", b.apiKey)

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(b.count))
	params.Set("offset", "0")
	if b.market != "" {
		params.Set("mkt", b.market)
	}
	if freshness := freshnessFor(b.daysBack); freshness != "" {
		params.Set("freshness", freshness)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bing: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bing: search %q: status %d: %s", query, resp.StatusCode, body)
	}

	var parsed bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("bing: decode response: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	results := make([]model.SearchResult, 0, len(parsed.WebPages.Value)+len(parsed.News.Value))
	for _, page := range parsed.WebPages.Value {
		results = append(results, model.SearchResult{
			URL:         page.URL,
			Title:       page.Name,
			Description: page.Snippet,
			Source:      "web",
			PublishedAt: today,
		})
	}
	for _, item := range parsed.News.Value {
		source := "news"
		if len(item.Provider) > 0 && item.Provider[0].Name != "" {
			source = item.Provider[0].Name
		}
		results = append(results, model.SearchResult{
			URL:         item.URL,
			Title:       item.Name,
			Description: item.Description,
			Source:      source,
			PublishedAt: publishedDate(item.DatePublished),
		})
	}

	b.log.Debug("bing query done", zap.String("query", query), zap.Int("results", len(results)))
	return results, nil
}

// freshnessFor maps a look-back window to Bing's freshness buckets.
func freshnessFor(daysBack int) string {
	switch {
	case daysBack <= 0:
		return ""
	case daysBack <= 1:
		return "Day"
	case daysBack <= 7:
		return "Week"
	default:
		return "Month"
	}
}

// publishedDate normalizes Bing's RFC 3339 timestamps to YYYY-MM-DD.
func publishedDate(raw string) string {
	if len(raw) >= 10 {
		if _, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return raw[:10]
		}
	}
	return time.Now().Format("2006-01-02")
}
