// Package fetch retrieves the pages behind search results and
// extracts their readable article text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"negscreen/internal/cache"
	"negscreen/internal/model"
	"negscreen/internal/util"
	"negscreen/internal/worker"
)

// Fetcher downloads search results and turns them into documents for
// chunking. Sites that refuse us (robots.txt, errors, timeouts) still
// produce a placeholder document carrying the search snippet, so the
// analyzer sees every result.
type Fetcher struct {
	cfg     model.FetchConfig
	client  *http.Client
	robots  *util.RobotsChecker
	limiter *worker.Limiter
	docs    cache.DocumentCache
	ttl     time.Duration
	log     *zap.Logger
}

// NewFetcher builds a fetcher. docs may be nil to disable caching.
func NewFetcher(cfg model.FetchConfig, docs cache.DocumentCache, ttl time.Duration, log *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg:     cfg,
		client:  util.NewHTTPClient(cfg.Timeout, cfg.HTTPProxy, cfg.HTTPSProxy),
		robots:  util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter: worker.NewLimiter(cfg.RequestsPerSecond, 2),
		docs:    docs,
		ttl:     ttl,
		log:     log.Named("fetch"),
	}
}

// Run fetches every search result sequentially. It returns one
// document per result and an error only when no page could actually
// be retrieved.
func (f *Fetcher) Run(ctx context.Context, results []model.SearchResult) ([]model.FetchedDocument, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("fetch: no search results")
	}

	docs := make([]model.FetchedDocument, 0, len(results))
	fetched := 0
	for _, res := range results {
		doc, err := f.fetchOne(ctx, res)
		if err != nil {
			f.log.Warn("fetch failed, using snippet", zap.String("url", res.URL), zap.Error(err))
			docs = append(docs, placeholder(res))
			continue
		}
		fetched++
		docs = append(docs, *doc)
	}

	if fetched == 0 {
		return docs, fmt.Errorf("fetch: all %d pages failed", len(results))
	}
	f.log.Info("fetch complete", zap.Int("pages", fetched), zap.Int("placeholders", len(docs)-fetched))
	return docs, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, res model.SearchResult) (*model.FetchedDocument, error) {
	if f.docs != nil {
		if doc, ok := f.docs.Get(res.URL); ok {
			return doc, nil
		}
	}

	delay := f.cfg.Delay
	if f.cfg.RespectRobots {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, res.URL)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt")
		}
		if crawlDelay > delay {
			delay = crawlDelay
		}
	}

	if err := f.limiter.WaitWithDelay(ctx, res.URL, delay); err != nil {
		return nil, fmt.Errorf("throttle: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", res.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", res.URL, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, f.cfg.MaxBodyBytes)
	content, err := extractText(body)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", res.URL, err)
	}
	if content == "" {
		content = res.Description
	}

	doc := &model.FetchedDocument{
		URL:           res.URL,
		Title:         res.Title,
		Content:       content,
		Source:        res.Source,
		PublishedDate: res.PublishedAt,
	}
	if f.docs != nil {
		f.docs.Set(res.URL, doc, f.ttl)
	}
	return doc, nil
}

// extractText pulls article prose out of an HTML page. It prefers
// semantic article/main containers, then content-looking divs, then
// falls back to collecting substantive paragraphs.
func extractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	for _, selector := range []string{"article", "main"} {
		if node := doc.Find(selector).First(); node.Length() > 0 {
			if text := cleanText(node.Text()); text != "" {
				return text, nil
			}
		}
	}

	var fromDiv string
	doc.Find("div[class*=content], div[class*=article], div[class*=post], div[class*=story]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if len(text) > 200 {
			fromDiv = text
			return false
		}
		return true
	})
	if fromDiv != "" {
		return fromDiv, nil
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n"), nil
}

// cleanText collapses the whitespace runs left behind by removing
// markup, keeping line structure for the chunker.
func cleanText(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// placeholder carries the search snippet forward when the page itself
// could not be read.
func placeholder(res model.SearchResult) model.FetchedDocument {
	return model.FetchedDocument{
		URL:           res.URL,
		Title:         res.Title,
		Content:       res.Description,
		Source:        res.Source,
		PublishedDate: res.PublishedAt,
		Placeholder:   true,
	}
}
