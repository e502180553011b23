package model

// SearchResult is a single item returned by the search provider.
// URL is the dedup key; PublishedAt is best-effort (the provider may
// not supply a date for plain web results).
type SearchResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// FetchedDocument is the readable text extracted from one result URL.
// When retrieval fails the document still exists, carrying the search
// snippet (or a failure note) as its content.
type FetchedDocument struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Source        string `json:"source,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Placeholder   bool   `json:"placeholder,omitempty"`
}

// ContentChunk is a bounded window of a fetched document, prefixed
// with a metadata header so the analyzer sees provenance inline.
type ContentChunk struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Source        string `json:"source,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Text          string `json:"text"`
	Position      int    `json:"position"`
}
