// Package chunk splits fetched documents into bounded, overlapping
// windows of text sized for a single analysis prompt.
package chunk

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"negscreen/internal/model"
)

// Chunker windows document bodies. Every chunk opens with a metadata
// header so the analyzer can attribute findings without extra lookup.
type Chunker struct {
	maxChars   int
	minOverlap int
	log        *zap.Logger
}

// NewChunker builds a chunker from the configured window bounds.
func NewChunker(cfg model.ChunkConfig, log *zap.Logger) *Chunker {
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = 2000
	}
	minOverlap := cfg.MinOverlap
	if minOverlap < 0 {
		minOverlap = 200
	}
	return &Chunker{maxChars: maxChars, minOverlap: minOverlap, log: log.Named("chunk")}
}

// Run converts the documents to chunks. Documents with empty content
// are dropped; an error is returned only when nothing at all was
// chunkable.
func (c *Chunker) Run(docs []model.FetchedDocument) ([]model.ContentChunk, error) {
	var chunks []model.ContentChunk
	for _, doc := range docs {
		if strings.TrimSpace(doc.Content) == "" {
			continue
		}
		chunks = append(chunks, c.split(doc)...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunk: no content to analyze")
	}
	c.log.Debug("chunking done", zap.Int("documents", len(docs)), zap.Int("chunks", len(chunks)))
	return chunks, nil
}

func (c *Chunker) split(doc model.FetchedDocument) []model.ContentChunk {
	header := fmt.Sprintf("SOURCE: %s\nTITLE: %s\nURL: %s\nDATE: %s\n\n",
		doc.Source, doc.Title, doc.URL, doc.PublishedDate)

	newChunk := func(body string, position int) model.ContentChunk {
		return model.ContentChunk{
			URL:           doc.URL,
			Title:         doc.Title,
			Source:        doc.Source,
			PublishedDate: doc.PublishedDate,
			Text:          header + body,
			Position:      position,
		}
	}

	if len(doc.Content) < c.maxChars {
		return []model.ContentChunk{newChunk(doc.Content, 0)}
	}

	var paragraphs []string
	for _, p := range strings.Split(doc.Content, "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []model.ContentChunk
	var current []string
	size := 0
	fresh := 0
	for i := 0; i < len(paragraphs); i++ {
		current = append(current, paragraphs[i])
		size += len(paragraphs[i])
		fresh++
		if size < c.maxChars {
			continue
		}

		chunks = append(chunks, newChunk(strings.Join(current, "\n"), len(chunks)))

		// Seed the next window with trailing paragraphs until the
		// required overlap is reached.
		overlap := 0
		start := len(current)
		for start > 0 && overlap < c.minOverlap {
			start--
			overlap += len(current[start])
		}
		current = append([]string(nil), current[start:]...)
		size = overlap
		fresh = 0
	}
	// A trailing window that only repeats the overlap seed adds
	// nothing new.
	if fresh > 0 {
		chunks = append(chunks, newChunk(strings.Join(current, "\n"), len(chunks)))
	}
	return chunks
}
