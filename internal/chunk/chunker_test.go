package chunk

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"negscreen/internal/model"
)

func newTestChunker() *Chunker {
	return NewChunker(model.ChunkConfig{MaxChars: 2000, MinOverlap: 200}, zap.NewNop())
}

func doc(content string) model.FetchedDocument {
	return model.FetchedDocument{
		URL:           "https://news.example/story",
		Title:         "Story Title",
		Content:       content,
		Source:        "Example Times",
		PublishedDate: "2026-08-20",
	}
}

func TestShortDocumentSingleChunk(t *testing.T) {
	body := "A short article body."
	chunks, err := newTestChunker().Run([]model.FetchedDocument{doc(body)})
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	want := "SOURCE: Example Times\nTITLE: Story Title\nURL: https://news.example/story\nDATE: 2026-08-20\n\n" + body
	assert.Equal(t, want, chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Position)
}

func TestLongDocumentOverlappingWindows(t *testing.T) {
	// 43 paragraphs of 100 chars each: windows close at a 2000-char
	// paragraph sum with at least 200 chars carried between them.
	paragraphs := make([]string, 43)
	for i := range paragraphs {
		paragraphs[i] = (fmt.Sprintf("p%02d ", i+1) + strings.Repeat("x", 100))[:100]
	}
	body := strings.Join(paragraphs, "\n")

	chunks, err := newTestChunker().Run([]model.FetchedDocument{doc(body)})
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Contains(t, chunks[0].Text, "p01")
	assert.Contains(t, chunks[0].Text, "p20")
	assert.NotContains(t, chunks[0].Text, "p21")

	assert.Contains(t, chunks[1].Text, "p19")
	assert.Contains(t, chunks[1].Text, "p38")

	assert.Contains(t, chunks[2].Text, "p37")
	assert.Contains(t, chunks[2].Text, "p43")

	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.True(t, strings.HasPrefix(c.Text, "SOURCE: Example Times\n"))
	}
}

func TestBlankLinesDropped(t *testing.T) {
	long := strings.Repeat(strings.Repeat("a", 100)+"\n\n\n", 25)
	chunks, err := newTestChunker().Run([]model.FetchedDocument{doc(long)})
	require.NoError(t, err)
	for _, c := range chunks {
		_, body, _ := strings.Cut(c.Text, "\n\n")
		assert.NotContains(t, body, "\n\n")
	}
}

func TestEmptyDocumentsSkipped(t *testing.T) {
	chunks, err := newTestChunker().Run([]model.FetchedDocument{
		doc(""),
		doc("   "),
		doc("Actual content survives."),
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text, "Actual content survives.")
}

func TestNoContentAtAllErrors(t *testing.T) {
	_, err := newTestChunker().Run([]model.FetchedDocument{doc("")})
	require.Error(t, err)
}

func TestExactBoundaryNoDuplicateTail(t *testing.T) {
	// 20 paragraphs of exactly 100 chars close one window with no
	// fresh text left over.
	body := strings.TrimSuffix(strings.Repeat(strings.Repeat("b", 100)+"\n", 20), "\n")
	chunks, err := newTestChunker().Run([]model.FetchedDocument{doc(body)})
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}
