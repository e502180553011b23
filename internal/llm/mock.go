package llm

import (
	"context"
	"strings"
)

// MockClient is the fixed-response completion client selected when no
// API credential is configured. Responses are deterministic and keyed
// on the final user message, so the whole pipeline can run end to end
// without external services.
type MockClient struct{}

// NewMockClient returns the test client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider name.
func (c *MockClient) Name() string {
	return "mock"
}

// Complete returns a canned response matching the requesting stage.
func (c *MockClient) Complete(_ context.Context, req Request) (string, error) {
	prompt := ""
	for _, m := range req.Messages {
		if m.Role == RoleUser {
			prompt = m.Content
		}
	}
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "entity profile"):
		// No identity fields: the resolver backfills them from the
		// request, so the mock never invents a different person.
		return `{"variations": [], "description": ""}`, nil

	case strings.Contains(lower, "search queries"):
		// Empty object pushes the generator to its default templates,
		// which carry the real entity name.
		return `{}`, nil

	case strings.Contains(lower, "analyze this text"):
		if containsAny(lower, "allegation", "misconduct", "scandal", "fraud", "lawsuit", "investigation") {
			return `{
				"contains_negative_news": true,
				"findings": [
					{"type": "Financial misconduct", "description": "Alleged involvement in accounting irregularities", "severity": 7, "confidence": 6}
				],
				"source_credibility": 8,
				"chunk_summary": "Content discussing alleged misconduct."
			}`, nil
		}
		return `{"contains_negative_news": false, "findings": [], "source_credibility": 5, "chunk_summary": "No negative content identified."}`, nil

	case strings.Contains(lower, "screening report"):
		return `{
			"summary": "This screening was produced by the offline test client. Findings, if any, reflect fixture content rather than live sources.",
			"recommendations": ["Re-run the screening with live search and completion credentials before relying on these results."]
		}`, nil

	default:
		return `{}`, nil
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
