// Package analyze runs negative-news analysis over content chunks and
// aggregates the findings into a scored result.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"negscreen/internal/extract"
	"negscreen/internal/llm"
	"negscreen/internal/model"
)

// Analyzer asks the completion client whether each chunk contains
// negative news about the screened entity.
type Analyzer struct {
	client llm.Client
	llmCfg model.LLMConfig
	cfg    model.AnalysisConfig
	log    *zap.Logger
}

// NewAnalyzer creates an analyzer bound to a completion client.
func NewAnalyzer(client llm.Client, llmCfg model.LLMConfig, cfg model.AnalysisConfig, log *zap.Logger) *Analyzer {
	return &Analyzer{client: client, llmCfg: llmCfg, cfg: cfg, log: log.Named("analyze")}
}

// Run analyzes every chunk and aggregates the findings. The returned
// result is always usable; an error is reported only when every
// completion call failed, meaning no chunk was actually examined.
func (a *Analyzer) Run(ctx context.Context, entity *model.EntityProfile, chunks []model.ContentChunk) (*model.AnalysisResult, error) {
	if len(chunks) == 0 {
		return model.CleanAnalysis("No content was available for analysis."), nil
	}

	var findings []model.Finding
	var sources []model.Source
	failures := 0
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Text) == "" {
			continue
		}

		found, err := a.analyzeChunk(ctx, entity, chunk)
		if err != nil {
			failures++
			a.log.Warn("chunk analysis failed", zap.String("url", chunk.URL), zap.Error(err))
			continue
		}
		if len(found) > 0 {
			findings = append(findings, found...)
			sources = append(sources, model.Source{
				URL:         chunk.URL,
				Title:       chunk.Title,
				Publication: chunk.Source,
				Date:        chunk.PublishedDate,
			})
		}
	}

	if failures == len(chunks) {
		return model.CleanAnalysis("Analysis could not be completed."),
			fmt.Errorf("analyze: all %d chunks failed", len(chunks))
	}

	result := Aggregate(findings, sources)
	a.log.Info("analysis complete",
		zap.Int("chunks", len(chunks)),
		zap.Int("findings", len(findings)),
		zap.Float64("risk_score", result.RiskScore))
	return result, nil
}

func (a *Analyzer) analyzeChunk(ctx context.Context, entity *model.EntityProfile, chunk model.ContentChunk) ([]model.Finding, error) {
	name := entity.FullName
	prompt := fmt.Sprintf(`Analyze this text for negative news about %s:

%s

Please analyze if this content contains any negative information about the subject.
Consider the following types of negative news:
1. Criminal allegations or charges
2. Fraud, corruption, or financial misconduct
3. Scandals or controversies
4. Regulatory investigations or violations
5. Sanctions or penalties
6. Litigation or lawsuits
7. Negative public statements or controversies
8. Association with controversial individuals or organizations

Even if the information seems neutral or positive on the surface, try to identify any hidden negative implications.

Respond only with a JSON object containing:
- "contains_negative_news" (boolean): whether negative news was found
- "findings" (array): specific negative findings, each with:
  - "type" (string): category of negative news
  - "description" (string): brief description of the finding
  - "severity" (number): 1-10 severity score
  - "confidence" (number): 1-10 confidence score
- "source_credibility" (number): 1-10 rating of source credibility
- "chunk_summary" (string): brief summary of this content chunk`,
		name, chunk.Text)

	resp, err := a.client.Complete(ctx, llm.Request{
		Model: a.llmCfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a negative news screening analyst for KYC and AML compliance."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature:  a.cfg.Temperature,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze chunk: %w", err)
	}

	rec, ok := extract.JSON(resp)
	if !ok {
		// The structured forms all failed; a raw mention of negative
		// content still surfaces as a low-confidence finding rather
		// than silently passing the chunk.
		if strings.Contains(strings.ToLower(resp), "negative") {
			return []model.Finding{attach(model.Finding{
				Type:        "Unspecified negative information",
				Description: "Possible negative information detected but could not be parsed",
				Severity:    5,
				Confidence:  3,
			}, chunk)}, nil
		}
		return nil, nil
	}

	a.log.Debug("chunk analyzed",
		zap.String("url", chunk.URL),
		zap.Bool("contains_negative_news", rec.Bool("contains_negative_news")),
		zap.Int("source_credibility", rec.Int("source_credibility", 5)),
		zap.String("chunk_summary", rec.Str("chunk_summary")))

	// Whatever the findings array carries is attached; the boolean is
	// advisory and models do not always keep the two consistent.
	var findings []model.Finding
	for _, raw := range rec.Records("findings") {
		f := model.Finding{
			Type:        raw.Str("type"),
			Description: raw.Str("description"),
			Severity:    clampScore(raw.Int("severity", 5)),
			Confidence:  clampScore(raw.Int("confidence", 5)),
		}
		if f.Type == "" {
			f.Type = "Unspecified negative information"
		}
		findings = append(findings, attach(f, chunk))
	}
	return findings, nil
}

func attach(f model.Finding, chunk model.ContentChunk) model.Finding {
	f.Source = chunk.Source
	f.URL = chunk.URL
	f.PublishedAt = chunk.PublishedDate
	return f
}

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
