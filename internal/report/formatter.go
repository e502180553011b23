// Package report turns the aggregated analysis into the final
// screening report, optionally refining its prose with the completion
// client.
package report

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"negscreen/internal/extract"
	"negscreen/internal/llm"
	"negscreen/internal/model"
)

// Formatter builds the terminal report. The analyzer's numeric fields
// are copied verbatim and can never be overridden by the model; only
// summary, key concerns, and recommendations are open to refinement.
type Formatter struct {
	client llm.Client
	cfg    model.LLMConfig
	log    *zap.Logger
}

// NewFormatter creates a formatter bound to a completion client.
func NewFormatter(client llm.Client, cfg model.LLMConfig, log *zap.Logger) *Formatter {
	return &Formatter{client: client, cfg: cfg, log: log.Named("report")}
}

// Run produces the screening report. It always returns a usable
// report; a non-nil error only records that prose refinement was
// skipped and the analysis carried over verbatim.
func (f *Formatter) Run(ctx context.Context, entity *model.EntityProfile, analysis *model.AnalysisResult) (*model.ScreeningReport, error) {
	rep := model.ReportFromAnalysis(analysis, entity)

	findingsJSON, err := json.Marshal(analysis.Findings)
	if err != nil {
		return rep, fmt.Errorf("format report: encode findings: %w", err)
	}

	prompt := fmt.Sprintf(`Create a professional negative news screening report for %s.

Analysis results:
- Negative news found: %t
- Risk score: %.1f out of 10
- Findings: %s

Write a concise executive summary of the screening outcome, list the key concerns, and suggest follow-up actions for a compliance reviewer.

Respond as JSON: {"summary": "...", "key_concerns": ["..."], "recommendations": ["..."]}`,
		entity.FullName, analysis.HasNegativeNews, analysis.RiskScore, findingsJSON)

	resp, err := f.client.Complete(ctx, llm.Request{
		Model: f.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a compliance report writer producing screening reports for KYC reviewers."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		f.log.Warn("report refinement failed, keeping analysis text", zap.Error(err))
		return rep, fmt.Errorf("format report: %w", err)
	}

	rec, ok := extract.JSON(resp)
	if !ok {
		return rep, fmt.Errorf("format report: unparseable response")
	}

	if summary := rec.Str("summary"); summary != "" {
		rep.Summary = summary
	}
	if concerns := rec.Strings("key_concerns"); len(concerns) > 0 {
		rep.KeyConcerns = concerns
	}
	rep.Recommendations = rec.Strings("recommendations")
	return rep, nil
}
