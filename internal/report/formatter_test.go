package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"negscreen/internal/llm"
	"negscreen/internal/model"
)

type stubClient struct {
	resp string
	err  error
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Complete(context.Context, llm.Request) (string, error) {
	return s.resp, s.err
}

func analysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		HasNegativeNews: true,
		RiskScore:       4.2,
		Summary:         "Negative news detected with the following concerns: 1) Fraud: accused of fraud",
		KeyConcerns:     []string{"Fraud: accused of fraud"},
		Findings:        []model.Finding{{Type: "Fraud", Description: "accused of fraud", Severity: 7, Confidence: 6}},
		Sources:         []model.Source{{URL: "https://news.example/story"}},
	}
}

func newTestFormatter(client llm.Client) *Formatter {
	return NewFormatter(client, model.LLMConfig{Model: "gpt-4o-mini"}, zap.NewNop())
}

func TestRunRefinesProse(t *testing.T) {
	stub := &stubClient{resp: `{"summary": "Screening found credible fraud allegations.",
		"key_concerns": ["Fraud allegations under regulatory review"],
		"recommendations": ["Escalate to enhanced due diligence"]}`}
	f := newTestFormatter(stub)

	entity := &model.EntityProfile{FullName: "Jane Smith"}
	rep, err := f.Run(context.Background(), entity, analysis())
	require.NoError(t, err)

	assert.Equal(t, "Screening found credible fraud allegations.", rep.Summary)
	assert.Equal(t, []string{"Fraud allegations under regulatory review"}, rep.KeyConcerns)
	assert.Equal(t, []string{"Escalate to enhanced due diligence"}, rep.Recommendations)

	// Numeric fields always come from the analyzer.
	assert.Equal(t, 4.2, rep.RiskScore)
	assert.True(t, rep.HasNegativeNews)
	assert.Equal(t, analysis().Findings, rep.Findings)
	assert.Equal(t, entity, rep.Entity)
}

func TestRunNumericFieldsNotOverridable(t *testing.T) {
	stub := &stubClient{resp: `{"summary": "s", "risk_score": 9.9, "has_negative_news": false}`}
	f := newTestFormatter(stub)

	rep, err := f.Run(context.Background(), &model.EntityProfile{FullName: "Jane Smith"}, analysis())
	require.NoError(t, err)
	assert.Equal(t, 4.2, rep.RiskScore)
	assert.True(t, rep.HasNegativeNews)
}

func TestRunFallbackOnError(t *testing.T) {
	stub := &stubClient{err: errors.New("quota")}
	f := newTestFormatter(stub)

	a := analysis()
	rep, err := f.Run(context.Background(), &model.EntityProfile{FullName: "Jane Smith"}, a)
	require.Error(t, err)
	require.NotNil(t, rep)
	assert.Equal(t, a.Summary, rep.Summary)
	assert.Equal(t, a.KeyConcerns, rep.KeyConcerns)
	assert.Empty(t, rep.Recommendations)
}

func TestRunFallbackOnUnparseable(t *testing.T) {
	stub := &stubClient{resp: "I cannot produce JSON today"}
	f := newTestFormatter(stub)

	a := analysis()
	rep, err := f.Run(context.Background(), &model.EntityProfile{FullName: "Jane Smith"}, a)
	require.Error(t, err)
	assert.Equal(t, a.Summary, rep.Summary)
}

func TestRunEmptyProseKeepsAnalysisText(t *testing.T) {
	stub := &stubClient{resp: `{"summary": "", "key_concerns": [], "recommendations": []}`}
	f := newTestFormatter(stub)

	a := analysis()
	rep, err := f.Run(context.Background(), &model.EntityProfile{FullName: "Jane Smith"}, a)
	require.NoError(t, err)
	assert.Equal(t, a.Summary, rep.Summary)
	assert.Equal(t, a.KeyConcerns, rep.KeyConcerns)
}
