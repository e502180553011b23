package model

// Finding is one negative-news item extracted from a content chunk.
// Severity and Confidence are 1-10 scales assigned by the analyzer.
type Finding struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    int    `json:"severity"`
	Confidence  int    `json:"confidence"`
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Source is a distinct publication referenced by at least one finding.
type Source struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Publication string `json:"publication,omitempty"`
	Date        string `json:"date,omitempty"`
}

// AnalysisResult aggregates all findings for the screened entity.
// RiskScore is bounded to [0, 10] and rounded to one decimal.
type AnalysisResult struct {
	HasNegativeNews bool      `json:"has_negative_news"`
	RiskScore       float64   `json:"risk_score"`
	Summary         string    `json:"summary"`
	KeyConcerns     []string  `json:"key_concerns"`
	Findings        []Finding `json:"findings"`
	Sources         []Source  `json:"sources"`
}

// CleanAnalysis returns a negative-free result with the given summary.
func CleanAnalysis(summary string) *AnalysisResult {
	return &AnalysisResult{
		HasNegativeNews: false,
		RiskScore:       0,
		Summary:         summary,
		KeyConcerns:     []string{},
		Findings:        []Finding{},
		Sources:         []Source{},
	}
}

// ScreeningReport is the terminal artifact of a screening run. The
// numeric risk fields always equal the analyzer's values; only prose
// may be refined by the formatter.
type ScreeningReport struct {
	HasNegativeNews bool           `json:"has_negative_news"`
	RiskScore       float64        `json:"risk_score"`
	Summary         string         `json:"summary"`
	KeyConcerns     []string       `json:"key_concerns"`
	Findings        []Finding      `json:"findings"`
	Sources         []Source       `json:"sources"`
	Entity          *EntityProfile `json:"entity,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// ReportFromAnalysis copies the analyzer output into a report verbatim.
func ReportFromAnalysis(a *AnalysisResult, entity *EntityProfile) *ScreeningReport {
	return &ScreeningReport{
		HasNegativeNews: a.HasNegativeNews,
		RiskScore:       a.RiskScore,
		Summary:         a.Summary,
		KeyConcerns:     a.KeyConcerns,
		Findings:        a.Findings,
		Sources:         a.Sources,
		Entity:          entity,
	}
}
