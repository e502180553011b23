package analyze

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"negscreen/internal/model"
)

// Aggregate folds individual findings into the overall analysis
// result: risk score, ranked key concerns, deduplicated sources.
func Aggregate(findings []model.Finding, sources []model.Source) *model.AnalysisResult {
	if len(findings) == 0 {
		return model.CleanAnalysis("No negative news was found for this entity.")
	}

	concerns := rankConcerns(findings)

	top := concerns
	if len(top) > 5 {
		top = top[:5]
	}
	keyConcerns := make([]string, 0, len(top))
	for _, c := range top {
		keyConcerns = append(keyConcerns, fmt.Sprintf("%s: %s", c.kind, c.description))
	}

	return &model.AnalysisResult{
		HasNegativeNews: true,
		RiskScore:       riskScore(findings),
		Summary:         summarize(findings),
		KeyConcerns:     keyConcerns,
		Findings:        findings,
		Sources:         dedupeSources(sources),
	}
}

// riskScore combines severity and confidence across findings and caps
// the total at 10, rounded to one decimal place.
func riskScore(findings []model.Finding) float64 {
	total := 0.0
	for _, f := range findings {
		total += float64(f.Severity) * float64(f.Confidence) / 10.0
	}
	return math.Round(math.Min(10, total)*10) / 10
}

type concern struct {
	kind        string
	description string
	count       int
	sevSum      int
	confSum     int
	bestWeight  int
	order       int
}

// rankConcerns groups findings by type and orders groups by how often
// they appear, then by combined weight. Each group is described by its
// single strongest finding.
func rankConcerns(findings []model.Finding) []concern {
	byType := make(map[string]*concern)
	var ordered []*concern
	for _, f := range findings {
		c, ok := byType[f.Type]
		if !ok {
			c = &concern{kind: f.Type, order: len(ordered)}
			byType[f.Type] = c
			ordered = append(ordered, c)
		}
		c.count++
		c.sevSum += f.Severity
		c.confSum += f.Confidence
		if weight := f.Severity * f.Confidence; weight > c.bestWeight {
			c.bestWeight = weight
			c.description = f.Description
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.count != b.count {
			return a.count > b.count
		}
		aw, bw := a.sevSum*a.confSum, b.sevSum*b.confSum
		if aw != bw {
			return aw > bw
		}
		return a.order < b.order
	})

	out := make([]concern, len(ordered))
	for i, c := range ordered {
		out[i] = *c
	}
	return out
}

// summarize lists the first three findings in the order they were
// detected.
func summarize(findings []model.Finding) string {
	top := findings
	if len(top) > 3 {
		top = top[:3]
	}
	numbered := make([]string, len(top))
	for i, f := range top {
		numbered[i] = fmt.Sprintf("%d) %s: %s", i+1, f.Type, f.Description)
	}
	return "Negative news detected with the following concerns: " + strings.Join(numbered, "; ")
}

func dedupeSources(sources []model.Source) []model.Source {
	seen := make(map[string]bool)
	out := make([]model.Source, 0, len(sources))
	for _, s := range sources {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}
