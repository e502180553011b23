// Package query derives web and news search queries from a resolved
// entity profile, with layered fallbacks that guarantee both query
// sets are non-empty.
package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"negscreen/internal/extract"
	"negscreen/internal/llm"
	"negscreen/internal/model"
)

// Generator is the query generation stage.
type Generator struct {
	client llm.Client
	cfg    model.LLMConfig
	now    func() time.Time
	log    *zap.Logger
}

// NewGenerator creates a generator bound to a completion client.
func NewGenerator(client llm.Client, cfg model.LLMConfig, log *zap.Logger) *Generator {
	return &Generator{client: client, cfg: cfg, now: time.Now, log: log.Named("query")}
}

// Generate produces the query set for the entity. The returned set is
// always non-empty; a non-nil error only records degradation to the
// default templates.
func (g *Generator) Generate(ctx context.Context, entity *model.EntityProfile, req model.ScreeningRequest) (model.QuerySet, error) {
	name := entity.FullName
	if strings.TrimSpace(name) == "" {
		name = req.Name
	}

	prompt := fmt.Sprintf(`Generate search queries to detect any potential negative news, scandals, or controversies for this individual:

Individual: %s

Create 2-3 specific search queries that would help find relevant negative information.
Focus on different types of potential issues:
1. General scandal or controversy
2. Fraud, embezzlement, or financial misconduct
3. Legal troubles or lawsuits
4. Regulatory investigations
5. Sanctions or penalties
6. Criminal allegations
7. Controversial statements, actions, or associations

Ensure queries are specific enough to return relevant results but general enough to catch various issues.
Return the queries ONLY as a JSON object with two arrays - "web_queries" for general web searches and "news_queries" for news-specific searches.`,
		g.profileSummary(entity, req, name))

	resp, err := g.client.Complete(ctx, llm.Request{
		Model: g.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a search query generation assistant for negative news screening."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature:  0.7,
		JSONResponse: true,
	})
	if err != nil {
		g.log.Warn("query generation call failed", zap.String("name", name), zap.Error(err))
		qs := model.QuerySet{WebQueries: defaultQueries(name)}
		qs.NewsQueries = append([]string(nil), qs.WebQueries...)
		return qs, fmt.Errorf("generate queries: %w", err)
	}

	qs := parseQueries(resp)
	if len(qs.WebQueries) == 0 {
		qs.WebQueries = defaultQueries(name)
	}
	if len(qs.NewsQueries) == 0 {
		qs.NewsQueries = append([]string(nil), qs.WebQueries...)
	}

	g.log.Debug("queries generated",
		zap.Int("web", len(qs.WebQueries)),
		zap.Int("news", len(qs.NewsQueries)))
	return qs, nil
}

// profileSummary builds the one-line subject description used in the
// prompt, deriving age from the request DOB when it parses as YYYY-...
func (g *Generator) profileSummary(entity *model.EntityProfile, req model.ScreeningRequest, name string) string {
	var b strings.Builder
	b.WriteString(name)

	if year, ok := birthYear(req.DOB); ok {
		fmt.Fprintf(&b, ", age %d", g.now().Year()-year)
	}

	nationality := entity.Location
	if nationality == "" {
		nationality = req.Nationality
	}
	if nationality != "" {
		b.WriteString(", " + nationality)
	}

	role := entity.Role
	industry := entity.Sector
	if role != "" && industry != "" {
		fmt.Fprintf(&b, ", %s in %s", role, industry)
	} else if role != "" {
		b.WriteString(", " + role)
	} else if industry != "" {
		b.WriteString(", " + industry)
	}

	return b.String()
}

func birthYear(dob string) (int, bool) {
	part, _, found := strings.Cut(dob, "-")
	if !found {
		return 0, false
	}
	year, err := strconv.Atoi(part)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// parseQueries recovers both query lists from the completion output.
// The line-by-line text heuristic applies only when no structured
// record could be recovered at all: a parsed object that simply lacks
// query lists must reach the default templates, not be re-read as
// prose.
func parseQueries(resp string) model.QuerySet {
	rec, ok := extract.JSON(resp)
	if !ok {
		return queriesFromText(resp)
	}

	var qs model.QuerySet
	qs.WebQueries = rec.Strings("web_queries")
	qs.NewsQueries = rec.Strings("news_queries")

	// The expected keys may be absent; accept any list whose key
	// hints at its bucket, falling back to the first list seen.
	if len(qs.WebQueries) == 0 && len(qs.NewsQueries) == 0 {
		for key := range rec {
			values := rec.Strings(key)
			if len(values) == 0 {
				continue
			}
			lower := strings.ToLower(key)
			switch {
			case strings.Contains(lower, "web"):
				qs.WebQueries = values
			case strings.Contains(lower, "news"):
				qs.NewsQueries = values
			case len(qs.WebQueries) == 0:
				qs.WebQueries = values
			}
		}
	}
	return qs
}

// queriesFromText walks the raw response line by line. Section
// headers containing "web" or "news" switch the active bucket;
// bullet and numeric prefixes and surrounding quotes are stripped.
func queriesFromText(resp string) model.QuerySet {
	var qs model.QuerySet
	section := "web"

	for _, line := range strings.Split(resp, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, ":") {
			if strings.Contains(lower, "web") {
				section = "web"
				continue
			}
			if strings.Contains(lower, "news") {
				section = "news"
				continue
			}
		}

		line = stripListPrefix(line)
		line = strings.Trim(line, `"'`)
		if !hasLetter(line) {
			continue
		}

		if section == "web" {
			qs.WebQueries = append(qs.WebQueries, line)
		} else {
			qs.NewsQueries = append(qs.NewsQueries, line)
		}
	}
	return qs
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func stripListPrefix(line string) string {
	for _, prefix := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	// Numeric prefixes like "1." or "12.".
	if dot := strings.Index(line, "."); dot > 0 {
		if _, err := strconv.Atoi(line[:dot]); err == nil {
			return strings.TrimSpace(line[dot+1:])
		}
	}
	return line
}

// defaultQueries are the fixed templates substituted when generation
// yields nothing usable.
func defaultQueries(name string) []string {
	return []string{
		name + " scandal",
		name + " fraud",
		name + " investigation",
		name + " lawsuit",
		name + " controversy",
		name + " criminal",
	}
}
