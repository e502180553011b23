// Package resolve turns raw screening input into a normalized entity
// profile via the completion collaborator, degrading to the request
// fields when resolution fails.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"negscreen/internal/extract"
	"negscreen/internal/llm"
	"negscreen/internal/model"
)

// Resolver is the entity resolution stage.
type Resolver struct {
	client llm.Client
	cfg    model.LLMConfig
	log    *zap.Logger
}

// NewResolver creates a resolver bound to a completion client.
func NewResolver(client llm.Client, cfg model.LLMConfig, log *zap.Logger) *Resolver {
	return &Resolver{client: client, cfg: cfg, log: log.Named("resolve")}
}

// Resolve builds an entity profile for the request. The returned
// profile is always usable; a non-nil error only records that the
// stage degraded to request fields.
func (r *Resolver) Resolve(ctx context.Context, req model.ScreeningRequest) (*model.EntityProfile, error) {
	prompt := fmt.Sprintf(`Based on the following information, create a detailed entity profile for negative news screening:
- Name: %s
- Date of Birth: %s
- Nationality: %s
- Industry: %s
- Job Title: %s

Provide a concise, fact-based entity profile that includes:
1. Full name with any known variations or common spellings
2. Age (if DOB provided)
3. Country of citizenship/residence
4. Professional sector and role
5. Any other relevant identifiers for search purposes

Format your response as JSON with these fields: full_name, variations, age, location, sector, role, description`,
		req.Name, req.DOB, req.Nationality, req.Industry, req.JobTitle)

	resp, err := r.client.Complete(ctx, llm.Request{
		Model: r.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are an entity resolution specialist for KYC and AML processes."},
			{Role: llm.RoleUser, Content: prompt},
		},
		Temperature:  0.3,
		JSONResponse: true,
	})
	if err != nil {
		r.log.Warn("entity resolution call failed", zap.String("name", req.Name), zap.Error(err))
		return model.MinimalProfile(req), fmt.Errorf("resolve entity: %w", err)
	}

	rec, ok := extract.JSON(resp)
	if !ok {
		r.log.Warn("entity resolution returned no structured record", zap.String("name", req.Name))
		return normalize(extract.Record{}, req), fmt.Errorf("resolve entity: unrecoverable response")
	}

	return normalize(rec, req), nil
}

// normalize enforces the profile invariants regardless of what the
// completion returned: variations is always a list, identity fields
// are backfilled from the request, and a short description is
// synthesized when absent.
func normalize(rec extract.Record, req model.ScreeningRequest) *model.EntityProfile {
	profile := &model.EntityProfile{
		FullName:    rec.Str("full_name"),
		Variations:  rec.Strings("variations"),
		Sector:      rec.Str("sector"),
		Role:        rec.Str("role"),
		Description: rec.Str("description"),
		Age:         rec.Str("age"),
		Location:    rec.Str("location"),
	}

	// "variation" is a common misspelling in model output.
	if len(profile.Variations) == 0 {
		profile.Variations = rec.Strings("variation")
	}
	if profile.Variations == nil {
		profile.Variations = []string{}
	}

	if strings.TrimSpace(profile.FullName) == "" {
		profile.FullName = req.Name
	}
	if profile.Sector == "" {
		profile.Sector = req.Industry
	}
	if profile.Role == "" {
		profile.Role = req.JobTitle
	}
	if profile.Location == "" {
		profile.Location = req.Nationality
	}
	if strings.TrimSpace(profile.Description) == "" {
		profile.Description = describe(profile)
	}

	return profile
}

func describe(p *model.EntityProfile) string {
	var b strings.Builder
	b.WriteString(p.FullName)
	switch {
	case p.Role != "" && p.Sector != "":
		fmt.Fprintf(&b, " is a %s in the %s industry.", p.Role, p.Sector)
	case p.Role != "":
		fmt.Fprintf(&b, " is a %s.", p.Role)
	case p.Sector != "":
		fmt.Fprintf(&b, " works in the %s industry.", p.Sector)
	default:
		b.WriteString(" is the subject of this screening.")
	}
	return b.String()
}
