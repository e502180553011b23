package model

// ScreeningRequest is the immutable input to a screening run.
// Name is the only required field; the rest narrow the search.
type ScreeningRequest struct {
	Name        string `json:"name"`
	DOB         string `json:"dob,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Industry    string `json:"industry,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
}

// EntityProfile is the resolved identity of the screened individual.
// FullName is never empty: resolution falls back to the request name.
type EntityProfile struct {
	FullName    string   `json:"full_name"`
	Variations  []string `json:"variations"`
	Sector      string   `json:"sector,omitempty"`
	Role        string   `json:"role,omitempty"`
	Description string   `json:"description,omitempty"`
	Age         string   `json:"age,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// MinimalProfile builds a profile from the raw request fields alone.
// Used whenever resolution cannot improve on the input.
func MinimalProfile(req ScreeningRequest) *EntityProfile {
	return &EntityProfile{
		FullName:   req.Name,
		Variations: []string{},
		Sector:     req.Industry,
		Role:       req.JobTitle,
		Location:   req.Nationality,
	}
}

// QuerySet holds the generated search queries. Both sequences are
// guaranteed non-empty once query generation has run.
type QuerySet struct {
	WebQueries  []string `json:"web_queries"`
	NewsQueries []string `json:"news_queries"`
}

// All returns web and news queries in order.
func (q QuerySet) All() []string {
	out := make([]string, 0, len(q.WebQueries)+len(q.NewsQueries))
	out = append(out, q.WebQueries...)
	out = append(out, q.NewsQueries...)
	return out
}
