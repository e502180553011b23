package model

import "github.com/google/uuid"

// Pipeline stage names as recorded in the debug trail.
const (
	StageInit    = "initialization"
	StageResolve = "entity_resolution"
	StageQueries = "query_generation"
	StageSearch  = "search"
	StageFetch   = "fetch"
	StageChunk   = "chunking"
	StageAnalyze = "analysis"
	StageFormat  = "formatting"
)

// Stage outcome tags.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// PipelineState is threaded through every stage of one screening run.
// It is owned exclusively by that run: each invocation gets a fresh
// instance and nothing is shared across concurrent requests.
type PipelineState struct {
	RunID         string
	Request       ScreeningRequest
	Entity        *EntityProfile
	Queries       QuerySet
	SearchResults []SearchResult
	Documents     []FetchedDocument
	Chunks        []ContentChunk
	Analysis      *AnalysisResult
	Report        *ScreeningReport

	// Err is the pipeline error marker. Once set, stages other than
	// analysis and formatting pass through without running.
	Err error

	// Debug maps stage name to its outcome tag. Skipped stages leave
	// no entry.
	Debug map[string]string
}

// NewPipelineState initializes the state for one screening request.
func NewPipelineState(req ScreeningRequest) *PipelineState {
	return &PipelineState{
		RunID:   uuid.NewString(),
		Request: req,
		Debug:   make(map[string]string),
	}
}

// MarkStage records a stage outcome from the returned error.
func (s *PipelineState) MarkStage(stage string, err error) {
	if err != nil {
		s.Debug[stage] = OutcomeFailed
		return
	}
	s.Debug[stage] = OutcomeSuccess
}
