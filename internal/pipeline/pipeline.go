// Package pipeline orchestrates a screening run end to end: entity
// resolution, query generation, search, fetch, chunking, analysis,
// and report formatting.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"negscreen/internal/analyze"
	"negscreen/internal/cache"
	"negscreen/internal/chunk"
	"negscreen/internal/fetch"
	"negscreen/internal/llm"
	"negscreen/internal/model"
	"negscreen/internal/query"
	"negscreen/internal/report"
	"negscreen/internal/resolve"
	"negscreen/internal/search"
)

// Pipeline wires the screening stages together. Stages degrade
// rather than abort: a failed stage hands its fallback value to the
// next one, and only a dead search backend stops content collection.
type Pipeline struct {
	resolver  *resolve.Resolver
	generator *query.Generator
	searcher  *search.Adapter
	fetcher   *fetch.Fetcher
	chunker   *chunk.Chunker
	analyzer  *analyze.Analyzer
	formatter *report.Formatter
	log       *zap.Logger
}

// New assembles a pipeline from configuration and the two external
// collaborators.
func New(cfg *model.Config, client llm.Client, provider search.Provider, log *zap.Logger) *Pipeline {
	var docs cache.DocumentCache
	if cfg.Cache.Enabled {
		docs = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return &Pipeline{
		resolver:  resolve.NewResolver(client, cfg.LLM, log),
		generator: query.NewGenerator(client, cfg.LLM, log),
		searcher:  search.NewAdapter(provider, cfg.Search, log),
		fetcher:   fetch.NewFetcher(cfg.Fetch, docs, cfg.Cache.TTL, log),
		chunker:   chunk.NewChunker(cfg.Chunk, log),
		analyzer:  analyze.NewAnalyzer(client, cfg.LLM, cfg.Analysis, log),
		formatter: report.NewFormatter(client, cfg.LLM, log),
		log:       log.Named("pipeline"),
	}
}

// Screen runs the full pipeline for one request. It always returns a
// state carrying a non-nil report: stage failures degrade, a poisoned
// run still produces a minimal clean report, and panics are converted
// into one.
func (p *Pipeline) Screen(ctx context.Context, req model.ScreeningRequest) (state *model.PipelineState) {
	state = model.NewPipelineState(req)
	log := p.log.With(zap.String("run_id", state.RunID), zap.String("name", req.Name))
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline panic", zap.Any("panic", r))
			state.Err = fmt.Errorf("pipeline panic: %v", r)
			if state.Report == nil {
				state.Report = minimalReport(req)
			}
		}
	}()

	if err := validate(req); err != nil {
		log.Warn("invalid request", zap.Error(err))
		state.Err = err
		state.MarkStage(model.StageInit, err)
		state.Report = minimalReport(req)
		return state
	}
	state.MarkStage(model.StageInit, nil)

	var err error
	state.Entity, err = p.resolver.Resolve(ctx, req)
	state.MarkStage(model.StageResolve, err)

	state.Queries, err = p.generator.Generate(ctx, state.Entity, req)
	state.MarkStage(model.StageQueries, err)

	state.SearchResults, err = p.searcher.Run(ctx, state.Queries)
	state.MarkStage(model.StageSearch, err)
	if err != nil {
		// Nothing to fetch or chunk; the marker lets the later stages
		// report over empty content instead of re-running search.
		state.Err = fmt.Errorf("search stage: %w", err)
		log.Warn("search produced nothing", zap.Error(err))
	}

	if state.Err == nil {
		state.Documents, err = p.fetcher.Run(ctx, state.SearchResults)
		state.MarkStage(model.StageFetch, err)

		state.Chunks, err = p.chunker.Run(state.Documents)
		state.MarkStage(model.StageChunk, err)
	}

	state.Analysis, err = p.analyzer.Run(ctx, state.Entity, state.Chunks)
	state.MarkStage(model.StageAnalyze, err)

	state.Report, err = p.formatter.Run(ctx, state.Entity, state.Analysis)
	state.MarkStage(model.StageFormat, err)

	log.Info("screening complete",
		zap.Duration("elapsed", time.Since(started)),
		zap.Bool("has_negative_news", state.Report.HasNegativeNews),
		zap.Float64("risk_score", state.Report.RiskScore),
		zap.Any("stages", state.Debug))
	return state
}

func validate(req model.ScreeningRequest) error {
	if req.Name == "" {
		return fmt.Errorf("screening request requires a name")
	}
	return nil
}

// minimalReport is the floor of the degradation ladder: a clean
// report naming the entity, produced when even initialization or the
// pipeline itself blew up.
func minimalReport(req model.ScreeningRequest) *model.ScreeningReport {
	analysis := model.CleanAnalysis("Screening could not be completed for " + req.Name + ".")
	return model.ReportFromAnalysis(analysis, model.MinimalProfile(req))
}
