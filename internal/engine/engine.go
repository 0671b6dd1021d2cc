// Package engine orchestrates a full match computation: normalization,
// concurrent criterion scoring, dynamic weighting and aggregation.
package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nexten/smartmatch/internal/aggregate"
	"github.com/nexten/smartmatch/internal/normalize"
	"github.com/nexten/smartmatch/internal/scoring"
	"github.com/nexten/smartmatch/internal/types"
	"github.com/nexten/smartmatch/internal/weights"
)

// Engine computes match results. It is safe for concurrent use: all fields
// are read-only after construction and every computation is a pure function
// of its inputs, external service availability aside.
type Engine struct {
	registry    *scoring.Registry
	coordinator *scoring.Coordinator
	catalog     *weights.Catalog
	logger      *zap.Logger
}

// Options configure engine construction.
type Options struct {
	Registry *scoring.Registry
	Catalog  *weights.Catalog
	Logger   *zap.Logger
}

// New creates an engine. Nil options fall back to the default registry
// (without a distance service), the built-in weight catalog, and a no-op
// logger.
func New(opts Options) *Engine {
	registry := opts.Registry
	if registry == nil {
		registry = scoring.DefaultRegistry(nil)
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = weights.NewCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry:    registry,
		coordinator: scoring.NewCoordinator(logger),
		catalog:     catalog,
		logger:      logger,
	}
}

// Match computes the compatibility between one raw candidate record and one
// raw job record. It always returns a structured result: malformed input,
// missing fields, and collaborator failures degrade individual criteria to
// fallback estimates rather than failing the computation. The only error
// paths are invalid algorithm parameters and an unknown weight profile.
func (e *Engine) Match(ctx context.Context, rawCandidate, rawJob map[string]any, params *scoring.Params) (*types.MatchResult, error) {
	if params == nil {
		params = scoring.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	base, err := e.catalog.Base(params.Profile)
	if err != nil {
		return nil, err
	}

	candidate := normalize.NormalizeCandidate(rawCandidate)
	job := normalize.NormalizeJob(rawJob)

	results := e.scoreAll(ctx, candidate, job, params)

	// The weight vector depends on the candidate's motivations only; it is
	// computed once per candidate, independent of per-job criteria.
	vector := weights.ComputeWeightsRates(base, candidate.Motivations, params.BoostRates)

	result := aggregate.Aggregate(results, vector)
	e.logger.Debug("match computed",
		zap.Float64("final_score", result.FinalScore),
		zap.String("tier", string(result.Tier)),
		zap.Bool("weights_adjusted", vector.IsAdjusted))
	return &result, nil
}

// scoreAll runs every registered scorer concurrently. The fallback
// coordinator guarantees each goroutine produces a result, so the group
// never returns an error; aggregation blocks until the full scorer set has
// completed.
func (e *Engine) scoreAll(ctx context.Context, candidate *types.CandidateProfile, job *types.JobOpening, params *scoring.Params) map[types.Criterion]types.CriterionResult {
	g, gCtx := errgroup.WithContext(ctx)

	results := make(map[types.Criterion]types.CriterionResult, len(e.registry.Criteria()))
	var mu sync.Mutex

	for _, scorer := range e.registry.Scorers() {
		g.Go(func() error {
			result := e.coordinator.Score(gCtx, scorer, candidate, job, params)
			mu.Lock()
			results[scorer.Name()] = result
			mu.Unlock()
			return nil
		})
	}

	// No scorer returns an error; Wait only synchronizes completion.
	_ = g.Wait()
	return results
}
