package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/nexten/smartmatch/internal/scoring"
	"github.com/nexten/smartmatch/internal/types"
)

// BatchItem pairs one computed result with its input indices.
type BatchItem struct {
	CandidateIndex int                `json:"candidate_index"`
	JobIndex       int                `json:"job_index"`
	Result         *types.MatchResult `json:"result"`
}

// MatchBatch computes the full candidate×job cross product with bounded
// parallelism. Each pair is independent and stateless; the only shared
// state across computations is the read-only distance cache. limit <= 0
// defaults to the CPU count.
//
// Parameter validation happens once up front; after that no individual pair
// can fail, so the returned slice always holds len(candidates)×len(jobs)
// items unless the context is cancelled.
func (e *Engine) MatchBatch(ctx context.Context, candidates, jobs []map[string]any, params *scoring.Params, limit int) ([]BatchItem, error) {
	if params == nil {
		params = scoring.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := e.catalog.Base(params.Profile); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	sem := semaphore.NewWeighted(int64(limit))
	items := make([]BatchItem, len(candidates)*len(jobs))

	for ci := range candidates {
		for ji := range jobs {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil, err
			}
			go func(ci, ji int) {
				defer sem.Release(1)
				// Params already validated; Match cannot fail here.
				result, _ := e.Match(ctx, candidates[ci], jobs[ji], params)
				items[ci*len(jobs)+ji] = BatchItem{
					CandidateIndex: ci,
					JobIndex:       ji,
					Result:         result,
				}
			}(ci, ji)
		}
	}

	// Draining the full semaphore weight waits for every in-flight pair.
	if err := sem.Acquire(ctx, int64(limit)); err != nil {
		return nil, err
	}
	sem.Release(int64(limit))

	return items, nil
}
