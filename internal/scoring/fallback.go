package scoring

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nexten/smartmatch/internal/types"
)

// fallbackConfidence is the confidence attached to coordinator-substituted
// results.
const fallbackConfidence = 0.3

// neutralScores are the documented per-criterion neutral fallback values
// substituted when a scorer cannot produce a primary result. Criteria
// without an entry use the generic neutral.
var neutralScores = map[types.Criterion]float64{
	types.CriterionContractType: 0.6,
	types.CriterionAntiPattern:  1.0, // absence of data is absence of conflict
	types.CriterionAvailability: 0.7,
}

// genericNeutralScore is the fallback for criteria without a documented
// neutral.
const genericNeutralScore = 0.5

// Coordinator supervises scorer invocations, substituting lower-confidence
// fallback estimates for missing data, malformed inputs, external service
// failures, and configuration errors, so no single criterion can fail the
// overall match computation.
type Coordinator struct {
	logger *zap.Logger
}

// NewCoordinator creates a coordinator. A nil logger disables logging.
func NewCoordinator(logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{logger: logger}
}

// Score invokes one scorer and guarantees a usable CriterionResult: scorer
// errors and panics become neutral fallback results, and every returned
// score is clamped to [0,1].
func (c *Coordinator) Score(ctx context.Context, scorer Scorer, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) types.CriterionResult {
	criterion := scorer.Name()

	result, err := c.invoke(ctx, scorer, candidate, job, params)
	if err != nil {
		c.logResolution(criterion, err)
		return c.neutralResult(criterion, err)
	}

	result.Score = clamp01(result.Score)
	result.Confidence = clamp01(result.Confidence)
	return result
}

// invoke runs the scorer, converting a panic into an error so a buggy
// scorer degrades instead of killing the computation.
func (c *Coordinator) invoke(ctx context.Context, scorer Scorer, candidate *types.CandidateProfile, job *types.JobOpening, params *Params) (result types.CriterionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("scorer panicked",
				zap.String("criterion", string(scorer.Name())),
				zap.Any("panic", r))
			err = &MissingDataError{Field: "scorer_panic"}
		}
	}()
	return scorer.Score(ctx, candidate, job, params)
}

// neutralResult builds the substituted fallback result for a criterion.
func (c *Coordinator) neutralResult(criterion types.Criterion, cause error) types.CriterionResult {
	score, ok := neutralScores[criterion]
	if !ok {
		score = genericNeutralScore
	}
	return types.CriterionResult{
		Score:      score,
		Confidence: fallbackConfidence,
		IsFallback: true,
		Detail: map[string]any{
			"fallback_reason": cause.Error(),
		},
	}
}

// logResolution logs at a level matching the error class: configuration
// errors warrant attention, data gaps are routine.
func (c *Coordinator) logResolution(criterion types.Criterion, err error) {
	var configErr *ConfigError
	var serviceErr *ExternalServiceError
	switch {
	case errors.As(err, &configErr):
		c.logger.Warn("configuration error resolved to neutral default",
			zap.String("criterion", string(criterion)),
			zap.Error(err))
	case errors.As(err, &serviceErr):
		c.logger.Debug("external service failure, fallback substituted",
			zap.String("criterion", string(criterion)),
			zap.Error(err))
	default:
		c.logger.Debug("missing data, fallback substituted",
			zap.String("criterion", string(criterion)),
			zap.Error(err))
	}
}
