// Package match orchestrates the multi-stage benefit search.
//
// The pipeline is a small DAG: case analysis (A) at the root, and three
// independent searches (government subsidies, corporate benefits, policy
// claims) as leaves. The leaves depend only on A, never on each other,
// so they fan out over a bounded worker pool once A resolves. Their
// relative completion order affects only display order.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/worker"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage identifies one node of the matching pipeline.
type Stage string

const (
	StageCaseAnalysis        Stage = "case analysis"
	StageGovernmentSubsidies Stage = "government subsidies"
	StageCorporateBenefits   Stage = "corporate benefits"
	StagePolicyClaims        Stage = "policy claims"
)

// StageError reports which pipeline stage failed. Search-stage failures
// are never silently dropped: omitting a failed stage would misrepresent
// completeness to the user, so the error names the stage and the results
// of stages that did succeed stay available on the Result.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Request carries one matching run's inputs.
type Request struct {
	// CaseText is the free-text medical content
	CaseText string

	// CaseImage is an optional uploaded record image
	CaseImage []byte

	// Profile holds the structured patient facts
	Profile model.CaseProfile

	// PolicyText / PolicyImage feed the policy-claims stage
	PolicyText  string
	PolicyImage []byte
}

// Result carries everything a run produced. Lists from stages that
// succeeded are populated even when the run's error is non-nil.
type Result struct {
	RunID string

	Analysis         model.MedicalCaseAnalysis
	AnalysisDegraded bool

	Subsidies    []model.ResourceItem
	Benefits     []model.ResourceItem
	PolicyClaims []model.ResourceItem
}

// Matcher runs the matching pipeline. Safe for concurrent use: each run's
// state is local.
type Matcher struct {
	client  llm.Client
	limiter *worker.Limiter
	pool    *worker.Pool
	logger  *zap.Logger
}

// NewMatcher creates a matcher over the given inference client.
func NewMatcher(client llm.Client, cfg *model.Config, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := 3
	if cfg != nil && cfg.Concurrency.MatchWorkers > 0 {
		workers = cfg.Concurrency.MatchWorkers
	}
	var perMinute float64
	if cfg != nil {
		perMinute = cfg.LLM.RequestsPerMinute
	}
	return &Matcher{
		client:  client,
		limiter: worker.NewLimiter(perMinute, workers),
		pool:    worker.NewPool(workers),
		logger:  logger,
	}
}

// stageResult is the pool-side result of one search stage.
type stageResult struct {
	stage Stage
	items []model.ResourceItem
	err   error
}

func (r *stageResult) GetError() error { return r.err }

// stageJob runs one search stage inside the pool.
type stageJob struct {
	stage Stage
	run   func(ctx context.Context) ([]model.ResourceItem, error)
}

func (j *stageJob) Execute(ctx context.Context) worker.Result {
	items, err := j.run(ctx)
	return &stageResult{stage: j.stage, items: items, err: err}
}

// Run executes the full pipeline. Case analysis must complete, possibly
// in degraded form, before any search stage starts. Failed search stages
// surface as stage-tagged errors joined into the returned error; the
// Result still carries every list that succeeded.
func (m *Matcher) Run(ctx context.Context, req Request) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	log := m.logger.With(zap.String("run_id", result.RunID))

	analysis, err := m.analyzeCase(ctx, req)
	if err != nil {
		// Stage A degrades instead of failing: each field gets its own
		// documented failure placeholder so downstream prompts can tell
		// degraded input from real content, and the search stages still
		// get their chance.
		log.Warn("case analysis degraded", zap.Error(err))
		analysis = model.DegradedCaseAnalysis()
		result.AnalysisDegraded = true
	}
	result.Analysis = analysis

	jobs := []worker.Job{
		&stageJob{stage: StageGovernmentSubsidies, run: func(ctx context.Context) ([]model.ResourceItem, error) {
			return m.searchGovernmentSubsidies(ctx, analysis)
		}},
		&stageJob{stage: StageCorporateBenefits, run: func(ctx context.Context) ([]model.ResourceItem, error) {
			return m.searchCorporateBenefits(ctx, analysis)
		}},
		&stageJob{stage: StagePolicyClaims, run: func(ctx context.Context) ([]model.ResourceItem, error) {
			return m.searchPolicyClaims(ctx, analysis, req)
		}},
	}

	var stageErrs []error
	for _, raw := range m.pool.Run(ctx, jobs) {
		res, ok := raw.(*stageResult)
		if !ok || res == nil {
			continue
		}
		if res.err != nil {
			log.Warn("search stage failed", zap.String("stage", string(res.stage)), zap.Error(res.err))
			stageErrs = append(stageErrs, &StageError{Stage: res.stage, Err: res.err})
			continue
		}
		switch res.stage {
		case StageGovernmentSubsidies:
			result.Subsidies = res.items
		case StageCorporateBenefits:
			result.Benefits = res.items
		case StagePolicyClaims:
			result.PolicyClaims = res.items
		}
	}

	return result, errors.Join(stageErrs...)
}

// complete wraps one rate-limited inference call.
func (m *Matcher) complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := m.limiter.Wait(ctx, m.client.Name()); err != nil {
		return nil, err
	}
	return m.client.Complete(ctx, req)
}
