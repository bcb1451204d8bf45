package appsettings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Plan is the result of a step's analysis, handed back to the same step's
// Apply.
type Plan interface {
	// Empty reports that there is nothing to apply.
	Empty() bool
}

// Step is one unit of an upgrade pipeline. Analyze must not modify the
// workspace; Apply is called only with a non-empty plan from Analyze.
type Step interface {
	Name() string
	Analyze(ctx context.Context, ws Workspace) (Plan, error)
	Apply(ctx context.Context, ws Workspace, p Plan) error
}

// StepResult records what happened to one step.
type StepResult struct {
	Name    string
	Plan    Plan
	Applied bool
	Err     error
}

// Report is the outcome of a pipeline run.
type Report struct {
	RunID string
	Steps []StepResult
}

// Pipeline runs registered steps in order.
type Pipeline struct {
	steps  []Step
	dryRun bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithDryRun makes Run analyze every step without applying any.
func WithDryRun(v bool) PipelineOption { return func(p *Pipeline) { p.dryRun = v } }

// NewPipeline returns a pipeline with the given steps registered.
func NewPipeline(steps []Step, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{steps: append([]Step(nil), steps...)}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Register appends s to the pipeline.
func (p *Pipeline) Register(s Step) { p.steps = append(p.steps, s) }

// Run analyzes each step and applies those with work to do. It stops at the
// first failing step; the report includes every step reached.
func (p *Pipeline) Run(ctx context.Context, ws Workspace) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	logger := LoggerFrom(ctx).WithField("run_id", rep.RunID)
	ctx = WithLogger(ctx, logger)

	for _, s := range p.steps {
		res := StepResult{Name: s.Name()}
		stepLog := logger.WithField("step", s.Name())

		if err := ctx.Err(); err != nil {
			res.Err = err
			rep.Steps = append(rep.Steps, res)
			return rep, err
		}

		plan, err := s.Analyze(WithLogger(ctx, stepLog), ws)
		res.Plan = plan
		if err != nil {
			res.Err = fmt.Errorf("%s: analyze: %w", s.Name(), err)
			rep.Steps = append(rep.Steps, res)
			stepLog.WithError(err).Error("analyze failed")
			return rep, res.Err
		}
		if plan == nil || plan.Empty() {
			stepLog.Info("step not applicable")
			rep.Steps = append(rep.Steps, res)
			continue
		}
		if p.dryRun {
			stepLog.Info("dry run, apply skipped")
			rep.Steps = append(rep.Steps, res)
			continue
		}
		if err := s.Apply(WithLogger(ctx, stepLog), ws, plan); err != nil {
			res.Err = fmt.Errorf("%s: apply: %w", s.Name(), err)
			rep.Steps = append(rep.Steps, res)
			stepLog.WithError(err).Error("apply failed")
			return rep, res.Err
		}
		res.Applied = true
		rep.Steps = append(rep.Steps, res)
		stepLog.Info("step applied")
	}
	return rep, nil
}
