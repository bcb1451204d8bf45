package appsettings

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyPlan struct{}

func (emptyPlan) Empty() bool { return true }

type workPlan struct{}

func (workPlan) Empty() bool { return false }

type recordingStep struct {
	name       string
	plan       Plan
	analyzeErr error
	applyErr   error
	calls      *[]string
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Analyze(context.Context, Workspace) (Plan, error) {
	*s.calls = append(*s.calls, s.name+".analyze")
	return s.plan, s.analyzeErr
}

func (s *recordingStep) Apply(context.Context, Workspace, Plan) error {
	*s.calls = append(*s.calls, s.name+".apply")
	return s.applyErr
}

func TestPipeline_AppliesOnlyNonEmptyPlans(t *testing.T) {
	var calls []string
	p := NewPipeline(nil)
	p.Register(&recordingStep{name: "a", plan: emptyPlan{}, calls: &calls})
	p.Register(&recordingStep{name: "b", plan: workPlan{}, calls: &calls})
	p.Register(&recordingStep{name: "c", plan: nil, calls: &calls})

	rep, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.analyze", "b.analyze", "b.apply", "c.analyze"}, calls)
	require.Len(t, rep.Steps, 3)
	assert.False(t, rep.Steps[0].Applied)
	assert.True(t, rep.Steps[1].Applied)
	assert.NotEmpty(t, rep.RunID)
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	var calls []string
	p := NewPipeline([]Step{
		&recordingStep{name: "a", plan: workPlan{}, applyErr: boom, calls: &calls},
		&recordingStep{name: "b", plan: workPlan{}, calls: &calls},
	})
	rep, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a.analyze", "a.apply"}, calls)
	require.Len(t, rep.Steps, 1)
	assert.ErrorIs(t, rep.Steps[0].Err, boom)
}

func TestPipeline_AnalyzeFailure(t *testing.T) {
	var calls []string
	p := NewPipeline([]Step{&recordingStep{name: "a", analyzeErr: ErrNoProject, calls: &calls}})
	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoProject)
	assert.Equal(t, []string{"a.analyze"}, calls)
}

func TestPipeline_DryRun(t *testing.T) {
	var calls []string
	p := NewPipeline([]Step{&recordingStep{name: "a", plan: workPlan{}, calls: &calls}}, WithDryRun(true))
	rep, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.analyze"}, calls)
	assert.False(t, rep.Steps[0].Applied)
	assert.Equal(t, workPlan{}, rep.Steps[0].Plan)
}

func TestPipeline_Cancelled(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline([]Step{&recordingStep{name: "a", calls: &calls}}).Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestPipeline_LogsWithRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	ctx := WithLogger(context.Background(), logger)
	var calls []string
	rep, err := NewPipeline([]Step{&recordingStep{name: "a", plan: workPlan{}, calls: &calls}}).Run(ctx, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run_id="+rep.RunID)
	assert.Contains(t, buf.String(), "step=a")
}

func TestLoggerFrom_DefaultDiscards(t *testing.T) {
	assert.NotNil(t, LoggerFrom(context.Background()))
}
