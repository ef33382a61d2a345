package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStep struct {
	name        string
	execErr     error
	executed    bool
	compensated bool
	trail       *[]string
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Execute(context.Context) error {
	s.executed = true
	if s.execErr != nil {
		return s.execErr
	}
	*s.trail = append(*s.trail, "exec:"+s.name)
	return nil
}

func (s *recordingStep) Compensate(context.Context) error {
	s.compensated = true
	*s.trail = append(*s.trail, "comp:"+s.name)
	return nil
}

func TestPipelineRunsAllSteps(t *testing.T) {
	var trail []string
	a := &recordingStep{name: "a", trail: &trail}
	b := &recordingStep{name: "b", trail: &trail}

	err := NewPipeline([]Step{a, b}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"exec:a", "exec:b"}, trail)
	assert.False(t, a.compensated)
	assert.False(t, b.compensated)
}

func TestPipelineCompensatesInReverseOrder(t *testing.T) {
	var trail []string
	boom := errors.New("payment refused")
	a := &recordingStep{name: "a", trail: &trail}
	b := &recordingStep{name: "b", trail: &trail}
	c := &recordingStep{name: "c", execErr: boom, trail: &trail}

	err := NewPipeline([]Step{a, b, c}).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"exec:a", "exec:b", "comp:b", "comp:a"}, trail)
	// The failing step itself is never compensated.
	assert.False(t, c.compensated)
}

func TestPipelineFirstStepFailure(t *testing.T) {
	var trail []string
	boom := errors.New("db down")
	a := &recordingStep{name: "a", execErr: boom, trail: &trail}
	b := &recordingStep{name: "b", trail: &trail}

	err := NewPipeline([]Step{a, b}).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, trail)
	assert.False(t, b.executed)
}
