// Package checkout runs the order submission pipeline: a short sequence
// of steps (persist the order, record its first status, clear the cart)
// where each step has a compensating action. If any step fails, the
// previously completed steps are compensated in reverse order, so a
// failed checkout leaves both the cart and the order store as they
// were.
package checkout

import (
	"context"
	"log/slog"
)

// Step represents a single unit of work in the checkout pipeline.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Pipeline executes a collection of Steps sequentially.
type Pipeline struct {
	steps []Step
}

func NewPipeline(steps []Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes the steps in order. If a step fails, it triggers the
// compensation of all previously successful steps (LIFO) and returns
// the step's error.
func (p *Pipeline) Run(ctx context.Context) error {
	var completed []Step

	for _, step := range p.steps {
		slog.DebugContext(ctx, "executing checkout step", "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.ErrorContext(ctx, "checkout step failed, rolling back",
				"step", step.Name(), "error", err)
			p.rollback(ctx, completed)
			return err
		}
		completed = append(completed, step)
	}
	return nil
}

func (p *Pipeline) rollback(ctx context.Context, steps []Step) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating checkout step", "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate checkout step",
				"step", step.Name(), "error", err)
		}
	}
}
