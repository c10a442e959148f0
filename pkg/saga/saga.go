// Package saga runs ordered, compensatable step sequences. Each step that
// mutates persistent state declares an inverse; when a later step fails, the
// runner unwinds every completed step in reverse order.
package saga

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/dmarquina/sellerhub-backend/pkg/logger"
)

// Step is one unit of work in a saga. Compensate is optional: pure reads and
// validations leave it nil.
type Step struct {
	Name       string
	Execute    func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// ErrStepFailed wraps the originating step failure with its step name.
type ErrStepFailed struct {
	StepName string
	Err      error
}

func (e *ErrStepFailed) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.StepName, e.Err)
}

func (e *ErrStepFailed) Unwrap() error {
	return e.Err
}

// Runner executes sagas and tracks compensation.
type Runner struct {
	logg *logger.Logger
}

// NewRunner builds a saga runner. The logger may be nil.
func NewRunner(logg *logger.Logger) *Runner {
	return &Runner{logg: logg}
}

// Run executes the steps in order. On the first failure it compensates every
// previously completed step in reverse order and returns the step failure;
// compensation failures are appended to the returned error.
func (r *Runner) Run(ctx context.Context, name string, steps []Step) error {
	completed := make([]Step, 0, len(steps))
	for _, step := range steps {
		if step.Execute == nil {
			continue
		}
		if err := step.Execute(ctx); err != nil {
			stepErr := &ErrStepFailed{StepName: step.Name, Err: err}
			if r.logg != nil {
				fields := map[string]any{"saga": name, "step": step.Name}
				r.logg.Error(r.logg.WithFields(ctx, fields), "saga step failed, compensating", err)
			}
			return multierr.Append(error(stepErr), r.unwind(ctx, name, completed))
		}
		if step.Compensate != nil {
			completed = append(completed, step)
		}
	}
	return nil
}

func (r *Runner) unwind(ctx context.Context, name string, completed []Step) error {
	var errs error
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if err := step.Compensate(ctx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("compensate %s: %w", step.Name, err))
			if r.logg != nil {
				fields := map[string]any{"saga": name, "step": step.Name}
				r.logg.Error(r.logg.WithFields(ctx, fields), "saga compensation failed", err)
			}
		}
	}
	return errs
}

// Parallel combines sub-steps into a single stage executed concurrently. If any
// sub-step fails, the stage compensates its own succeeded sub-steps before
// returning the failure, so a partially applied fan-out never leaks. The
// stage's Compensate unwinds all sub-steps, for when a later stage fails.
func Parallel(name string, steps ...Step) Step {
	var mu sync.Mutex
	var succeeded []Step

	execute := func(ctx context.Context) error {
		var wg sync.WaitGroup
		var errMu sync.Mutex
		var execErr error

		for _, step := range steps {
			if step.Execute == nil {
				continue
			}
			wg.Add(1)
			go func(step Step) {
				defer wg.Done()
				if err := step.Execute(ctx); err != nil {
					errMu.Lock()
					execErr = multierr.Append(execErr, &ErrStepFailed{StepName: step.Name, Err: err})
					errMu.Unlock()
					return
				}
				if step.Compensate != nil {
					mu.Lock()
					succeeded = append(succeeded, step)
					mu.Unlock()
				}
			}(step)
		}
		wg.Wait()

		if execErr == nil {
			return nil
		}

		mu.Lock()
		toUndo := succeeded
		succeeded = nil
		mu.Unlock()
		for i := len(toUndo) - 1; i >= 0; i-- {
			if err := toUndo[i].Compensate(ctx); err != nil {
				execErr = multierr.Append(execErr, fmt.Errorf("compensate %s: %w", toUndo[i].Name, err))
			}
		}
		return execErr
	}

	compensate := func(ctx context.Context) error {
		mu.Lock()
		toUndo := succeeded
		succeeded = nil
		mu.Unlock()
		var errs error
		for i := len(toUndo) - 1; i >= 0; i-- {
			if err := toUndo[i].Compensate(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("compensate %s: %w", toUndo[i].Name, err))
			}
		}
		return errs
	}

	return Step{Name: name, Execute: execute, Compensate: compensate}
}
