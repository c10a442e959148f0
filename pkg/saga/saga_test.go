package saga

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestRunExecutesStepsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	steps := []Step{
		{Name: "a", Execute: func(context.Context) error { order = append(order, "a"); return nil }},
		{Name: "b", Execute: func(context.Context) error { order = append(order, "b"); return nil }},
		{Name: "c", Execute: func(context.Context) error { order = append(order, "c"); return nil }},
	}

	if err := NewRunner(nil).Run(context.Background(), "test", steps); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(order) != 3 || order[0] != "a" || order[2] != "c" {
		t.Fatalf("unexpected execution order %v", order)
	}
}

func TestRunCompensatesInReverseOrder(t *testing.T) {
	t.Parallel()

	var undone []string
	boom := errors.New("boom")
	steps := []Step{
		{
			Name:       "create-order-set",
			Execute:    func(context.Context) error { return nil },
			Compensate: func(context.Context) error { undone = append(undone, "create-order-set"); return nil },
		},
		{
			Name:       "create-orders",
			Execute:    func(context.Context) error { return nil },
			Compensate: func(context.Context) error { undone = append(undone, "create-orders"); return nil },
		},
		{
			Name:    "reserve-inventory",
			Execute: func(context.Context) error { return boom },
		},
	}

	err := NewRunner(nil).Run(context.Background(), "test", steps)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error in chain, got %v", err)
	}
	var stepErr *ErrStepFailed
	if !errors.As(err, &stepErr) || stepErr.StepName != "reserve-inventory" {
		t.Fatalf("expected reserve-inventory step failure, got %v", err)
	}
	if len(undone) != 2 || undone[0] != "create-orders" || undone[1] != "create-order-set" {
		t.Fatalf("expected reverse compensation order, got %v", undone)
	}
}

func TestRunSkipsCompensationForReadOnlySteps(t *testing.T) {
	t.Parallel()

	compensated := false
	steps := []Step{
		{Name: "validate", Execute: func(context.Context) error { return nil }},
		{
			Name:       "create",
			Execute:    func(context.Context) error { return nil },
			Compensate: func(context.Context) error { compensated = true; return nil },
		},
		{Name: "fail", Execute: func(context.Context) error { return errors.New("late failure") }},
	}

	if err := NewRunner(nil).Run(context.Background(), "test", steps); err == nil {
		t.Fatalf("expected failure")
	}
	if !compensated {
		t.Fatalf("mutating step should have been compensated")
	}
}

func TestParallelCompensatesSucceededSubSteps(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var undone []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			undone = append(undone, name)
			mu.Unlock()
			return nil
		}
	}

	stage := Parallel("fan-out",
		Step{Name: "create-payments", Execute: func(context.Context) error { return nil }, Compensate: record("create-payments")},
		Step{Name: "create-links", Execute: func(context.Context) error { return nil }, Compensate: record("create-links")},
		Step{Name: "reserve-inventory", Execute: func(context.Context) error { return errors.New("out of stock") }},
	)

	err := NewRunner(nil).Run(context.Background(), "test", []Step{stage})
	if err == nil {
		t.Fatalf("expected failure")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(undone) != 2 {
		t.Fatalf("expected both succeeded sub-steps compensated, got %v", undone)
	}
}

func TestParallelStageCompensatedByLaterFailure(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var undone []string
	stage := Parallel("fan-out",
		Step{
			Name:    "create-links",
			Execute: func(context.Context) error { return nil },
			Compensate: func(context.Context) error {
				mu.Lock()
				undone = append(undone, "create-links")
				mu.Unlock()
				return nil
			},
		},
	)
	steps := []Step{
		stage,
		{Name: "after", Execute: func(context.Context) error { return errors.New("downstream failure") }},
	}

	if err := NewRunner(nil).Run(context.Background(), "test", steps); err == nil {
		t.Fatalf("expected failure")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(undone) != 1 {
		t.Fatalf("expected parallel stage compensated, got %v", undone)
	}
}
