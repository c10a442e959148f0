package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWorkflowMetricsCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewWorkflowMetrics(reg)

	m.IncSuccess("Complete Cart")
	m.IncSuccess("complete_cart")
	m.IncFailure("complete_cart")
	m.IncCompensation("complete_cart")
	m.ObserveDuration("complete_cart", 20*time.Millisecond)

	if got := testutil.ToFloat64(m.success.WithLabelValues("complete_cart")); got != 2 {
		t.Fatalf("expected normalized success count 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.failure.WithLabelValues("complete_cart")); got != 1 {
		t.Fatalf("expected failure count 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.compensations.WithLabelValues("complete_cart")); got != 1 {
		t.Fatalf("expected compensation count 1, got %v", got)
	}
}

func TestWorkflowMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *WorkflowMetrics
	m.IncSuccess("x")
	m.IncFailure("x")
	m.IncCompensation("x")
	m.ObserveDuration("x", time.Second)

	empty := NewWorkflowMetrics(nil)
	empty.IncSuccess("x")
}
