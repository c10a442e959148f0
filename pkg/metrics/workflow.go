package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records outcomes for saga workflow runs.
type WorkflowMetrics struct {
	duration      *prometheus.HistogramVec
	success       *prometheus.CounterVec
	failure       *prometheus.CounterVec
	compensations *prometheus.CounterVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workflow_duration_seconds",
		Help:    "Duration of workflow runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"workflow"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_success",
		Help: "Successful workflow runs.",
	}, []string{"workflow"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_failure",
		Help: "Failed workflow runs.",
	}, []string{"workflow"})
	compensations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_compensations",
		Help: "Workflow runs that triggered compensation.",
	}, []string{"workflow"})
	reg.MustRegister(duration, success, failure, compensations)
	return &WorkflowMetrics{
		duration:      duration,
		success:       success,
		failure:       failure,
		compensations: compensations,
	}
}

// ObserveDuration records the duration for the named workflow.
func (w *WorkflowMetrics) ObserveDuration(workflow string, duration time.Duration) {
	if w == nil || w.duration == nil {
		return
	}
	w.duration.WithLabelValues(normalizeLabel(workflow)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named workflow.
func (w *WorkflowMetrics) IncSuccess(workflow string) {
	if w == nil || w.success == nil {
		return
	}
	w.success.WithLabelValues(normalizeLabel(workflow)).Inc()
}

// IncFailure increments the failure counter for the named workflow.
func (w *WorkflowMetrics) IncFailure(workflow string) {
	if w == nil || w.failure == nil {
		return
	}
	w.failure.WithLabelValues(normalizeLabel(workflow)).Inc()
}

// IncCompensation increments the compensation counter for the named workflow.
func (w *WorkflowMetrics) IncCompensation(workflow string) {
	if w == nil || w.compensations == nil {
		return
	}
	w.compensations.WithLabelValues(normalizeLabel(workflow)).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return strings.ReplaceAll(trimmed, " ", "_")
}
