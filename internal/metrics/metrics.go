package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsCommitted counts results persisted for the first time.
	SubmissionsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_submissions_committed_total",
		Help: "Number of submissions committed as new results.",
	})

	// DuplicateSubmissions counts retried or concurrent submissions rejected
	// by the natural-key constraint.
	DuplicateSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_submissions_duplicate_total",
		Help: "Number of submissions that hit an already committed result.",
	})

	// JudgeFailures counts AI judge calls that errored or returned no text.
	JudgeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_judge_failures_total",
		Help: "Number of failed AI judge evaluations.",
	})
)
