package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fieldcrew/dispatch/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	scores      *prometheus.HistogramVec
	suggestions prometheus.Counter
	conflicts   *prometheus.CounterVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The Prometheus server should be started separately.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_assignments_total",
		Help: "Total number of job assignment events",
	}, []string{"technician_id", "committed"})
	scores := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_assignment_score",
		Help:    "Fit score of committed assignments",
		Buckets: prometheus.LinearBuckets(0, 20, 8),
	}, []string{"technician_id"})
	suggestions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_suggestion_runs_total",
		Help: "Total number of suggestion generation runs",
	})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_conflicts_total",
		Help: "Conflicts detected during commit attempts",
	}, []string{"severity"})

	if err := reg.Register(assignments); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assignments = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scores); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scores = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(suggestions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			suggestions = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(conflicts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			conflicts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		assignments: assignments,
		scores:      scores,
		suggestions: suggestions,
		conflicts:   conflicts,
	}, nil
}

// RecordAssignment increments the counter for each assignment event and
// observes the fit score of committed ones.
func (s *PromSink) RecordAssignment(events []coremetrics.AssignmentEvent) error {
	for _, ev := range events {
		s.assignments.WithLabelValues(ev.TechnicianID, strconv.FormatBool(ev.Committed)).Inc()
		if ev.Committed {
			s.scores.WithLabelValues(ev.TechnicianID).Observe(float64(ev.Score))
		}
	}
	return nil
}

// RecordSuggestions counts suggestion generation runs.
func (s *PromSink) RecordSuggestions(coremetrics.SuggestionEvent) error {
	s.suggestions.Inc()
	return nil
}

// RecordConflict counts detected conflicts by severity.
func (s *PromSink) RecordConflict(ev coremetrics.ConflictEvent) error {
	s.conflicts.WithLabelValues(ev.Severity).Inc()
	return nil
}
