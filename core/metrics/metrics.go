// Package metrics defines the observability sink interfaces for the
// scheduling engine. Implementations live under infra/metrics.
package metrics

import "time"

// AssignmentEvent records one committed or rejected job assignment.
type AssignmentEvent struct {
	AssignmentID string
	JobID        string
	TechnicianID string
	Score        int
	Start        time.Time
	Committed    bool
	Reason       string
	Time         time.Time
}

// MetricsSink records assignment events for observability purposes.
type MetricsSink interface {
	RecordAssignment(events []AssignmentEvent) error
}

// SuggestionEvent captures one suggestion generation run.
type SuggestionEvent struct {
	JobID       string
	Suggestions int
	TopScore    int
	Warnings    int
	Time        time.Time
}

// SuggestionRecorder is implemented by sinks able to record suggestion runs.
type SuggestionRecorder interface {
	RecordSuggestions(ev SuggestionEvent) error
}

// ConflictEvent captures a conflict detected during a commit attempt.
type ConflictEvent struct {
	JobID    string
	Severity string
	Time     time.Time
}

// ConflictRecorder is implemented by sinks able to record conflicts.
type ConflictRecorder interface {
	RecordConflict(ev ConflictEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignment([]AssignmentEvent) error { return nil }
func (NopSink) RecordSuggestions(SuggestionEvent) error  { return nil }
func (NopSink) RecordConflict(ConflictEvent) error       { return nil }
