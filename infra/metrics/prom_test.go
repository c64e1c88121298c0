package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/fieldcrew/dispatch/core/metrics"
)

func TestPromSink_RecordAssignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	events := []coremetrics.AssignmentEvent{
		{JobID: "j1", TechnicianID: "t1", Score: 85, Committed: true, Time: time.Now()},
		{JobID: "j2", TechnicianID: "t1", Score: 0, Committed: false, Time: time.Now()},
	}
	if err := sink.RecordAssignment(events); err != nil {
		t.Fatalf("record: %v", err)
	}
	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.assignments.WithLabelValues("t1", "true")); got != 1 {
		t.Errorf("committed counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ps.assignments.WithLabelValues("t1", "false")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestPromSink_RecordConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	rec := sink.(coremetrics.ConflictRecorder)
	if err := rec.RecordConflict(coremetrics.ConflictEvent{JobID: "j1", Severity: "error", Time: time.Now()}); err != nil {
		t.Fatalf("record: %v", err)
	}
	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.conflicts.WithLabelValues("error")); got != 1 {
		t.Errorf("conflict counter = %v, want 1", got)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
