package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldcrew/dispatch/core/conflict"
	"github.com/fieldcrew/dispatch/core/logger"
	"github.com/fieldcrew/dispatch/core/metrics"
	"github.com/fieldcrew/dispatch/core/model"
)

// Commit is the record of one persisted assignment.
type Commit struct {
	ID           string              `json:"id"`
	JobID        string              `json:"job_id"`
	TechnicianID string              `json:"technician_id"`
	Start        time.Time           `json:"start"`
	Warnings     []conflict.Conflict `json:"warnings,omitempty"`
}

// Manager commits assignments through the store boundary. Every commit
// re-validates conflicts against the latest store state first; scoring
// results are advisory until committed.
type Manager struct {
	store JobStore
	prefs model.SchedulingPreferences
	alloc Allocator
	log   logger.Logger
	sink  metrics.MetricsSink
}

// NewManager creates a manager. The logger and sink may be nil.
func NewManager(store JobStore, prefs model.SchedulingPreferences, log logger.Logger, sink metrics.MetricsSink) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("dispatch: nil store provided to NewManager")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		store: store,
		prefs: prefs,
		alloc: NewAllocator(prefs),
		log:   log,
		sink:  sink,
	}, nil
}

// AssignJob books the job with the technician at the given start after
// re-checking conflicts against the latest store state. Soft warnings are
// returned on the commit; a hard conflict aborts with ErrConflict.
func (m *Manager) AssignJob(ctx context.Context, jobID, techID string, start time.Time) (Commit, error) {
	job, err := m.store.Job(ctx, jobID)
	if err != nil {
		return Commit{}, fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job.Status != model.StatusScheduled && !job.Status.CanTransitionTo(model.StatusScheduled) {
		return Commit{}, fmt.Errorf("job %s is %s: %w", jobID, job.Status, ErrLifecycle)
	}

	all, err := m.store.Jobs(ctx)
	if err != nil {
		return Commit{}, fmt.Errorf("load jobs: %w", err)
	}
	others := excludeJob(all, jobID)
	end := start.Add(time.Duration(job.Duration(m.prefs.DefaultJobDurationMinutes)) * time.Minute)

	// Spacing applies to the technician's own day; capacity spans all crews.
	var techJobs []model.Job
	for _, j := range others {
		if j.TechnicianID == techID {
			techJobs = append(techJobs, j)
		}
	}
	found := conflict.CheckTime(start, end, techJobs, m.prefs)
	found = append(found, conflict.CheckResources(start, end, others, m.prefs)...)
	m.recordConflicts(jobID, found)
	if conflict.HasBlocking(found) {
		return Commit{}, fmt.Errorf("job %s at %s: %w", jobID, start.Format(time.RFC3339), ErrConflict)
	}

	job.ScheduledStart = &start
	job.TechnicianID = techID
	if job.Status != model.StatusScheduled {
		job.Status = model.StatusScheduled
	}
	if err := m.store.UpdateJob(ctx, job); err != nil {
		return Commit{}, fmt.Errorf("commit job %s: %w", jobID, err)
	}

	commit := Commit{
		ID:           uuid.NewString(),
		JobID:        jobID,
		TechnicianID: techID,
		Start:        start,
		Warnings:     found,
	}
	m.log.Infof("assigned job %s to %s at %s", jobID, techID, start.Format(time.RFC3339))
	m.record([]metrics.AssignmentEvent{{
		AssignmentID: commit.ID,
		JobID:        jobID,
		TechnicianID: techID,
		Start:        start,
		Committed:    true,
		Time:         time.Now(),
	}})
	return commit, nil
}

// UnassignJob reverts a booked job to the unscheduled pool. Jobs already in
// the field (en_route and later) or terminal cannot be unassigned.
func (m *Manager) UnassignJob(ctx context.Context, jobID string) error {
	job, err := m.store.Job(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}
	switch job.Status {
	case model.StatusScheduled, model.StatusSlotsOffered, model.StatusPendingSchedule:
	default:
		return fmt.Errorf("job %s is %s: %w", jobID, job.Status, ErrLifecycle)
	}
	job.ScheduledStart = nil
	job.TechnicianID = ""
	job.Status = model.StatusPendingSchedule
	if err := m.store.UpdateJob(ctx, job); err != nil {
		return fmt.Errorf("commit job %s: %w", jobID, err)
	}
	m.log.Infof("unassigned job %s", jobID)
	return nil
}

// AssignmentRequest is one manual placement for BulkAssign.
type AssignmentRequest struct {
	JobID        string    `json:"job_id"`
	TechnicianID string    `json:"technician_id"`
	Start        time.Time `json:"start"`
}

// BulkAssign commits the requests in order. Each request runs the same
// conflict and lifecycle checks as AssignJob; failures are collected rather
// than aborting the batch.
func (m *Manager) BulkAssign(ctx context.Context, reqs []AssignmentRequest) BulkResult {
	res := BulkResult{Summary: Summary{Total: len(reqs)}}
	for _, r := range reqs {
		commit, err := m.AssignJob(ctx, r.JobID, r.TechnicianID, r.Start)
		if err != nil {
			res.Failed = append(res.Failed, Failure{JobID: r.JobID, Reason: err.Error()})
			continue
		}
		res.Successful = append(res.Successful, Assignment{
			JobID:        commit.JobID,
			TechnicianID: commit.TechnicianID,
			Start:        commit.Start,
		})
	}
	res.Summary.Assigned = len(res.Successful)
	return res
}

// AutoAssign runs the greedy allocator over the store's unscheduled jobs for
// one day and commits the placements. The store is re-read once up front; the
// per-job conflict checks run against the working snapshot the allocator
// maintains.
func (m *Manager) AutoAssign(ctx context.Context, techs []model.Technician, date time.Time) (BulkResult, error) {
	all, err := m.store.Jobs(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("load jobs: %w", err)
	}
	var unassigned []model.Job
	for _, j := range all {
		if j.Status == model.StatusPendingSchedule {
			unassigned = append(unassigned, j)
		}
	}
	booked := model.BookedOn(all, date)

	res := m.alloc.AutoAssignAll(unassigned, techs, booked, date)

	var events []metrics.AssignmentEvent
	var committed []Assignment
	for _, a := range res.Successful {
		if _, err := m.AssignJob(ctx, a.JobID, a.TechnicianID, a.Start); err != nil {
			m.log.Warnf("auto-assign commit for job %s failed: %v", a.JobID, err)
			res.Failed = append(res.Failed, Failure{JobID: a.JobID, Reason: err.Error()})
			continue
		}
		committed = append(committed, a)
		events = append(events, metrics.AssignmentEvent{
			JobID:        a.JobID,
			TechnicianID: a.TechnicianID,
			Score:        a.Score,
			Start:        a.Start,
			Committed:    true,
			Time:         time.Now(),
		})
	}
	res.Successful = committed
	res.Summary.Assigned = len(committed)
	m.record(events)
	m.log.Infof("auto-assigned %d of %d jobs for %s", res.Summary.Assigned, res.Summary.Total, date.Format("2006-01-02"))
	return res, nil
}

func (m *Manager) record(events []metrics.AssignmentEvent) {
	if len(events) == 0 {
		return
	}
	if err := m.sink.RecordAssignment(events); err != nil {
		m.log.Errorf("metrics error: %v", err)
	}
}

func (m *Manager) recordConflicts(jobID string, found []conflict.Conflict) {
	rec, ok := m.sink.(metrics.ConflictRecorder)
	if !ok {
		return
	}
	for _, c := range found {
		if err := rec.RecordConflict(metrics.ConflictEvent{JobID: jobID, Severity: string(c.Severity), Time: time.Now()}); err != nil {
			m.log.Errorf("conflict metrics error: %v", err)
		}
	}
}

func excludeJob(jobs []model.Job, id string) []model.Job {
	var out []model.Job
	for _, j := range jobs {
		if j.ID != id {
			out = append(out, j)
		}
	}
	return out
}
