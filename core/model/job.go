package model

import (
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/geo"
)

// JobStatus tracks a job through its lifecycle. Values are the lowercase
// snake_case strings used by the persistence layer.
type JobStatus string

const (
	StatusPendingSchedule JobStatus = "pending_schedule"
	StatusSlotsOffered    JobStatus = "slots_offered"
	StatusScheduled       JobStatus = "scheduled"
	StatusEnRoute         JobStatus = "en_route"
	StatusOnSite          JobStatus = "on_site"
	StatusInProgress      JobStatus = "in_progress"
	StatusRunningLate     JobStatus = "running_late"
	StatusWaiting         JobStatus = "waiting"
	StatusCompleted       JobStatus = "completed"
	StatusCancelled       JobStatus = "cancelled"
)

// transitions lists the allowed forward edges of the job lifecycle.
// Cancellation from any non-terminal state is handled separately.
var transitions = map[JobStatus][]JobStatus{
	StatusPendingSchedule: {StatusSlotsOffered, StatusScheduled},
	StatusSlotsOffered:    {StatusScheduled, StatusPendingSchedule},
	StatusScheduled:       {StatusEnRoute},
	StatusEnRoute:         {StatusOnSite, StatusRunningLate},
	StatusOnSite:          {StatusInProgress, StatusWaiting},
	StatusInProgress:      {StatusCompleted, StatusRunningLate, StatusWaiting},
	StatusRunningLate:     {StatusInProgress, StatusOnSite},
	StatusWaiting:         {StatusInProgress},
}

// IsTerminal reports whether no further transitions are allowed.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Priority of a job, from the booking workflow.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Job is one unit of billable field work. The engine receives jobs as
// read-only snapshots from the persistence layer.
type Job struct {
	ID               string           `json:"id" validate:"required"`
	Status           JobStatus        `json:"status"`
	ScheduledStart   *time.Time       `json:"scheduled_start,omitempty"`
	EstimatedMinutes int              `json:"estimated_minutes" validate:"gte=0"`
	Coordinates      *geo.Coordinates `json:"coordinates,omitempty"`
	TechnicianID     string           `json:"technician_id,omitempty"`
	Priority         Priority         `json:"priority,omitempty"`
}

// IsBooked reports whether the job occupies calendar time: it has a start
// and has not been cancelled.
func (j Job) IsBooked() bool {
	return j.ScheduledStart != nil && j.Status != StatusCancelled
}

// ScheduledEnd returns the booked end time. durationFallback is used when the
// job carries no estimate of its own.
func (j Job) ScheduledEnd(durationFallback int) time.Time {
	if j.ScheduledStart == nil {
		return time.Time{}
	}
	return j.ScheduledStart.Add(time.Duration(j.Duration(durationFallback)) * time.Minute)
}

// Duration returns the job's estimated duration in minutes, falling back to
// the provided default when the estimate is missing or non-positive.
func (j Job) Duration(fallback int) int {
	if j.EstimatedMinutes > 0 {
		return j.EstimatedMinutes
	}
	return fallback
}

// OnDay reports whether the job is booked on the given calendar day.
func (j Job) OnDay(day time.Time) bool {
	return j.IsBooked() && calendar.SameDay(*j.ScheduledStart, day)
}

// BookedOn filters jobs down to bookings on the given day, preserving input
// order.
func BookedOn(jobs []Job, day time.Time) []Job {
	var out []Job
	for _, j := range jobs {
		if j.OnDay(day) {
			out = append(out, j)
		}
	}
	return out
}
