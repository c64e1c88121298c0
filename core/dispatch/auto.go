package dispatch

import (
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/conflict"
	"github.com/fieldcrew/dispatch/core/model"
)

// Assignment is one job placed with a technician at a concrete start time.
type Assignment struct {
	JobID        string             `json:"job_id"`
	TechnicianID string             `json:"technician_id"`
	Start        time.Time          `json:"start"`
	Score        int                `json:"score"`
	Reasons      []string           `json:"reasons,omitempty"`
	Span         []calendar.SpanDay `json:"span,omitempty"`
}

// Failure is a job that could not be placed, with the reason.
type Failure struct {
	JobID  string `json:"job_id"`
	Reason string `json:"reason"`
}

// Summary counts the outcome of a bulk run.
type Summary struct {
	Assigned int `json:"assigned"`
	Total    int `json:"total"`
}

// BulkResult is the outcome of AutoAssignAll.
type BulkResult struct {
	Successful []Assignment `json:"successful"`
	Failed     []Failure    `json:"failed"`
	Summary    Summary      `json:"summary"`
}

// AutoAssignAll greedily places the unassigned jobs with technicians for one
// day. Jobs are processed in stable input order and each placement consumes
// the technician's capacity before later jobs are considered, so input order
// affects the outcome. That ordering sensitivity is intentional: callers that
// want a different priority reorder the input.
func (a Allocator) AutoAssignAll(unassigned []model.Job, techs []model.Technician, assigned []model.Job, date time.Time) BulkResult {
	res := BulkResult{Summary: Summary{Total: len(unassigned)}}

	// Working copy of the day's bookings, grown as jobs are placed.
	working := make([]model.Job, len(assigned))
	copy(working, assigned)

	for _, job := range unassigned {
		ranked := a.RankTechnicians(job, techs, working, date)
		if len(ranked) == 0 {
			res.Failed = append(res.Failed, Failure{
				JobID:  job.ID,
				Reason: "no technician with spare capacity or a fitting slot",
			})
			continue
		}

		placed := false
		for _, cand := range ranked {
			end := cand.Start.Add(time.Duration(job.Duration(a.Prefs.DefaultJobDurationMinutes)) * time.Minute)
			if conflict.HasBlocking(conflict.CheckResources(cand.Start, end, working, a.Prefs)) {
				continue
			}
			res.Successful = append(res.Successful, Assignment{
				JobID:        job.ID,
				TechnicianID: cand.Technician.ID,
				Start:        cand.Start,
				Score:        cand.Score,
				Reasons:      cand.Reasons,
				Span:         cand.Span,
			})
			start := cand.Start
			sim := job
			sim.Status = model.StatusScheduled
			sim.ScheduledStart = &start
			sim.TechnicianID = cand.Technician.ID
			working = append(working, sim)
			placed = true
			break
		}
		if !placed {
			res.Failed = append(res.Failed, Failure{
				JobID:  job.ID,
				Reason: "every candidate window exceeds crew capacity",
			})
		}
	}

	res.Summary.Assigned = len(res.Successful)
	return res
}
