package dispatch

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/core/slots"
)

// Fit score adjustments, kept aligned with the suggestion scorer constants.
const (
	baseScore      = 50
	veryCloseBonus = 25
	closeBonus     = 15
	lightDayBonus  = 10
	morningBonus   = 5
	veryCloseMiles = 5.0
	closeMiles     = 10.0
	noonMinute     = 720
)

// TechScore is one technician's fit for a job on a given day, with the
// proposed start computed from the technician's first open slot.
type TechScore struct {
	Technician model.Technician   `json:"technician"`
	Score      int                `json:"score"`
	Reasons    []string           `json:"reasons"`
	Start      time.Time          `json:"start"`
	Slot       slots.Slot         `json:"slot"`
	Span       []calendar.SpanDay `json:"span,omitempty"`
}

// Allocator scores technicians for jobs and performs greedy bulk assignment.
type Allocator struct {
	Prefs model.SchedulingPreferences
}

// NewAllocator returns an allocator using the given business preferences.
func NewAllocator(prefs model.SchedulingPreferences) Allocator {
	return Allocator{Prefs: prefs}
}

// RankTechnicians scores every technician for the job on the date and returns
// them best-first. Technicians who are off that day, already at capacity, or
// without an open slot long enough are excluded. Ties keep input order.
func (a Allocator) RankTechnicians(job model.Job, techs []model.Technician, dayJobs []model.Job, date time.Time) []TechScore {
	duration := job.Duration(a.Prefs.DefaultJobDurationMinutes)
	required := duration
	multiDay := calendar.IsMultiDay(duration)
	if multiDay {
		// Multi-day jobs only need their start day here; the span blocks the
		// following days once a start is chosen.
		required = calendar.WorkdayMinutes
	}

	var out []TechScore
	for _, tech := range techs {
		ts, ok := a.scoreTechnician(job, tech, dayJobs, date, duration, required, multiDay)
		if !ok {
			continue
		}
		out = append(out, ts)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Score > out[k].Score })
	return out
}

func (a Allocator) scoreTechnician(job model.Job, tech model.Technician, dayJobs []model.Job, date time.Time, duration, required int, multiDay bool) (TechScore, bool) {
	techJobs := jobsForTech(dayJobs, tech.ID, date)
	if len(techJobs) >= tech.JobCap() {
		return TechScore{}, false
	}
	booked := 0
	for _, j := range techJobs {
		booked += j.Duration(a.Prefs.DefaultJobDurationMinutes)
	}
	dayShare := duration
	if dayShare > calendar.WorkdayMinutes {
		dayShare = calendar.WorkdayMinutes
	}
	if booked+dayShare > tech.MinuteCap() {
		return TechScore{}, false
	}

	week := tech.Hours(a.Prefs.WorkingHours)
	open := slots.FindForHours(date, techJobs, week, a.Prefs, required)
	if len(open) == 0 {
		return TechScore{}, false
	}
	slot := open[0]

	score := baseScore
	var reasons []string
	if from := techLocation(tech, techJobs); from != nil && job.Coordinates != nil {
		d := geo.DistanceMiles(*from, *job.Coordinates)
		switch {
		case d < veryCloseMiles:
			score += veryCloseBonus
			reasons = append(reasons, fmt.Sprintf("%.1f miles from %s", d, tech.ID))
		case d < closeMiles:
			score += closeBonus
			reasons = append(reasons, fmt.Sprintf("%.1f miles from %s", d, tech.ID))
		}
	}
	if len(techJobs) <= 1 {
		score += lightDayBonus
		reasons = append(reasons, fmt.Sprintf("light day for %s (%d booked)", tech.ID, len(techJobs)))
	}
	if slot.StartMinute < noonMinute {
		score += morningBonus
		reasons = append(reasons, "morning start")
	}

	ts := TechScore{
		Technician: tech,
		Score:      score,
		Reasons:    reasons,
		Start:      slot.Start(date),
		Slot:       slot,
	}
	if multiDay {
		ts.Span = calendar.BuildSpan(ts.Start, duration, week)
	}
	return ts, true
}

// techLocation is the point a technician would travel from: the last booked
// job with known coordinates, else the home base.
func techLocation(tech model.Technician, techJobs []model.Job) *geo.Coordinates {
	for i := len(techJobs) - 1; i >= 0; i-- {
		if techJobs[i].Coordinates != nil {
			return techJobs[i].Coordinates
		}
	}
	return tech.HomeBase
}

// jobsForTech filters the day's bookings down to one technician, ordered by
// start time.
func jobsForTech(dayJobs []model.Job, techID string, date time.Time) []model.Job {
	var out []model.Job
	for _, j := range dayJobs {
		if j.TechnicianID == techID && j.OnDay(date) {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].ScheduledStart.Before(*out[k].ScheduledStart)
	})
	return out
}
