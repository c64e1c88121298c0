// Package conflict detects scheduling and resource conflicts for a proposed
// time range.
package conflict

import (
	"fmt"
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/model"
)

// Severity distinguishes hard blocks from advisory warnings.
type Severity string

const (
	// SeverityError blocks a commit unless the caller explicitly overrides.
	SeverityError Severity = "error"
	// SeverityWarning is allowed but discouraged.
	SeverityWarning Severity = "warning"
)

// Conflict describes one clash between a proposed interval and an existing
// booking or the business's resource capacity.
type Conflict struct {
	JobID          string   `json:"job_id,omitempty"`
	OverlapMinutes int      `json:"overlap_minutes"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
}

// HasBlocking reports whether any conflict carries error severity.
func HasBlocking(conflicts []Conflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckTime reports bookings on the proposed day whose buffered interval
// intersects [proposedStart, proposedEnd). A clash of the raw intervals is an
// error; a clash introduced only by the buffer expansion is a warning.
func CheckTime(proposedStart, proposedEnd time.Time, jobs []model.Job, prefs model.SchedulingPreferences) []Conflict {
	var out []Conflict
	pStart := calendar.MinuteOfDay(proposedStart)
	pEnd := pStart + int(proposedEnd.Sub(proposedStart).Minutes())

	for _, j := range jobs {
		if !j.OnDay(proposedStart) {
			continue
		}
		start := calendar.MinuteOfDay(*j.ScheduledStart)
		end := start + j.Duration(prefs.DefaultJobDurationMinutes)
		bufStart := start - prefs.BufferMinutes
		bufEnd := end + prefs.BufferMinutes

		overlap := overlapMinutes(pStart, pEnd, bufStart, bufEnd)
		if overlap <= 0 {
			continue
		}
		severity := SeverityWarning
		msg := fmt.Sprintf("too close to job %s starting at %s (buffer %d min)",
			j.ID, calendar.FormatClock(start), prefs.BufferMinutes)
		if overlapMinutes(pStart, pEnd, start, end) > 0 {
			severity = SeverityError
			msg = fmt.Sprintf("overlaps job %s starting at %s", j.ID, calendar.FormatClock(start))
		}
		out = append(out, Conflict{
			JobID:          j.ID,
			OverlapMinutes: overlap,
			Severity:       severity,
			Message:        msg,
		})
	}
	return out
}

// CheckResources reports a hard conflict when every crew/vehicle is already
// busy during the proposed interval. Unlike CheckTime this deliberately
// ignores the buffer: it answers "is a crew free", not "is this too close to
// another job".
func CheckResources(proposedStart, proposedEnd time.Time, jobs []model.Job, prefs model.SchedulingPreferences) []Conflict {
	pStart := calendar.MinuteOfDay(proposedStart)
	pEnd := pStart + int(proposedEnd.Sub(proposedStart).Minutes())

	inUse := 0
	for _, j := range jobs {
		if !j.OnDay(proposedStart) {
			continue
		}
		start := calendar.MinuteOfDay(*j.ScheduledStart)
		end := start + j.Duration(prefs.DefaultJobDurationMinutes)
		if overlapMinutes(pStart, pEnd, start, end) > 0 {
			inUse++
		}
	}
	capacity := prefs.Capacity()
	if inUse < capacity {
		return nil
	}
	return []Conflict{{
		OverlapMinutes: pEnd - pStart,
		Severity:       SeverityError,
		Message:        fmt.Sprintf("all %d crews are booked during this window", capacity),
	}}
}

func overlapMinutes(aStart, aEnd, bStart, bEnd int) int {
	lo := aStart
	if bStart > lo {
		lo = bStart
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	return hi - lo
}
