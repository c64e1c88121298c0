// Package slots finds open time windows within a day's working hours.
package slots

import (
	"sort"
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/model"
)

// Kind classifies where in the day's timeline an open interval falls.
type Kind string

const (
	// KindGap is an opening between two bookings.
	KindGap Kind = "gap"
	// KindEmptyDay is a fully open working day.
	KindEmptyDay Kind = "empty_day"
	// KindEndOfDay is the remainder of the window after the last booking.
	KindEndOfDay Kind = "end_of_day"
)

// Slot is a contiguous open interval, in minutes from midnight.
type Slot struct {
	StartMinute     int  `json:"start_minute"`
	EndMinute       int  `json:"end_minute"`
	DurationMinutes int  `json:"duration_minutes"`
	Kind            Kind `json:"kind"`
}

// Start returns the slot start as a timestamp on the given day.
func (s Slot) Start(day time.Time) time.Time { return calendar.At(day, s.StartMinute) }

// Find returns the open slots on the given date that can hold a job of the
// required duration, using the business-wide working hours. Output follows
// chronological gap order. A disabled weekday yields no slots.
func Find(date time.Time, jobs []model.Job, prefs model.SchedulingPreferences, requiredMinutes int) []Slot {
	return FindForHours(date, jobs, prefs.WorkingHours, prefs, requiredMinutes)
}

// FindForHours is Find with an explicit week schedule, used when slots are
// computed against a specific technician's hours.
func FindForHours(date time.Time, jobs []model.Job, week calendar.WeekSchedule, prefs model.SchedulingPreferences, requiredMinutes int) []Slot {
	hours, ok := week.ForDate(date)
	if !ok {
		return nil
	}
	winStart, winEnd, err := hours.Window()
	if err != nil {
		return nil
	}

	bookings := dayBookings(jobs, date, prefs.DefaultJobDurationMinutes)
	if len(bookings) == 0 {
		if winEnd-winStart >= requiredMinutes {
			return []Slot{{
				StartMinute:     winStart,
				EndMinute:       winEnd,
				DurationMinutes: winEnd - winStart,
				Kind:            KindEmptyDay,
			}}
		}
		return nil
	}

	var out []Slot
	cursor := winStart
	for _, b := range bookings {
		gapEnd := b.start - prefs.BufferMinutes
		if gapEnd > winEnd {
			gapEnd = winEnd
		}
		if gapEnd-cursor >= requiredMinutes {
			out = append(out, Slot{
				StartMinute:     cursor,
				EndMinute:       gapEnd,
				DurationMinutes: gapEnd - cursor,
				Kind:            KindGap,
			})
		}
		if next := b.end + prefs.BufferMinutes; next > cursor {
			cursor = next
		}
	}
	if winEnd-cursor >= requiredMinutes {
		out = append(out, Slot{
			StartMinute:     cursor,
			EndMinute:       winEnd,
			DurationMinutes: winEnd - cursor,
			Kind:            KindEndOfDay,
		})
	}
	return out
}

type booking struct {
	start int
	end   int
}

// dayBookings projects the day's bookings onto minute-of-day intervals,
// sorted by start time.
func dayBookings(jobs []model.Job, date time.Time, durationFallback int) []booking {
	var out []booking
	for _, j := range jobs {
		if !j.OnDay(date) {
			continue
		}
		start := calendar.MinuteOfDay(*j.ScheduledStart)
		out = append(out, booking{start: start, end: start + j.Duration(durationFallback)})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].start < out[k].start })
	return out
}
