package calendar

import "time"

// WorkdayMinutes is the length of one standard working day. Jobs longer than
// this span multiple days.
const WorkdayMinutes = 480

// DaysNeeded returns how many working days a job of the given duration
// occupies. Durations of up to one standard day fit in a single day.
func DaysNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + WorkdayMinutes - 1) / WorkdayMinutes
}

// IsMultiDay reports whether the duration exceeds one standard working day.
func IsMultiDay(durationMinutes int) bool {
	return durationMinutes > WorkdayMinutes
}

// SpanDay is one day of a multi-day schedule block.
type SpanDay struct {
	Date        time.Time
	StartMinute int
	EndMinute   int
}

// Minutes returns the booked length of the span day.
func (d SpanDay) Minutes() int { return d.EndMinute - d.StartMinute }

// BuildSpan lays a job of the given duration across consecutive working days
// starting at the chosen date, skipping weekdays disabled in the schedule.
// Each day is filled from its window start up to the remaining duration or
// the window end, whichever comes first. A schedule where no enabled weekday
// has a valid window yields nil.
func BuildSpan(start time.Time, durationMinutes int, week WeekSchedule) []SpanDay {
	if durationMinutes <= 0 || !hasUsableDay(week) {
		return nil
	}
	var days []SpanDay
	remaining := durationMinutes
	day := StartOfDay(start)
	for remaining > 0 {
		hours, ok := week.ForDate(day)
		if !ok {
			day = day.AddDate(0, 0, 1)
			continue
		}
		winStart, winEnd, err := hours.Window()
		if err != nil {
			day = day.AddDate(0, 0, 1)
			continue
		}
		block := winEnd - winStart
		if block > remaining {
			block = remaining
		}
		days = append(days, SpanDay{Date: day, StartMinute: winStart, EndMinute: winStart + block})
		remaining -= block
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// hasUsableDay reports whether at least one enabled weekday parses to a
// valid working window. The day walk above relies on it to terminate.
func hasUsableDay(week WeekSchedule) bool {
	for _, h := range week {
		if !h.Enabled {
			continue
		}
		if _, _, err := h.Window(); err == nil {
			return true
		}
	}
	return false
}
