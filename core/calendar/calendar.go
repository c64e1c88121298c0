package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DayHours describes the working window for a single weekday.
// Start and End are 24-hour "HH:MM" clock strings.
type DayHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// WeekSchedule maps lowercase English weekday names ("monday" ... "sunday")
// to their working hours.
type WeekSchedule map[string]DayHours

// WeekdayKey returns the lowercase weekday name used as a WeekSchedule key.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ForDate looks up the working hours for the date's weekday. The second
// return value is false when the day is disabled or not configured.
func (w WeekSchedule) ForDate(t time.Time) (DayHours, bool) {
	h, ok := w[WeekdayKey(t)]
	if !ok || !h.Enabled {
		return DayHours{}, false
	}
	return h, true
}

// Window returns the working window as minutes from midnight. It reports an
// error when either clock string is malformed or the window is inverted.
func (h DayHours) Window() (start, end int, err error) {
	start, err = ParseClock(h.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(h.End)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("working window %s-%s is inverted", h.Start, h.End)
	}
	return start, end, nil
}

// DefaultWeek returns a Monday through Friday 08:00-17:00 schedule.
func DefaultWeek() WeekSchedule {
	week := WeekSchedule{}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		week[d] = DayHours{Enabled: true, Start: "08:00", End: "17:00"}
	}
	for _, d := range []string{"saturday", "sunday"} {
		week[d] = DayHours{Enabled: false, Start: "08:00", End: "17:00"}
	}
	return week
}

// ParseClock converts a 24-hour "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as a 24-hour "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinuteOfDay returns the minute offset of t within its calendar day.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// At combines a calendar day with a minute-of-day offset.
func At(day time.Time, minute int) time.Time {
	return StartOfDay(day).Add(time.Duration(minute) * time.Minute)
}
