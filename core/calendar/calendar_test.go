package calendar

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"17:00", 1020, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"garbage", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Fatalf("got %q", got)
	}
}

func TestWeekdayKey(t *testing.T) {
	// 2025-01-06 is a Monday.
	mon := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	if got := WeekdayKey(mon); got != "monday" {
		t.Fatalf("got %q", got)
	}
}

func TestForDate(t *testing.T) {
	week := DefaultWeek()
	mon := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	if _, ok := week.ForDate(mon); !ok {
		t.Fatalf("monday should be enabled")
	}
	if _, ok := week.ForDate(sun); ok {
		t.Fatalf("sunday should be disabled")
	}
}

func TestWindowInverted(t *testing.T) {
	h := DayHours{Enabled: true, Start: "17:00", End: "08:00"}
	if _, _, err := h.Window(); err == nil {
		t.Fatalf("expected error for inverted window")
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	c := time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("expected same day")
	}
	if SameDay(a, c) {
		t.Fatalf("expected different day")
	}
}

func TestDaysNeeded(t *testing.T) {
	cases := []struct{ minutes, want int }{
		{0, 0},
		{60, 1},
		{480, 1},
		{481, 2},
		{960, 2},
		{961, 3},
	}
	for _, c := range cases {
		if got := DaysNeeded(c.minutes); got != c.want {
			t.Errorf("DaysNeeded(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

func TestBuildSpanSkipsWeekend(t *testing.T) {
	week := DefaultWeek()
	// 2025-01-10 is a Friday; a 960 minute job should land Friday and Monday.
	fri := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	span := BuildSpan(fri, 960, week)
	if len(span) != 2 {
		t.Fatalf("expected 2 span days, got %d", len(span))
	}
	if span[0].Date.Weekday() != time.Friday {
		t.Errorf("first span day should be Friday, got %s", span[0].Date.Weekday())
	}
	if span[1].Date.Weekday() != time.Monday {
		t.Errorf("second span day should skip to Monday, got %s", span[1].Date.Weekday())
	}
	total := 0
	for _, d := range span {
		total += d.Minutes()
	}
	if total != 960 {
		t.Errorf("span should cover the full duration, got %d", total)
	}
}

func TestBuildSpanNoWorkingDays(t *testing.T) {
	week := WeekSchedule{"monday": {Enabled: false}}
	if span := BuildSpan(time.Now(), 600, week); span != nil {
		t.Fatalf("expected nil span for empty schedule")
	}
}

func TestBuildSpanInvalidWindowOnlyDay(t *testing.T) {
	// The only enabled day has an inverted window, so no day can ever host
	// a block and the span must be empty rather than walking forever.
	week := WeekSchedule{"monday": {Enabled: true, Start: "17:00", End: "08:00"}}
	if span := BuildSpan(time.Now(), 600, week); span != nil {
		t.Fatalf("expected nil span when no enabled day has a valid window, got %v", span)
	}
}

func TestBuildSpanPartialLastDay(t *testing.T) {
	week := DefaultWeek()
	mon := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	span := BuildSpan(mon, 600, week)
	if len(span) != 2 {
		t.Fatalf("expected 2 days, got %d", len(span))
	}
	if span[1].Minutes() != 600-span[0].Minutes() {
		t.Errorf("last day should carry the remainder")
	}
}
