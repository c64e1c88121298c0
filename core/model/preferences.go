package model

import (
	"fmt"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/geo"
)

// SchedulingPreferences carries the business-wide scheduling defaults.
type SchedulingPreferences struct {
	// BufferMinutes is the minimum idle time required between two bookings.
	BufferMinutes int `json:"buffer_minutes" validate:"gte=0"`
	// DefaultJobDurationMinutes is assumed when a job has no estimate.
	DefaultJobDurationMinutes int `json:"default_job_duration_minutes" validate:"gte=0"`
	// WorkingHours apply when a job has no assigned technician yet.
	WorkingHours calendar.WeekSchedule `json:"working_hours"`
	HomeBase     *geo.Coordinates      `json:"home_base,omitempty"`
	// VehicleCount is the number of crews/vehicles that can run jobs
	// simultaneously. Values below one are treated as one.
	VehicleCount int `json:"vehicle_count" validate:"gte=0"`
}

// SetDefaults fills zero values with the business defaults.
func (p *SchedulingPreferences) SetDefaults() {
	if p.BufferMinutes == 0 {
		p.BufferMinutes = 30
	}
	if p.DefaultJobDurationMinutes == 0 {
		p.DefaultJobDurationMinutes = 120
	}
	if len(p.WorkingHours) == 0 {
		p.WorkingHours = calendar.DefaultWeek()
	}
}

// Validate checks the preference values are usable.
func (p SchedulingPreferences) Validate() error {
	if p.BufferMinutes < 0 {
		return fmt.Errorf("buffer_minutes must not be negative")
	}
	if p.DefaultJobDurationMinutes <= 0 {
		return fmt.Errorf("default_job_duration_minutes must be positive")
	}
	for day, h := range p.WorkingHours {
		if !h.Enabled {
			continue
		}
		if _, _, err := h.Window(); err != nil {
			return fmt.Errorf("working hours for %s: %w", day, err)
		}
	}
	return nil
}

// Capacity returns the number of simultaneous jobs the business can service.
func (p SchedulingPreferences) Capacity() int {
	if p.VehicleCount > 1 {
		return p.VehicleCount
	}
	return 1
}

// TimeBucket is a customer's preferred time of day.
type TimeBucket string

const (
	TimeMorning   TimeBucket = "morning"
	TimeAfternoon TimeBucket = "afternoon"
	TimeEvening   TimeBucket = "evening"
	TimeFlexible  TimeBucket = "flexible"
)

// DayBucket is a customer's preferred kind of day.
type DayBucket string

const (
	DaysWeekdays DayBucket = "weekdays"
	DaysWeekends DayBucket = "weekends"
	DaysAny      DayBucket = "any"
)

// CustomerPreference holds optional per-job customer wishes used as a soft
// scoring signal.
type CustomerPreference struct {
	TimeOfDay TimeBucket `json:"time_of_day,omitempty"`
	Days      DayBucket  `json:"days,omitempty"`
}
