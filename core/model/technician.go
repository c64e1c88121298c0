package model

import (
	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/geo"
)

// Technician is a field worker who can be assigned jobs.
type Technician struct {
	ID           string                `json:"id" validate:"required"`
	Name         string                `json:"name"`
	WorkingHours calendar.WeekSchedule `json:"working_hours"`
	// MaxJobsPerDay caps how many jobs may be assigned per day. Zero means
	// the default of 4.
	MaxJobsPerDay int `json:"max_jobs_per_day" validate:"gte=0"`
	// MaxHoursPerDay caps the total booked hours per day. Zero means the
	// default of 8.
	MaxHoursPerDay int              `json:"max_hours_per_day" validate:"gte=0"`
	HomeBase       *geo.Coordinates `json:"home_base,omitempty"`
}

const (
	defaultMaxJobsPerDay  = 4
	defaultMaxHoursPerDay = 8
)

// JobCap returns the effective daily job-count limit.
func (t Technician) JobCap() int {
	if t.MaxJobsPerDay > 0 {
		return t.MaxJobsPerDay
	}
	return defaultMaxJobsPerDay
}

// MinuteCap returns the effective daily booked-minutes limit.
func (t Technician) MinuteCap() int {
	if t.MaxHoursPerDay > 0 {
		return t.MaxHoursPerDay * 60
	}
	return defaultMaxHoursPerDay * 60
}

// Hours returns the technician's week schedule, falling back to the provided
// business-wide schedule when the technician has none configured.
func (t Technician) Hours(fallback calendar.WeekSchedule) calendar.WeekSchedule {
	if len(t.WorkingHours) > 0 {
		return t.WorkingHours
	}
	return fallback
}
