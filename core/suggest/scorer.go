// Package suggest ranks candidate appointment windows for a job awaiting a
// schedule. Scoring is a pure function over in-memory snapshots; callers must
// re-validate conflicts against fresh state before committing a suggestion.
package suggest

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldcrew/dispatch/core/calendar"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/core/proximity"
	"github.com/fieldcrew/dispatch/core/slots"
)

// Score adjustments. Hand-tuned values kept for behavioral parity with the
// production scheduler.
const (
	baseScore          = 50
	emptyDayBonus      = 5
	lightDayBonus      = 10
	veryCloseBonus     = 25
	closeBonus         = 15
	soonBonus          = 10
	morningBonus       = 5
	veryCloseMiles     = 5.0
	closeMiles         = 10.0
	soonDayCount       = 3
	noonMinute         = 720
	lightDayJobCount   = 1
	warningHorizonDays = 7
	maxNearbyPerDay    = 3
)

// DefaultDaysToAnalyze bounds the forward search window.
const DefaultDaysToAnalyze = 14

// DefaultMaxSuggestions caps the ranked output.
const DefaultMaxSuggestions = 10

// Workload is a day's booking load relative to capacity.
type Workload struct {
	Date          time.Time `json:"date"`
	JobCount      int       `json:"job_count"`
	BookedMinutes int       `json:"booked_minutes"`
	MaxJobs       int       `json:"max_jobs"`
}

// AtCapacity reports whether no further jobs fit on the day.
func (w Workload) AtCapacity() bool { return w.JobCount >= w.MaxJobs }

// Light reports whether the day has at most one booking.
func (w Workload) Light() bool { return w.JobCount <= lightDayJobCount }

// Suggestion is one ranked candidate appointment window.
type Suggestion struct {
	Date        time.Time             `json:"date"`
	Slot        slots.Slot            `json:"slot"`
	Score       int                   `json:"score"`
	Reasons     []string              `json:"reasons"`
	Workload    Workload              `json:"workload"`
	Nearby      []proximity.NearbyJob `json:"nearby,omitempty"`
	Recommended bool                  `json:"recommended"`
}

// Start returns the candidate start timestamp.
func (s Suggestion) Start() time.Time { return calendar.At(s.Date, s.Slot.StartMinute) }

// End returns the candidate end timestamp.
func (s Suggestion) End() time.Time { return calendar.At(s.Date, s.Slot.EndMinute) }

// Warning flags a condition worth surfacing while generating suggestions.
type Warning struct {
	Kind    string    `json:"kind"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// WarningFullDay marks a day skipped because it is at capacity.
const WarningFullDay = "full_day"

// Meta describes the analysis window that produced a result.
type Meta struct {
	From            time.Time `json:"from"`
	DaysAnalyzed    int       `json:"days_analyzed"`
	RequiredMinutes int       `json:"required_minutes"`
}

// Result is the full scorer output. An empty Suggestions list is a valid
// outcome meaning no opening was found, not a failure.
type Result struct {
	Suggestions []Suggestion `json:"suggestions"`
	Recommended *Suggestion  `json:"recommended,omitempty"`
	Warnings    []Warning    `json:"warnings,omitempty"`
	Insights    []Insight    `json:"insights,omitempty"`
	Meta        Meta         `json:"meta"`
}

// Scorer generates ranked scheduling suggestions. The zero value is not
// usable; construct with NewScorer.
type Scorer struct {
	// DaysToAnalyze is the forward search window, starting tomorrow.
	DaysToAnalyze int
	// MaxSuggestions truncates the ranked output.
	MaxSuggestions int
	// MaxJobsPerDay is the day capacity used for workload checks while the
	// job has no assigned technician.
	MaxJobsPerDay int
	// Now supplies the reference clock, overridable in tests.
	Now func() time.Time
}

// NewScorer returns a scorer with production defaults.
func NewScorer() Scorer {
	return Scorer{
		DaysToAnalyze:  DefaultDaysToAnalyze,
		MaxSuggestions: DefaultMaxSuggestions,
		MaxJobsPerDay:  4,
		Now:            time.Now,
	}
}

// Generate scores every open slot over the analysis window and returns them
// ranked best-first. Calling Generate twice with identical inputs yields
// identical output.
func (sc Scorer) Generate(job model.Job, all []model.Job, prefs model.SchedulingPreferences, cust *model.CustomerPreference) Result {
	required := job.Duration(prefs.DefaultJobDurationMinutes)
	if required <= 0 {
		required = 120
	}
	from := calendar.StartOfDay(sc.Now()).AddDate(0, 0, 1)

	res := Result{Meta: Meta{From: from, DaysAnalyzed: sc.DaysToAnalyze, RequiredMinutes: required}}
	var week weekLoad

	for i := 0; i < sc.DaysToAnalyze; i++ {
		day := from.AddDate(0, 0, i)
		if _, ok := prefs.WorkingHours.ForDate(day); !ok {
			continue
		}

		load := sc.workloadFor(day, all, prefs)
		if i < warningHorizonDays {
			week.observe(load)
		}
		if load.AtCapacity() {
			if i < warningHorizonDays {
				res.Warnings = append(res.Warnings, Warning{
					Kind:    WarningFullDay,
					Date:    day,
					Message: fmt.Sprintf("%s %s is fully booked (%d jobs)", day.Weekday(), day.Format("Jan 2"), load.JobCount),
				})
			}
			continue
		}

		open := slots.Find(day, all, prefs, required)
		if len(open) == 0 {
			continue
		}
		nearby := proximity.Find(job, all, day)
		for _, slot := range open {
			res.Suggestions = append(res.Suggestions, sc.scoreSlot(day, i, slot, load, nearby, cust))
		}
	}

	sort.SliceStable(res.Suggestions, func(i, k int) bool {
		return res.Suggestions[i].Score > res.Suggestions[k].Score
	})
	if len(res.Suggestions) > sc.MaxSuggestions {
		res.Suggestions = res.Suggestions[:sc.MaxSuggestions]
	}
	if len(res.Suggestions) > 0 {
		res.Suggestions[0].Recommended = true
		top := res.Suggestions[0]
		res.Recommended = &top
	}

	res.Insights = buildInsights(job, all, week)
	return res
}

// scoreSlot applies the additive adjustments to one candidate window.
func (sc Scorer) scoreSlot(day time.Time, dayIndex int, slot slots.Slot, load Workload, nearby []proximity.NearbyJob, cust *model.CustomerPreference) Suggestion {
	score := baseScore
	var reasons []string

	if slot.Kind == slots.KindEmptyDay {
		score += emptyDayBonus
		reasons = append(reasons, "fully open day")
	}
	if load.Light() {
		score += lightDayBonus
		reasons = append(reasons, fmt.Sprintf("light schedule that day (%d booked)", load.JobCount))
	}
	if len(nearby) > 0 {
		closest := nearby[0].DistanceMiles
		switch {
		case closest < veryCloseMiles:
			score += veryCloseBonus
			reasons = append(reasons, fmt.Sprintf("another job only %.1f miles away", closest))
		case closest < closeMiles:
			score += closeBonus
			reasons = append(reasons, fmt.Sprintf("another job %.1f miles away", closest))
		}
	}
	if match := MatchPreferences(cust, slot.StartMinute, day); match.Positive() {
		score += match.Score - neutralScore
		reasons = append(reasons, match.Reasons...)
	}
	if dayIndex < soonDayCount {
		score += soonBonus
		reasons = append(reasons, "available soon")
	}
	if slot.StartMinute < noonMinute {
		score += morningBonus
		reasons = append(reasons, "morning start")
	}

	kept := nearby
	if len(kept) > maxNearbyPerDay {
		kept = kept[:maxNearbyPerDay]
	}
	return Suggestion{
		Date:     day,
		Slot:     slot,
		Score:    score,
		Reasons:  reasons,
		Workload: load,
		Nearby:   kept,
	}
}

func (sc Scorer) workloadFor(day time.Time, all []model.Job, prefs model.SchedulingPreferences) Workload {
	load := Workload{Date: day, MaxJobs: sc.MaxJobsPerDay}
	for _, j := range model.BookedOn(all, day) {
		load.JobCount++
		load.BookedMinutes += j.Duration(prefs.DefaultJobDurationMinutes)
	}
	return load
}
