package suggest

import (
	"time"

	"github.com/fieldcrew/dispatch/core/model"
)

// Match is the outcome of comparing a candidate window against a customer's
// stated preferences. A score above the neutral 50 counts as a positive match.
type Match struct {
	Score   int
	Reasons []string
}

// Positive reports whether the candidate actually matched a preference.
func (m Match) Positive() bool { return m.Score > neutralScore }

const neutralScore = 50

// Time-of-day buckets, in hours.
const (
	morningStartHour   = 8
	afternoonStartHour = 12
	eveningStartHour   = 17
)

// MatchPreferences scores how well a slot starting at startMinute on day fits
// the customer's preferences. A nil preference is a neutral match.
func MatchPreferences(pref *model.CustomerPreference, startMinute int, day time.Time) Match {
	m := Match{Score: neutralScore}
	if pref == nil {
		return m
	}

	hour := startMinute / 60
	switch pref.TimeOfDay {
	case model.TimeMorning:
		if hour >= morningStartHour && hour < afternoonStartHour {
			m.Score += 20
			m.Reasons = append(m.Reasons, "matches preferred morning window")
		}
	case model.TimeAfternoon:
		if hour >= afternoonStartHour && hour < eveningStartHour {
			m.Score += 20
			m.Reasons = append(m.Reasons, "matches preferred afternoon window")
		}
	case model.TimeEvening:
		if hour >= eveningStartHour {
			m.Score += 20
			m.Reasons = append(m.Reasons, "matches preferred evening window")
		}
	case model.TimeFlexible:
		m.Score += 10
		m.Reasons = append(m.Reasons, "customer is flexible on time of day")
	}

	weekday := day.Weekday()
	isWeekend := weekday == time.Saturday || weekday == time.Sunday
	switch pref.Days {
	case model.DaysWeekdays:
		if !isWeekend {
			m.Score += 15
			m.Reasons = append(m.Reasons, "falls on a preferred weekday")
		}
	case model.DaysWeekends:
		if isWeekend {
			m.Score += 15
			m.Reasons = append(m.Reasons, "falls on a preferred weekend day")
		}
	case model.DaysAny:
		m.Score += 5
		m.Reasons = append(m.Reasons, "any day works for the customer")
	}
	return m
}
