package suggest

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/core/slots"
)

// 2025-01-05 is a Sunday, so analysis starts Monday 2025-01-06.
var sunday = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func fixedScorer() Scorer {
	sc := NewScorer()
	sc.Now = func() time.Time { return sunday }
	return sc
}

func prefs() model.SchedulingPreferences {
	p := model.SchedulingPreferences{}
	p.SetDefaults()
	return p
}

func booked(id string, day time.Time, hour, duration int, coords *geo.Coordinates) model.Job {
	start := day.Add(time.Duration(hour) * time.Hour)
	return model.Job{ID: id, Status: model.StatusScheduled, ScheduledStart: &start, EstimatedMinutes: duration, Coordinates: coords}
}

func TestGenerateDeterministic(t *testing.T) {
	sc := fixedScorer()
	job := model.Job{ID: "target", EstimatedMinutes: 120}
	all := []model.Job{booked("j1", monday, 10, 60, nil)}
	a := sc.Generate(job, all, prefs(), nil)
	b := sc.Generate(job, all, prefs(), nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs must yield identical output")
	}
}

func TestGenerateRecommendedUnique(t *testing.T) {
	sc := fixedScorer()
	job := model.Job{ID: "target", EstimatedMinutes: 120}
	res := sc.Generate(job, nil, prefs(), nil)
	if len(res.Suggestions) == 0 {
		t.Fatalf("expected suggestions for an empty calendar")
	}
	count := 0
	for _, s := range res.Suggestions {
		if s.Recommended {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("exactly one suggestion must be recommended, got %d", count)
	}
	if !res.Suggestions[0].Recommended {
		t.Fatalf("the top suggestion must carry the flag")
	}
	for _, s := range res.Suggestions[1:] {
		if s.Score > res.Suggestions[0].Score {
			t.Fatalf("recommended suggestion must have the maximum score")
		}
	}
	if res.Recommended == nil || res.Recommended.Score != res.Suggestions[0].Score {
		t.Fatalf("result.Recommended must mirror the top suggestion")
	}
}

func TestGenerateTiesPreferEarlierDay(t *testing.T) {
	sc := fixedScorer()
	sc.DaysToAnalyze = 14
	job := model.Job{ID: "target", EstimatedMinutes: 120}
	res := sc.Generate(job, nil, prefs(), nil)
	for i := 1; i < len(res.Suggestions); i++ {
		prev, cur := res.Suggestions[i-1], res.Suggestions[i]
		if prev.Score == cur.Score && cur.Date.Before(prev.Date) {
			t.Fatalf("stable sort must keep earlier days first on ties")
		}
	}
}

func TestGenerateTruncatesToMax(t *testing.T) {
	sc := fixedScorer()
	job := model.Job{ID: "target", EstimatedMinutes: 60}
	res := sc.Generate(job, nil, prefs(), nil)
	if len(res.Suggestions) > sc.MaxSuggestions {
		t.Fatalf("output must be truncated to %d, got %d", sc.MaxSuggestions, len(res.Suggestions))
	}
}

func TestGenerateFullDayWarning(t *testing.T) {
	sc := fixedScorer()
	sc.MaxJobsPerDay = 2
	job := model.Job{ID: "target", EstimatedMinutes: 60}
	all := []model.Job{
		booked("j1", monday, 8, 60, nil),
		booked("j2", monday, 13, 60, nil),
	}
	res := sc.Generate(job, all, prefs(), nil)
	for _, s := range res.Suggestions {
		if s.Date.Equal(monday) {
			t.Fatalf("a full day must be skipped entirely")
		}
	}
	found := false
	for _, w := range res.Warnings {
		if w.Kind == WarningFullDay && strings.Contains(w.Message, "Monday") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a full_day warning naming Monday, got %+v", res.Warnings)
	}
}

func TestGenerateEmptyResultIsValid(t *testing.T) {
	sc := fixedScorer()
	p := prefs()
	for day, h := range p.WorkingHours {
		h.Enabled = false
		p.WorkingHours[day] = h
	}
	res := sc.Generate(model.Job{ID: "target"}, nil, p, nil)
	if len(res.Suggestions) != 0 || res.Recommended != nil {
		t.Fatalf("no working days must yield an empty, non-error result")
	}
}

func TestGenerateProximityBonus(t *testing.T) {
	sc := fixedScorer()
	here := &geo.Coordinates{Lat: 39.70, Lon: -104.99}
	nearby := &geo.Coordinates{Lat: 39.72, Lon: -104.99} // ~1.4 miles
	job := model.Job{ID: "target", EstimatedMinutes: 60, Coordinates: here}

	plain := sc.Generate(job, nil, prefs(), nil)
	withNeighbor := sc.Generate(job, []model.Job{booked("n", monday, 9, 60, nearby)}, prefs(), nil)

	var plainMonday, neighborMonday *Suggestion
	for i := range plain.Suggestions {
		if plain.Suggestions[i].Date.Equal(monday) {
			plainMonday = &plain.Suggestions[i]
			break
		}
	}
	for i := range withNeighbor.Suggestions {
		if withNeighbor.Suggestions[i].Date.Equal(monday) {
			neighborMonday = &withNeighbor.Suggestions[i]
			break
		}
	}
	if plainMonday == nil || neighborMonday == nil {
		t.Fatalf("expected Monday suggestions in both runs")
	}
	// The neighbor costs the empty-day and light-day deltas nothing (one
	// booking keeps the day light) but adds the close-proximity bonus.
	if neighborMonday.Score <= plainMonday.Score {
		t.Fatalf("proximity should raise the score: %d vs %d", neighborMonday.Score, plainMonday.Score)
	}
	if len(neighborMonday.Nearby) == 0 {
		t.Fatalf("nearby jobs should be attached to the suggestion")
	}
}

func TestGenerateMorningAndSoonBonuses(t *testing.T) {
	sc := fixedScorer()
	job := model.Job{ID: "target", EstimatedMinutes: 60}
	res := sc.Generate(job, nil, prefs(), nil)
	if len(res.Suggestions) == 0 {
		t.Fatalf("expected suggestions")
	}
	top := res.Suggestions[0]
	// Monday's empty day starts at 08:00 within the first three days:
	// 50 base + 5 empty + 10 light + 10 soon + 5 morning.
	if top.Score != 80 {
		t.Fatalf("expected top score 80, got %d (%v)", top.Score, top.Reasons)
	}
	if top.Slot.Kind != slots.KindEmptyDay {
		t.Fatalf("expected the empty day slot, got %s", top.Slot.Kind)
	}
}

func TestMatchPreferences(t *testing.T) {
	day := monday // a Monday
	cases := []struct {
		name  string
		pref  *model.CustomerPreference
		start int
		want  int
	}{
		{"nil is neutral", nil, 480, 50},
		{"morning hit", &model.CustomerPreference{TimeOfDay: model.TimeMorning}, 540, 70},
		{"morning miss", &model.CustomerPreference{TimeOfDay: model.TimeMorning}, 780, 50},
		{"afternoon hit", &model.CustomerPreference{TimeOfDay: model.TimeAfternoon}, 780, 70},
		{"evening hit", &model.CustomerPreference{TimeOfDay: model.TimeEvening}, 1050, 70},
		{"flexible", &model.CustomerPreference{TimeOfDay: model.TimeFlexible}, 480, 60},
		{"weekday hit", &model.CustomerPreference{Days: model.DaysWeekdays}, 480, 65},
		{"weekend miss", &model.CustomerPreference{Days: model.DaysWeekends}, 480, 50},
		{"any day", &model.CustomerPreference{Days: model.DaysAny}, 480, 55},
		{"combined", &model.CustomerPreference{TimeOfDay: model.TimeMorning, Days: model.DaysWeekdays}, 540, 85},
	}
	for _, c := range cases {
		got := MatchPreferences(c.pref, c.start, day)
		if got.Score != c.want {
			t.Errorf("%s: score %d, want %d", c.name, got.Score, c.want)
		}
	}
}

func TestGenerateCustomerPreferenceDelta(t *testing.T) {
	sc := fixedScorer()
	job := model.Job{ID: "target", EstimatedMinutes: 60}
	pref := &model.CustomerPreference{TimeOfDay: model.TimeMorning, Days: model.DaysWeekdays}
	res := sc.Generate(job, nil, prefs(), pref)
	if len(res.Suggestions) == 0 {
		t.Fatalf("expected suggestions")
	}
	// 80 from the base bonuses plus 35 preference delta.
	if res.Suggestions[0].Score != 115 {
		t.Fatalf("expected 115, got %d (%v)", res.Suggestions[0].Score, res.Suggestions[0].Reasons)
	}
	joined := strings.Join(res.Suggestions[0].Reasons, "; ")
	if !strings.Contains(joined, "morning window") {
		t.Fatalf("preference reasons should be appended: %q", joined)
	}
}

func TestClusterInsight(t *testing.T) {
	here := &geo.Coordinates{Lat: 39.70, Lon: -104.99}
	near := &geo.Coordinates{Lat: 39.74, Lon: -104.99}
	far := &geo.Coordinates{Lat: 40.50, Lon: -104.99}
	job := model.Job{ID: "target", Coordinates: here}
	all := []model.Job{
		{ID: "p1", Status: model.StatusPendingSchedule, Coordinates: near},
		{ID: "p2", Status: model.StatusPendingSchedule, Coordinates: far},
		{ID: "s1", Status: model.StatusScheduled, Coordinates: near},
	}
	in := clusterInsight(job, all)
	if in == nil {
		t.Fatalf("expected a cluster insight")
	}
	if !strings.Contains(in.Message, "p1") || strings.Contains(in.Message, "p2") {
		t.Fatalf("unexpected message %q", in.Message)
	}
}

func TestImbalanceInsight(t *testing.T) {
	sc := fixedScorer()
	sc.MaxJobsPerDay = 2
	job := model.Job{ID: "target", EstimatedMinutes: 60}
	all := []model.Job{
		booked("j1", monday, 8, 60, nil),
		booked("j2", monday, 13, 60, nil),
	}
	res := sc.Generate(job, all, prefs(), nil)
	found := false
	for _, in := range res.Insights {
		if in.Kind == InsightWorkloadImbalance {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a workload imbalance insight, got %+v", res.Insights)
	}
}
