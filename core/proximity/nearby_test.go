package proximity

import (
	"testing"
	"time"

	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
)

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// Points along a line of longitude near Denver; one degree of latitude is
// roughly 69 miles.
func at(lat float64) *geo.Coordinates {
	return &geo.Coordinates{Lat: lat, Lon: -104.99}
}

func booked(id string, coords *geo.Coordinates) model.Job {
	start := monday.Add(9 * time.Hour)
	return model.Job{ID: id, Status: model.StatusScheduled, ScheduledStart: &start, EstimatedMinutes: 60, Coordinates: coords}
}

func TestFindRadiusAndOrder(t *testing.T) {
	target := model.Job{ID: "target", Coordinates: at(39.70)}
	jobs := []model.Job{
		booked("far", at(40.10)),    // ~28 mi, outside radius
		booked("close", at(39.72)),  // ~1.4 mi
		booked("medium", at(39.85)), // ~10 mi
	}
	got := Find(target, jobs, monday)
	if len(got) != 2 {
		t.Fatalf("expected 2 nearby jobs, got %d", len(got))
	}
	if got[0].Job.ID != "close" || got[1].Job.ID != "medium" {
		t.Fatalf("wrong order: %s, %s", got[0].Job.ID, got[1].Job.ID)
	}
	if got[0].TravelMinutes <= 0 {
		t.Errorf("travel minutes should be positive")
	}
}

func TestFindSkipsTargetAndMissingCoordinates(t *testing.T) {
	target := booked("target", at(39.70))
	jobs := []model.Job{
		target,
		booked("nocoords", nil),
		booked("ok", at(39.71)),
	}
	got := Find(target, jobs, monday)
	if len(got) != 1 || got[0].Job.ID != "ok" {
		t.Fatalf("expected only 'ok', got %+v", got)
	}
}

func TestFindNoTargetCoordinates(t *testing.T) {
	target := model.Job{ID: "target"}
	if got := Find(target, []model.Job{booked("x", at(39.7))}, monday); got != nil {
		t.Fatalf("expected nil when the target has no location")
	}
}

func TestFindOtherDaysExcluded(t *testing.T) {
	target := model.Job{ID: "target", Coordinates: at(39.70)}
	tuesday := monday.AddDate(0, 0, 1)
	start := tuesday.Add(9 * time.Hour)
	jobs := []model.Job{{ID: "tue", Status: model.StatusScheduled, ScheduledStart: &start, Coordinates: at(39.71)}}
	if got := Find(target, jobs, monday); len(got) != 0 {
		t.Fatalf("bookings on other days must be excluded, got %+v", got)
	}
}
