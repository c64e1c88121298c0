// Package proximity finds bookings geographically close to a target job.
// Proximity is a scoring signal only, never a hard constraint.
package proximity

import (
	"sort"
	"time"

	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
)

// RadiusMiles bounds how far away a booking may be to count as nearby.
const RadiusMiles = 15.0

// NearbyJob pairs a booking with its distance from the target job.
type NearbyJob struct {
	Job           model.Job `json:"job"`
	DistanceMiles float64   `json:"distance_miles"`
	TravelMinutes int       `json:"travel_minutes"`
}

// Find returns the bookings on the given date within RadiusMiles of the
// target job, sorted by ascending distance. Jobs without coordinates are
// skipped, as is the target itself.
func Find(target model.Job, all []model.Job, date time.Time) []NearbyJob {
	if target.Coordinates == nil {
		return nil
	}
	var out []NearbyJob
	for _, j := range all {
		if j.ID == target.ID || j.Coordinates == nil || !j.OnDay(date) {
			continue
		}
		d := geo.DistanceMiles(*target.Coordinates, *j.Coordinates)
		if d >= RadiusMiles {
			continue
		}
		out = append(out, NearbyJob{
			Job:           j,
			DistanceMiles: d,
			TravelMinutes: geo.TravelMinutes(d),
		})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].DistanceMiles < out[k].DistanceMiles })
	return out
}
