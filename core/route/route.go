// Package route orders a technician's daily stops for short travel using a
// greedy nearest-neighbor pass. The result is a heuristic, not an optimum;
// exhaustive search can beat it on small inputs and that trade-off is
// accepted.
package route

import (
	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
)

// Order sequences the jobs of one day starting from the home base. At each
// step the geographically closest remaining job is visited next. Jobs without
// coordinates are treated as adjacent and picked up on first encounter, which
// also guarantees termination. Zero or one job is returned unchanged.
func Order(jobs []model.Job, home *geo.Coordinates) []model.Job {
	if len(jobs) <= 1 {
		return jobs
	}

	remaining := make([]model.Job, len(jobs))
	copy(remaining, jobs)
	ordered := make([]model.Job, 0, len(jobs))
	current := home

	for len(remaining) > 0 {
		next := 0
		if current != nil {
			best := -1.0
			for i, j := range remaining {
				if j.Coordinates == nil {
					next = i
					break
				}
				d := geo.DistanceMiles(*current, *j.Coordinates)
				if best < 0 || d < best {
					best = d
					next = i
				}
			}
		}
		picked := remaining[next]
		ordered = append(ordered, picked)
		remaining = append(remaining[:next], remaining[next+1:]...)
		if picked.Coordinates != nil {
			current = picked.Coordinates
		}
	}
	return ordered
}

// TotalMiles sums the leg distances of an ordered route starting from home.
// Legs touching a job without coordinates contribute nothing.
func TotalMiles(jobs []model.Job, home *geo.Coordinates) float64 {
	total := 0.0
	current := home
	for _, j := range jobs {
		if j.Coordinates == nil {
			continue
		}
		if current != nil {
			total += geo.DistanceMiles(*current, *j.Coordinates)
		}
		current = j.Coordinates
	}
	return total
}
