package suggest

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
)

// Insight is an informational, non-blocking observation about the schedule.
type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	// InsightCluster points out unscheduled jobs near the target job.
	InsightCluster = "cluster"
	// InsightWorkloadImbalance flags uneven daily load over the next week.
	InsightWorkloadImbalance = "workload_imbalance"
)

const clusterRadiusMiles = 10.0
const clusterMaxNames = 3

// weekLoad accumulates per-day load over the warning horizon.
type weekLoad struct {
	counts []float64
	light  int
	full   int
}

func (w *weekLoad) observe(load Workload) {
	w.counts = append(w.counts, float64(load.JobCount))
	if load.AtCapacity() {
		w.full++
	} else if load.Light() {
		w.light++
	}
}

func buildInsights(job model.Job, all []model.Job, week weekLoad) []Insight {
	var out []Insight
	if c := clusterInsight(job, all); c != nil {
		out = append(out, *c)
	}
	if w := imbalanceInsight(week); w != nil {
		out = append(out, *w)
	}
	return out
}

// clusterInsight reports other unscheduled jobs close enough to the target to
// be worth booking together.
func clusterInsight(job model.Job, all []model.Job) *Insight {
	if job.Coordinates == nil {
		return nil
	}
	var names []string
	count := 0
	for _, other := range all {
		if other.ID == job.ID || other.Coordinates == nil {
			continue
		}
		if other.Status != model.StatusPendingSchedule && other.Status != model.StatusSlotsOffered {
			continue
		}
		if geo.DistanceMiles(*job.Coordinates, *other.Coordinates) >= clusterRadiusMiles {
			continue
		}
		count++
		if len(names) < clusterMaxNames {
			names = append(names, other.ID)
		}
	}
	if count == 0 {
		return nil
	}
	return &Insight{
		Kind: InsightCluster,
		Message: fmt.Sprintf("%d unscheduled job(s) within %.0f miles (%s) could be booked on the same day",
			count, clusterRadiusMiles, strings.Join(names, ", ")),
	}
}

// imbalanceInsight fires when the coming week has both light and fully booked
// days.
func imbalanceInsight(week weekLoad) *Insight {
	if week.light == 0 || week.full == 0 {
		return nil
	}
	mean := stat.Mean(week.counts, nil)
	return &Insight{
		Kind: InsightWorkloadImbalance,
		Message: fmt.Sprintf("workload over the next week is uneven: %d light day(s) and %d fully booked day(s), averaging %.1f jobs per day",
			week.light, week.full, mean),
	}
}
