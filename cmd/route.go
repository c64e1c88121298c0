package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldcrew/dispatch/core/geo"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/core/route"
)

var routeDate string

var routeCmd = &cobra.Command{
	Use:   "route <technician-id>",
	Short: "Order a technician's day to minimise driving",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().StringVarP(&routeDate, "date", "d", "", "day to route, natural language or YYYY-MM-DD (default tomorrow)")
	rootCmd.AddCommand(routeCmd)
}

// routeStop is one entry of the printed route.
type routeStop struct {
	JobID         string     `json:"job_id"`
	Start         *time.Time `json:"start,omitempty"`
	DistanceMiles float64    `json:"distance_miles"`
	TravelMinutes int        `json:"travel_minutes"`
}

type routePlan struct {
	TechnicianID string      `json:"technician_id"`
	Date         string      `json:"date"`
	Stops        []routeStop `json:"stops"`
	TotalMiles   float64     `json:"total_miles"`
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadState(cfg)
	if err != nil {
		return err
	}
	tech, ok := snap.Technician(args[0])
	if !ok {
		return fmt.Errorf("technician %s not found in snapshot", args[0])
	}
	day, err := parseDay(routeDate)
	if err != nil {
		return err
	}

	var dayJobs []model.Job
	for _, j := range snap.Jobs {
		if j.TechnicianID == tech.ID && j.OnDay(day) {
			dayJobs = append(dayJobs, j)
		}
	}

	home := tech.HomeBase
	if home == nil {
		home = snap.Preferences.HomeBase
	}
	ordered := route.Order(dayJobs, home)

	plan := routePlan{
		TechnicianID: tech.ID,
		Date:         day.Format("2006-01-02"),
		Stops:        make([]routeStop, 0, len(ordered)),
		TotalMiles:   route.TotalMiles(ordered, home),
	}
	prev := home
	for _, j := range ordered {
		stop := routeStop{JobID: j.ID, Start: j.ScheduledStart}
		if prev != nil && j.Coordinates != nil {
			stop.DistanceMiles = geo.DistanceMiles(*prev, *j.Coordinates)
			stop.TravelMinutes = geo.TravelMinutes(stop.DistanceMiles)
		}
		if j.Coordinates != nil {
			prev = j.Coordinates
		}
		plan.Stops = append(plan.Stops, stop)
	}
	return printJSON(cmd, plan)
}
