package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldcrew/dispatch/core/proximity"
)

var nearbyDate string

var nearbyCmd = &cobra.Command{
	Use:   "nearby <job-id>",
	Short: "List booked jobs near a job's location on one day",
	Args:  cobra.ExactArgs(1),
	RunE:  runNearby,
}

func init() {
	nearbyCmd.Flags().StringVarP(&nearbyDate, "date", "d", "", "day to inspect, natural language or YYYY-MM-DD (default tomorrow)")
	rootCmd.AddCommand(nearbyCmd)
}

func runNearby(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := loadState(cfg)
	if err != nil {
		return err
	}
	job, ok := snap.Job(args[0])
	if !ok {
		return fmt.Errorf("job %s not found in snapshot", args[0])
	}
	day, err := parseDay(nearbyDate)
	if err != nil {
		return err
	}
	return printJSON(cmd, proximity.Find(job, snap.Jobs, day))
}
