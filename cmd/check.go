package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldcrew/dispatch/core/conflict"
	"github.com/fieldcrew/dispatch/core/model"
)

var (
	checkAt   string
	checkTech string
)

var checkCmd = &cobra.Command{
	Use:   "check <job-id>",
	Short: "Check a proposed start time for conflicts",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkAt, "at", "", "proposed start time, natural language or RFC 3339")
	checkCmd.Flags().StringVar(&checkTech, "technician", "", "limit spacing checks to this technician's bookings")
	rootCmd.AddCommand(checkCmd)
}

type checkReport struct {
	JobID     string              `json:"job_id"`
	Start     time.Time           `json:"start"`
	End       time.Time           `json:"end"`
	Conflicts []conflict.Conflict `json:"conflicts"`
	Blocking  bool                `json:"blocking"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkAt == "" {
		return fmt.Errorf("a start time is required, pass --at")
	}
	start, err := parseStart(checkAt)
	if err != nil {
		return err
	}
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

	var others []model.Job
	for _, j := range snap.Jobs {
		if j.ID != job.ID {
			others = append(others, j)
		}
	}
	spacing := others
	if checkTech != "" {
		spacing = nil
		for _, j := range others {
			if j.TechnicianID == checkTech {
				spacing = append(spacing, j)
			}
		}
	}

	end := start.Add(time.Duration(job.Duration(snap.Preferences.DefaultJobDurationMinutes)) * time.Minute)
	found := conflict.CheckTime(start, end, spacing, snap.Preferences)
	found = append(found, conflict.CheckResources(start, end, others, snap.Preferences)...)

	return printJSON(cmd, checkReport{
		JobID:     job.ID,
		Start:     start,
		End:       end,
		Conflicts: found,
		Blocking:  conflict.HasBlocking(found),
	})
}
