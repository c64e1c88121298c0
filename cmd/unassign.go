package cmd

import (
	"github.com/spf13/cobra"
)

var unassignCmd = &cobra.Command{
	Use:   "unassign <job-id>",
	Short: "Revert a booked job to the unscheduled pool",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnassign,
}

func init() {
	rootCmd.AddCommand(unassignCmd)
}

func runUnassign(cmd *cobra.Command, args []string) error {
	m, st, _, err := newManager(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)
	if err := m.UnassignJob(cmd.Context(), args[0]); err != nil {
		return err
	}
	job, err := st.Job(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, job)
}
