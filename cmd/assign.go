package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/fieldcrew/dispatch/core/dispatch"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/infra/logger"
	"github.com/fieldcrew/dispatch/infra/snapshot"
	"github.com/fieldcrew/dispatch/infra/store"
	"github.com/fieldcrew/dispatch/pkg/export"
)

var (
	assignAt     string
	assignDate   string
	assignFormat string
)

var assignCmd = &cobra.Command{
	Use:   "assign <job-id> <technician-id>",
	Short: "Book a job with a technician",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssign,
}

var assignAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Greedily assign every unscheduled job for one day",
	Args:  cobra.NoArgs,
	RunE:  runAssignAuto,
}

func init() {
	assignCmd.Flags().StringVar(&assignAt, "at", "", "start time, natural language or RFC 3339")
	assignAutoCmd.Flags().StringVarP(&assignDate, "date", "d", "", "day to fill, natural language or YYYY-MM-DD (default tomorrow)")
	assignAutoCmd.Flags().StringVarP(&assignFormat, "format", "f", "json", "output format: json or csv")
	assignCmd.AddCommand(assignAutoCmd)
	rootCmd.AddCommand(assignCmd)
}

// jobStore is the store surface the CLI needs: the manager's commit boundary
// plus seeding from a snapshot.
type jobStore interface {
	dispatch.JobStore
	AddJob(ctx context.Context, job model.Job) error
}

// openStore selects the job store for the run. With --db the snapshot seeds
// a SQLite database on first use and later runs pick up the committed state;
// without it, state lives in memory for the duration of the command.
func openStore(ctx context.Context, snap *snapshot.Snapshot) (jobStore, error) {
	if dbPath == "" {
		return store.NewMemoryStore(snap.Jobs...), nil
	}
	st, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	existing, err := st.Jobs(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if len(existing) > 0 {
		return st, nil
	}
	for _, j := range snap.Jobs {
		if err := st.AddJob(ctx, j); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed job %s: %w", j.ID, err)
		}
	}
	return st, nil
}

func closeStore(st dispatch.JobStore) {
	if c, ok := st.(io.Closer); ok {
		_ = c.Close()
	}
}

func newManager(ctx context.Context) (*dispatch.Manager, jobStore, *snapshot.Snapshot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	snap, err := loadState(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	sink, err := buildSink(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("metrics sink: %w", err)
	}
	st, err := openStore(ctx, snap)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := dispatch.NewManager(st, snap.Preferences, logger.New("assign-command"), sink)
	if err != nil {
		closeStore(st)
		return nil, nil, nil, err
	}
	return m, st, snap, nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	if assignAt == "" {
		return fmt.Errorf("a start time is required, pass --at")
	}
	start, err := parseStart(assignAt)
	if err != nil {
		return err
	}
	m, st, snap, err := newManager(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)
	if _, ok := snap.Technician(args[1]); !ok {
		return fmt.Errorf("technician %s not found in snapshot", args[1])
	}
	commit, err := m.AssignJob(cmd.Context(), args[0], args[1], start)
	if err != nil {
		return err
	}
	return printJSON(cmd, commit)
}

func runAssignAuto(cmd *cobra.Command, args []string) error {
	day, err := parseDay(assignDate)
	if err != nil {
		return err
	}
	m, st, snap, err := newManager(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore(st)
	res, err := m.AutoAssign(cmd.Context(), snap.Technicians, day)
	if err != nil {
		return err
	}
	switch assignFormat {
	case "csv":
		return export.WriteCSV(cmd.OutOrStdout(), res)
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), res)
	default:
		return fmt.Errorf("unknown format %q, use json or csv", assignFormat)
	}
}

// parseStart resolves a natural language or RFC 3339 start time.
func parseStart(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse start %q: %w", s, err)
	}
	return t, nil
}
