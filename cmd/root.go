// Package cmd implements the fieldcrew CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	naturaldate "github.com/tj/go-naturaldate"

	"github.com/fieldcrew/dispatch/config"
	coremetrics "github.com/fieldcrew/dispatch/core/metrics"
	"github.com/fieldcrew/dispatch/infra/snapshot"

	// Register the built-in metrics sinks.
	_ "github.com/fieldcrew/dispatch/infra/metrics"
)

var (
	cfgPath  string
	snapPath string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:   "fieldcrew",
	Short: "Scheduling and dispatch engine for field service crews",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&snapPath, "snapshot", "s", "", "scheduling state snapshot (json or yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database for durable job state (default in-memory)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file, falling back to the built-in
// defaults when the default path does not exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && cfgPath == "config.yaml" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadState reads the snapshot file named by --snapshot. Snapshot preferences
// override the configuration's scheduling section when present.
func loadState(cfg *config.Config) (*snapshot.Snapshot, error) {
	if snapPath == "" {
		return nil, fmt.Errorf("a snapshot file is required, pass --snapshot")
	}
	snap, err := snapshot.Load(snapPath)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Preferences.VehicleCount == 0 {
		snap.Preferences.VehicleCount = cfg.Scheduling.VehicleCount
	}
	return snap, nil
}

func buildSink(cfg *config.Config) (coremetrics.MetricsSink, error) {
	return coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
}

// parseDay resolves a natural language or RFC 3339 date argument.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now().AddDate(0, 0, 1), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := naturaldate.Parse(s, time.Now(), naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return t, nil
}

// printJSON writes v to the command's stdout with indentation.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
