package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	coremetrics "github.com/fieldcrew/dispatch/core/metrics"
	"github.com/fieldcrew/dispatch/core/model"
	"github.com/fieldcrew/dispatch/core/suggest"
	"github.com/fieldcrew/dispatch/infra/logger"
)

var (
	suggestTimeOfDay string
	suggestDays      string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <job-id>",
	Short: "Rank open slots for an unscheduled job",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTimeOfDay, "time-of-day", "", "customer preference: morning, afternoon, evening or flexible")
	suggestCmd.Flags().StringVar(&suggestDays, "days", "", "customer preference: weekdays, weekends or any")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
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

	sc := suggest.NewScorer()
	sc.DaysToAnalyze = cfg.Suggestions.DaysToAnalyze
	sc.MaxSuggestions = cfg.Suggestions.MaxSuggestions
	sc.MaxJobsPerDay = cfg.Suggestions.MaxJobsPerDay

	var cust *model.CustomerPreference
	if suggestTimeOfDay != "" || suggestDays != "" {
		cust = &model.CustomerPreference{
			TimeOfDay: model.TimeBucket(suggestTimeOfDay),
			Days:      model.DayBucket(suggestDays),
		}
	}

	res := sc.Generate(job, snap.Jobs, snap.Preferences, cust)

	sink, err := buildSink(cfg)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	if rec, ok := sink.(coremetrics.SuggestionRecorder); ok {
		top := 0
		if res.Recommended != nil {
			top = res.Recommended.Score
		}
		ev := coremetrics.SuggestionEvent{
			JobID:       job.ID,
			Suggestions: len(res.Suggestions),
			TopScore:    top,
			Warnings:    len(res.Warnings),
			Time:        time.Now(),
		}
		if err := rec.RecordSuggestions(ev); err != nil {
			logger.New("suggest-command").Errorf("metrics error: %v", err)
		}
	}

	return printJSON(cmd, res)
}
