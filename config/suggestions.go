package config

import "fmt"

// SuggestionsConfig tunes the suggestion scorer.
type SuggestionsConfig struct {
	// DaysToAnalyze is the length of the scheduling horizon, starting tomorrow.
	DaysToAnalyze int `json:"days_to_analyze"`
	// MaxSuggestions caps the number of returned suggestions.
	MaxSuggestions int `json:"max_suggestions"`
	// MaxJobsPerDay marks a day full once this many jobs are booked on it.
	MaxJobsPerDay int `json:"max_jobs_per_day"`
}

// SetDefaults applies sane defaults.
func (c *SuggestionsConfig) SetDefaults() {
	if c.DaysToAnalyze == 0 {
		c.DaysToAnalyze = 14
	}
	if c.MaxSuggestions == 0 {
		c.MaxSuggestions = 10
	}
	if c.MaxJobsPerDay == 0 {
		c.MaxJobsPerDay = 4
	}
}

// Validate checks the values are usable.
func (c SuggestionsConfig) Validate() error {
	if c.DaysToAnalyze < 1 {
		return fmt.Errorf("days_to_analyze must be positive")
	}
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("max_suggestions must be positive")
	}
	if c.MaxJobsPerDay < 1 {
		return fmt.Errorf("max_jobs_per_day must be positive")
	}
	return nil
}
