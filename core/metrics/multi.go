package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignment forwards the events to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAssignment(events []AssignmentEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordAssignment(events); err != nil {
			return err
		}
	}
	return nil
}

// RecordSuggestions forwards suggestion runs to sinks that support them.
func (m *MultiSink) RecordSuggestions(ev SuggestionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SuggestionRecorder); ok {
			if err := rec.RecordSuggestions(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordConflict forwards conflict events to sinks that support them.
func (m *MultiSink) RecordConflict(ev ConflictEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ConflictRecorder); ok {
			if err := rec.RecordConflict(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
