// Package snapshot loads scheduling state from JSON or YAML files. Snapshots
// are the offline exchange format between the booking system and the engine:
// business preferences, the technician roster and the job list.
package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fieldcrew/dispatch/core/model"
)

// Snapshot is the full scheduling state loaded from a file.
type Snapshot struct {
	Preferences model.SchedulingPreferences `json:"preferences"`
	Technicians []model.Technician          `json:"technicians" validate:"dive"`
	Jobs        []model.Job                 `json:"jobs" validate:"dive"`
}

var validate = validator.New()

// Load reads and validates a snapshot file. The format is chosen by the file
// extension. Missing preference values are filled with the business defaults
// and jobs without a status start as pending_schedule.
func Load(path string) (*Snapshot, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported snapshot format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := k.UnmarshalWithConf("", &snap, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	snap.Preferences.SetDefaults()
	for i := range snap.Jobs {
		if snap.Jobs[i].Status == "" {
			snap.Jobs[i].Status = model.StatusPendingSchedule
		}
	}
	if err := validate.Struct(&snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	if err := snap.Preferences.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// Technician finds a roster entry by id.
func (s *Snapshot) Technician(id string) (model.Technician, bool) {
	for _, t := range s.Technicians {
		if t.ID == id {
			return t, true
		}
	}
	return model.Technician{}, false
}

// Job finds a job by id.
func (s *Snapshot) Job(id string) (model.Job, bool) {
	for _, j := range s.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return model.Job{}, false
}
