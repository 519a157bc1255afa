package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeBadgerTuning decodes the free-form snapshot.badger.extra map
// into a BadgerTuning struct, the same map[string]any-to-typed-struct
// pattern the teacher's factories.go uses for its own backend-specific
// store options.
func DecodeBadgerTuning(cfg *Config) (BadgerTuning, error) {
	var tuning BadgerTuning
	if len(cfg.Snapshot.Badger.Extra) == 0 {
		return tuning, nil
	}
	if err := mapstructure.Decode(cfg.Snapshot.Badger.Extra, &tuning); err != nil {
		return tuning, fmt.Errorf("failed to decode badger snapshot tuning: %w", err)
	}
	return tuning, nil
}
