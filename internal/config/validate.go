package config

import (
	"fmt"

	"github.com/rileyhilliard/ncli/internal/duration"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/rileyhilliard/ncli/internal/status"
)

// Validate checks cfg and returns a structured CONFIG error for the first
// problem found.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ncli only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade ncli or lower the version field.")
	}

	if _, err := snapshot.ParseFormat(cfg.Format); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("format '%s' isn't valid", cfg.Format),
			"Use 'auto', 'statusdat', 'json', or 'yaml'.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .ncli.yaml.")
	}

	if err := validateFilters(cfg.Filters); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'filters' section in your .ncli.yaml.")
	}

	return nil
}

func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}

func validateFilters(f FilterConfig) error {
	for _, s := range f.States {
		if _, err := status.ParseSeverity(s); err != nil {
			return fmt.Errorf("filters.states: %w", err)
		}
	}
	if f.OlderThan != "" {
		if _, ok := duration.Parse(f.OlderThan); !ok {
			return fmt.Errorf("filters.older_than '%s' isn't a duration - use a number with an optional w/d/h/m/s unit, like 2h", f.OlderThan)
		}
	}
	return nil
}
