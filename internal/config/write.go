package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/ncli/internal/errors"
	"gopkg.in/yaml.v3"
)

const header = "# ncli configuration\n# See 'ncli --help' for the commands that read it.\n\n"

// Write saves cfg as YAML at path, creating parent directories. An
// existing file is only replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config already exists at "+path,
				"Use --force to overwrite it.")
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create %s", filepath.Dir(path)),
			"Check directory permissions.")
	}

	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config to "+path,
			"Check directory permissions.")
	}
	return nil
}
