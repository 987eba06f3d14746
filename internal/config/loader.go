package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project-local config file name.
	ConfigFileName = ".ncli.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/ncli"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. NCLI_STATUS_FILE.
	EnvPrefix = "NCLI"
)

// Load reads config from path. An empty path loads defaults plus
// environment overrides only.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Run 'ncli init' to create one, or fix the --config path.")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML.")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.StatusFile = expandHome(cfg.StatusFile)
	return cfg, nil
}

// newViper sets up defaults and NCLI_* environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", CurrentConfigVersion)
	v.SetDefault("status_file", "")
	v.SetDefault("format", "auto")
	v.SetDefault("strict", false)
	v.SetDefault("output.color", "auto")
	v.SetDefault("filters.states", []string{})
	v.SetDefault("filters.older_than", "")
	v.SetDefault("filters.problems", false)
	return v
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ncli.yaml in current directory
// 3. .ncli.yaml in parent directories (stops at git root or home)
// 4. ~/.config/ncli/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUpward(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUpward looks for ConfigFileName in dir and its parents, stopping
// after a git root, before home, or at the filesystem root.
func findUpward(dir, home string) string {
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			return ""
		}
		dir = parent
	}
}

// LoadOrDefault finds and loads the config, or returns defaults when no
// file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}
