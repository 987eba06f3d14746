package doctor

import (
	"fmt"

	"github.com/rileyhilliard/ncli/internal/config"
)

// NewConfigChecks returns the CONFIG checks for an explicit --config path,
// or for the searched-for file when explicit is empty.
func NewConfigChecks(explicit string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: explicit},
		&ConfigSchemaCheck{ConfigPath: explicit},
	}
}

// ConfigFileCheck reports which config file is in use. Having none is
// only a warning since flags and NCLI_* variables can stand in for it.
type ConfigFileCheck struct {
	ConfigPath string
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", err),
			Suggestion: "Check the --config path and its permissions",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found; using defaults",
			Suggestion: "Run 'ncli init' to save the status file location",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config file: " + path,
	}
}

// ConfigSchemaCheck verifies that the config file loads and validates.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return "CONFIG" }

func (c *ConfigSchemaCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil || path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file to validate",
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Failed to load config",
			Suggestion: "Check the YAML syntax in " + path,
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %v", errMessage(err)),
			Suggestion: "Fix the values in " + path,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Schema valid",
	}
}
