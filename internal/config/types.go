package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents a .ncli.yaml file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// StatusFile is the snapshot to read, usually the daemon's status.dat.
	StatusFile string `yaml:"status_file" mapstructure:"status_file"`

	// Format of StatusFile: "auto", "statusdat", "json", or "yaml".
	Format string `yaml:"format" mapstructure:"format"`

	// Strict fails the command on the first malformed record instead of
	// skipping it with a warning.
	Strict bool `yaml:"strict" mapstructure:"strict"`

	Output  OutputConfig `yaml:"output" mapstructure:"output"`
	Filters FilterConfig `yaml:"filters" mapstructure:"filters"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// FilterConfig holds default service filters; command flags override them.
type FilterConfig struct {
	// States limits listings to these severities (OK, WARN, CRIT, UNK).
	States []string `yaml:"states,omitempty" mapstructure:"states"`

	// OlderThan is a duration token such as "2h" for stale-check listings.
	OlderThan string `yaml:"older_than,omitempty" mapstructure:"older_than"`

	// Problems hides OK services.
	Problems bool `yaml:"problems,omitempty" mapstructure:"problems"`
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Format:  "auto",
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
