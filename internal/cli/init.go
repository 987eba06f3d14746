package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ncli/internal/config"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/rileyhilliard/ncli/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Where to write .ncli.yaml; "" means the current directory
	StatusFile     string // Pre-specified status snapshot path
	Format         string // Pre-specified snapshot format
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
}

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .ncli.yaml config in the current directory",
	Long: `Create a .ncli.yaml config file.

On a terminal you are asked for the status file, its format and the color
mode. Otherwise, or when --status-file is given, the flags are used as-is.

Examples:
  ncli init
  ncli init -f /usr/local/nagios/var/status.dat
  ncli init -f status.json --format json --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			StatusFile:     statusFileFlag,
			Format:         formatFlag,
			Overwrite:      initForce,
			NonInteractive: statusFileFlag != "" || !isTerminal(os.Stdin),
		})
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

// Init creates a new .ncli.yaml configuration file.
func Init(out io.Writer, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.StatusFile = opts.StatusFile
	if opts.Format != "" {
		cfg.Format = opts.Format
	}

	if opts.NonInteractive {
		if strings.TrimSpace(cfg.StatusFile) == "" {
			return errors.New(errors.ErrConfig,
				"A status file is required in non-interactive mode",
				"Provide --status-file or run interactively")
		}
	} else if err := runInitForm(cfg); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(configPath, cfg, true); err != nil {
		return err
	}

	check := lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render(ui.SymbolSuccess)
	fmt.Fprintf(out, "%s Created %s\n", check, configPath)
	if _, err := os.Stat(cfg.StatusFile); err != nil {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Fprintln(out, muted.Render(fmt.Sprintf("  %s doesn't exist yet; reports will fail until it does.", cfg.StatusFile)))
	}
	return nil
}

// runInitForm asks for the config values, filling cfg in place.
func runInitForm(cfg *config.Config) error {
	formats := make([]huh.Option[string], 0, len(snapshot.Formats()))
	for _, f := range snapshot.Formats() {
		formats = append(formats, huh.NewOption(string(f), string(f)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Status file").
				Description("The daemon's status.dat, or a JSON/YAML export of it").
				Placeholder("/usr/local/nagios/var/status.dat").
				Value(&cfg.StatusFile).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("status file is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Format").
				Description("auto picks by file extension").
				Options(formats...).
				Value(&cfg.Format),
			huh.NewSelect[string]().
				Title("Color").
				Options(
					huh.NewOption("auto (only on a terminal)", "auto"),
					huh.NewOption("always", "always"),
					huh.NewOption("never", "never"),
				).
				Value(&cfg.Output.Color),
			huh.NewConfirm().
				Title("Fail on malformed records?").
				Description("Otherwise they are skipped with a warning").
				Value(&cfg.Strict),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or pass --status-file")
	}
	cfg.StatusFile = strings.TrimSpace(cfg.StatusFile)
	return nil
}
