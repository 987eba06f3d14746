package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ncli/internal/config"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/logger"
	"github.com/rileyhilliard/ncli/internal/model"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/rileyhilliard/ncli/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile        string
	statusFileFlag string
	formatFlag     string
	noColor        bool
	strictFlag     bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "ncli",
	Short: "Read monitoring status snapshots from the terminal",
	Long: `ncli reads a monitoring daemon's status snapshot (a Nagios-style status.dat,
or a JSON/YAML export of one) and prints color-coded host and service reports.

It never talks to the daemon and never changes monitoring state.

Examples:
  ncli services --problems
  ncli services --state CRIT --older-than 2h
  ncli hosts --table
  ncli show web01 HTTP`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .ncli.yaml, searched upward)")
	pf.StringVarP(&statusFileFlag, "status-file", "f", "", "status snapshot to read")
	pf.StringVar(&formatFlag, "format", "", "snapshot format: auto, statusdat, json, yaml")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.BoolVar(&strictFlag, "strict", false, "fail on the first malformed record instead of skipping it")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}

	if isUnknownCommandError(err) {
		err = unknownCommandError(err)
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprint(os.Stderr, formatError(err))
	}
	stop()
	os.Exit(1)
}

// formatError renders err for the terminal, keeping structured errors'
// message/cause/suggestion layout.
func formatError(err error) string {
	if cliErr, ok := err.(*errors.Error); ok {
		return cliErr.Error()
	}
	return "✗ " + err.Error() + "\n"
}

// isUnknownCommandError reports whether err is cobra's unknown command or
// unknown flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// message, or returns "" when there is none.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

func unknownCommandError(err error) error {
	name := extractUnknownCommand(err)
	if name == "" {
		return errors.WrapWithCode(err, errors.ErrExec, "Unrecognized flag", "Run 'ncli --help' for the flags each command takes.")
	}
	return errors.New(errors.ErrExec,
		fmt.Sprintf("Unknown command: %s", name),
		"Run 'ncli --help' to list commands.")
}

// session is the loaded state report commands work from.
type session struct {
	cfg     *config.Config
	model   *model.Model
	palette ui.Palette
	log     logger.Logger
}

// loadConfig finds, loads, and validates config, then applies the global
// flag overrides.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, "", err
	}

	if statusFileFlag != "" {
		cfg.StatusFile = statusFileFlag
	}
	if formatFlag != "" {
		cfg.Format = formatFlag
	}
	if strictFlag {
		cfg.Strict = true
	}
	if noColor {
		cfg.Output.Color = "never"
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loadSession reads the configured snapshot and builds the model. Skipped
// records are warned about on the command's stderr.
func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewWriterLogger(cmd.ErrOrStderr(), "", verbose)
	logger.SetDefault(log)
	if path != "" {
		log.Debug("using config %s", path)
	}

	snap, err := loadSnapshot(cmd, cfg)
	if err != nil {
		return nil, err
	}
	hosts, services := snap.Count()
	log.Debug("read %d host and %d service records from %s", hosts, services, snap.Source)

	m, err := model.Build(snap, model.WithStrict(cfg.Strict))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrModel,
			"Snapshot contains a malformed record",
			"Fix the record upstream, or drop --strict to skip it with a warning.")
	}

	return &session{
		cfg:     cfg,
		model:   m,
		palette: ui.NewPalette(colorEnabled(cfg.Output.Color, cmd.OutOrStdout())),
		log:     log,
	}, nil
}

// loadSnapshot reads the snapshot cfg points at.
func loadSnapshot(cmd *cobra.Command, cfg *config.Config) (*snapshot.Snapshot, error) {
	if cfg.StatusFile == "" {
		return nil, errors.New(errors.ErrConfig,
			"No status file configured",
			"Pass --status-file, set NCLI_STATUS_FILE, or run 'ncli init'.")
	}

	format, err := snapshot.ParseFormat(cfg.Format)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid snapshot format", "Use auto, statusdat, json or yaml.")
	}

	if !machineMode && isTerminal(cmd.ErrOrStderr()) {
		sp := ui.NewSpinner(cmd.ErrOrStderr(), "Reading "+filepath.Base(cfg.StatusFile))
		sp.Start()
		defer sp.Stop()
	}
	return snapshot.Load(cmd.Context(), cfg.StatusFile, format)
}

// colorEnabled resolves a color mode against the output. "auto" colors
// only terminals, and honors NO_COLOR.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(out)
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
