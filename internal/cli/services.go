package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/ncli/internal/config"
	"github.com/rileyhilliard/ncli/internal/duration"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/model"
	"github.com/rileyhilliard/ncli/internal/render"
	"github.com/rileyhilliard/ncli/internal/status"
	"github.com/rileyhilliard/ncli/internal/ui"
	"github.com/spf13/cobra"
)

// ServicesOptions holds the service filter flags.
type ServicesOptions struct {
	States        string // comma-separated severities
	Hosts         string // comma-separated host names
	Problems      bool
	Unhandled     bool
	OlderThan     string // duration token
	ChangedWithin string // duration token
	Long          bool
	Summary       bool // append a per-state count line
}

var servicesOpts ServicesOptions

var servicesCmd = &cobra.Command{
	Use:     "services",
	Aliases: []string{"svc"},
	Short:   "List services with their state",
	Long: `List every service in the snapshot, one color-coded summary line each:
host, service, plugin output, state, ACK when acknowledged, MUTED when
notifications are off.

Duration flags take a number with an optional unit: s, m, h, d or w
(bare numbers are seconds).

Examples:
  ncli services --problems --unhandled
  ncli services --state WARN,CRIT --host web01,web02
  ncli services --older-than 2h      # checks that have gone stale
  ncli services --changed-within 15m # recent flaps
  ncli services --long               # every field of every service
  ncli services --problems --summary # problem list plus per-state counts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServices(cmd, servicesOpts)
	},
}

func init() {
	f := servicesCmd.Flags()
	f.StringVar(&servicesOpts.States, "state", "", "only these states, comma-separated (OK,WARN,CRIT,UNK)")
	f.StringVar(&servicesOpts.Hosts, "host", "", "only services on these hosts, comma-separated")
	f.BoolVar(&servicesOpts.Problems, "problems", false, "hide OK services")
	f.BoolVar(&servicesOpts.Unhandled, "unhandled", false, "hide acknowledged services and those in downtime")
	f.StringVar(&servicesOpts.OlderThan, "older-than", "", "only services last checked at least this long ago (e.g. 2h)")
	f.StringVar(&servicesOpts.ChangedWithin, "changed-within", "", "only services whose state changed within this long (e.g. 15m)")
	f.BoolVarP(&servicesOpts.Long, "long", "l", false, "print every field instead of one line per service")
	f.BoolVar(&servicesOpts.Summary, "summary", false, "end with a count of the listed services per state")
	f.BoolVar(&machineMode, "json", false, "output as JSON")

	rootCmd.AddCommand(servicesCmd)
}

// servicesResult is the --json payload of ncli services.
type servicesResult struct {
	Services []serviceJSON `json:"services"`
	Skipped  []string      `json:"skipped,omitempty"`
}

func runServices(cmd *cobra.Command, opts ServicesOptions) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	filter, err := buildFilter(opts, s.cfg.Filters)
	if err != nil {
		return err
	}
	services := filter.Apply(s.model.Services())
	s.log.Debug("%d of %d services match", len(services), len(s.model.Services()))

	out := cmd.OutOrStdout()
	if machineMode {
		return WriteJSONSuccess(out, servicesResult{
			Services: toServicesJSON(services),
			Skipped:  skippedJSON(s.model),
		})
	}

	r := render.New(out, s.palette)
	if opts.Long {
		for _, svc := range services {
			if err := r.Verbose(svc); err != nil {
				return renderError(err)
			}
		}
	} else if err := r.Summaries(services); err != nil {
		return renderError(err)
	}

	if opts.Summary {
		states := make([]status.Severity, len(services))
		for i, svc := range services {
			states[i] = svc.State()
		}
		tally := ui.NewTally(states...)
		tally.Skipped = len(s.model.Errors())
		if _, err := fmt.Fprintln(out, s.palette.Tally(tally, "service", "services")); err != nil {
			return renderError(err)
		}
	}
	return nil
}

// buildFilter merges flag values over the config's default filters.
func buildFilter(opts ServicesOptions, defaults config.FilterConfig) (model.Filter, error) {
	filter := model.Filter{
		Hosts:     splitList(opts.Hosts),
		Problems:  opts.Problems || defaults.Problems,
		Unhandled: opts.Unhandled,
	}

	stateNames := splitList(opts.States)
	if len(stateNames) == 0 {
		stateNames = defaults.States
	}
	for _, name := range stateNames {
		sev, err := status.ParseSeverity(name)
		if err != nil {
			return model.Filter{}, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("'%s' isn't a state", name),
				"Use OK, WARN, CRIT or UNK.")
		}
		filter.States = append(filter.States, sev)
	}

	olderThan := opts.OlderThan
	if olderThan == "" {
		olderThan = defaults.OlderThan
	}
	var err error
	if filter.OlderThan, err = parseDurationFlag("older-than", olderThan); err != nil {
		return model.Filter{}, err
	}
	if filter.ChangedWithin, err = parseDurationFlag("changed-within", opts.ChangedWithin); err != nil {
		return model.Filter{}, err
	}
	return filter, nil
}

// parseDurationFlag parses a duration token. Empty means no threshold.
func parseDurationFlag(name, token string) (time.Duration, error) {
	if token == "" {
		return 0, nil
	}
	d, ok := duration.ParseDuration(token)
	if !ok {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid --%s duration", token, name),
			"Try something like 90s, 15m, 2h, 1d or 1w.")
	}
	return d, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func renderError(err error) error {
	return errors.WrapWithCode(err, errors.ErrRender,
		"Failed to write the report",
		"Check that the output stream is still open.")
}
