package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ncli/internal/config"
	"github.com/rileyhilliard/ncli/internal/doctor"
	"github.com/rileyhilliard/ncli/internal/duration"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/rileyhilliard/ncli/internal/ui"
	"github.com/spf13/cobra"
)

var doctorStaleAfter string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config and status snapshot for problems",
	Long: `Run diagnostic checks over the config and the status snapshot it points at:
whether the file exists and parses, how many records would be skipped,
and whether the newest check result is recent enough to trust.

Examples:
  ncli doctor
  ncli doctor --stale-after 1h
  ncli doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd)
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorStaleAfter, "stale-after", "", "warn when the newest check is older than this (default 15m)")
	doctorCmd.Flags().BoolVar(&machineMode, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand(cmd *cobra.Command) error {
	staleAfter := doctor.DefaultStaleAfter
	if doctorStaleAfter != "" {
		d, ok := duration.ParseDuration(doctorStaleAfter)
		if !ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid --stale-after duration", doctorStaleAfter),
				"Try something like 15m, 1h or 1d.")
		}
		staleAfter = d
	}

	checks := collectChecks(cmd, staleAfter)
	results := doctor.RunAll(checks)

	if machineMode {
		return WriteJSONSuccess(cmd.OutOrStdout(), doctorOutput(checks, results))
	}
	return outputDoctorText(cmd.OutOrStdout(), checks, results)
}

// collectChecks builds the CONFIG and SNAPSHOT checks. A config that fails
// to load is reported by the CONFIG checks; the snapshot checks then fall
// back to the flags and defaults.
func collectChecks(cmd *cobra.Command, staleAfter time.Duration) []doctor.Check {
	cfg, _, err := loadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
		if statusFileFlag != "" {
			cfg.StatusFile = statusFileFlag
		}
		if formatFlag != "" {
			cfg.Format = formatFlag
		}
	}

	format, err := snapshot.ParseFormat(cfg.Format)
	if err != nil {
		format = snapshot.FormatAuto
	}

	checks := doctor.NewConfigChecks(cfgFile)
	in := doctor.NewInspection(cmd.Context(), cfg.StatusFile, format)
	return append(checks, doctor.NewSnapshotChecks(in, staleAfter, nil)...)
}

func doctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}

	output := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.Categories(checks) {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(out io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("ncli Diagnostic Report"))
	fmt.Fprintln(out)

	grouped := make(map[string][]int)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range doctor.Categories(checks) {
		fmt.Fprintln(out, headerStyle.Render(category))
		for _, idx := range grouped[category] {
			renderCheckResult(out, results[idx])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Fprintln(out)
	return nil
}

// renderCheckResult renders a single check result.
func renderCheckResult(out io.Writer, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolSuccess
		style = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case doctor.StatusWarn:
		symbol = ui.SymbolWarn
		style = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		symbol = ui.SymbolFail
		style = lipgloss.NewStyle().Foreground(ui.ColorError)
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", muted.Render(line))
		}
	}
}
