package cli

import (
	"fmt"

	"github.com/rileyhilliard/ncli/internal/render"
	"github.com/spf13/cobra"
)

var hostsTable bool

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List hosts with their services",
	Long: `List every host with its own state and its services grouped beneath it.

Services whose host has no record in the snapshot are listed last, under
"(no host record)".

Examples:
  ncli hosts
  ncli hosts --table   # one row per host with its worst service state`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHosts(cmd, hostsTable)
	},
}

func init() {
	hostsCmd.Flags().BoolVar(&hostsTable, "table", false, "one table row per host instead of grouped services")
	hostsCmd.Flags().BoolVar(&machineMode, "json", false, "output as JSON")
	rootCmd.AddCommand(hostsCmd)
}

// hostsResult is the --json payload of ncli hosts.
type hostsResult struct {
	Hosts   []hostJSON    `json:"hosts"`
	Orphans []serviceJSON `json:"orphans"`
	Skipped []string      `json:"skipped,omitempty"`
}

func runHosts(cmd *cobra.Command, table bool) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	hosts := s.model.Hosts()
	out := cmd.OutOrStdout()

	if machineMode {
		result := hostsResult{
			Hosts:   make([]hostJSON, len(hosts)),
			Orphans: toServicesJSON(s.model.Orphans()),
			Skipped: skippedJSON(s.model),
		}
		for i, h := range hosts {
			result.Hosts[i] = toHostJSON(h)
		}
		return WriteJSONSuccess(out, result)
	}

	if table {
		if len(hosts) == 0 {
			return nil
		}
		if _, err := fmt.Fprintln(out, render.HostTable(hosts)); err != nil {
			return renderError(err)
		}
		return nil
	}

	r := render.New(out, s.palette)
	for _, h := range hosts {
		if err := r.HostGroup(h); err != nil {
			return renderError(err)
		}
	}
	if err := r.Orphans(s.model.Orphans()); err != nil {
		return renderError(err)
	}
	return nil
}
