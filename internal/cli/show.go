package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/model"
	"github.com/rileyhilliard/ncli/internal/render"
	"github.com/rileyhilliard/ncli/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [host [service]]",
	Short: "Print every field of a host or service",
	Long: `Print every field of one host or service.

With only a host, the host is printed followed by each of its services.
With no arguments on a terminal, pick from a filterable list.

Examples:
  ncli show web01
  ncli show web01 HTTP
  ncli show          # interactive picker`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.Flags().BoolVar(&machineMode, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	var targets []entity.Entity
	switch len(args) {
	case 0:
		picked, err := pickTarget(cmd, s.model)
		if err != nil || picked == nil {
			return err
		}
		targets = []entity.Entity{picked}
	case 1:
		targets, err = hostTargets(s.model, args[0])
		if err != nil {
			return err
		}
	default:
		svc, ok := s.model.Service(args[0], args[1])
		if !ok {
			return errors.New(errors.ErrModel,
				fmt.Sprintf("Service not found: %s on %s", args[1], args[0]),
				fmt.Sprintf("Run 'ncli services --host %s' to list its services.", args[0]))
		}
		targets = []entity.Entity{svc}
	}

	out := cmd.OutOrStdout()
	if machineMode {
		result := make([]entityJSON, len(targets))
		for i, e := range targets {
			result[i] = toEntityJSON(e)
		}
		return WriteJSONSuccess(out, result)
	}

	r := render.New(out, s.palette)
	for _, e := range targets {
		if err := r.Verbose(e); err != nil {
			return renderError(err)
		}
	}
	return nil
}

// hostTargets returns the host followed by its services. A host known only
// through orphaned services yields just those services.
func hostTargets(m *model.Model, name string) ([]entity.Entity, error) {
	if h, ok := m.Host(name); ok {
		targets := []entity.Entity{h}
		for _, svc := range h.Services() {
			targets = append(targets, svc)
		}
		return targets, nil
	}

	var targets []entity.Entity
	for _, svc := range m.Orphans() {
		if svc.HostName() == name {
			targets = append(targets, svc)
		}
	}
	if len(targets) == 0 {
		return nil, errors.New(errors.ErrModel,
			"Host not found: "+name,
			"Run 'ncli hosts' to list the hosts in the snapshot.")
	}
	return targets, nil
}

// pickTarget runs the interactive picker over every host and service.
// It returns nil when the user cancels.
func pickTarget(cmd *cobra.Command, m *model.Model) (entity.Entity, error) {
	if machineMode || !isTerminal(os.Stdin) || !isTerminal(cmd.OutOrStdout()) {
		return nil, errors.New(errors.ErrExec,
			"Nothing to show",
			"Name a host (and optionally a service): ncli show <host> [service]")
	}

	picked, err := ui.PickEntity(pickItems(m))
	if err != nil {
		return nil, err
	}
	if picked == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
		return nil, nil
	}
	return picked.Entity, nil
}

// pickItems lists each host followed by its services, then the orphans.
func pickItems(m *model.Model) []ui.PickItem {
	var items []ui.PickItem
	for _, h := range m.Hosts() {
		items = append(items, ui.PickItem{Entity: h})
		for _, svc := range h.Services() {
			items = append(items, ui.PickItem{Entity: svc, Host: h.Name()})
		}
	}
	for _, svc := range m.Orphans() {
		items = append(items, ui.PickItem{Entity: svc, Host: svc.HostName()})
	}
	return items
}
