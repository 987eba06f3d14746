// Package render turns entities into report text: one summary line per
// service, a full field dump per entity, or a host-grouped listing.
//
// Column layout of a summary line (tab separated):
//
//	host (min 25)  service (max 35, min 35)  output (max 35, min 35)  state  ACK  MUTED
//
// Widths are applied truncate-then-pad: truncation is the only step that
// shortens, padding only lengthens.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/ui"
)

const (
	HostWidth   = 25
	NameWidth   = 35
	OutputWidth = 35
	LabelWidth  = 25
)

// Renderer writes report lines to w, colored through palette.
type Renderer struct {
	w       io.Writer
	palette ui.Palette
}

// New creates a Renderer.
func New(w io.Writer, palette ui.Palette) *Renderer {
	return &Renderer{w: w, palette: palette}
}

// SummaryLine formats one service without color or trailing newline.
func SummaryLine(svc *entity.Service) string {
	ack := " "
	if svc.Acknowledged() {
		ack = "ACK"
	}
	muted := "MUTED"
	if svc.NotificationsEnabled() {
		muted = " "
	}

	return strings.Join([]string{
		ui.PadRight(svc.HostName(), HostWidth),
		ui.PadRight(ui.Truncate(svc.Name(), NameWidth), NameWidth),
		ui.PadRight(ui.Truncate(svc.PluginOutput(), OutputWidth), OutputWidth),
		svc.State().String(),
		ack,
		muted,
	}, "\t")
}

// Summary writes the summary line for svc, wrapped in its severity color.
func (r *Renderer) Summary(svc *entity.Service) error {
	_, err := fmt.Fprintln(r.w, r.palette.Severity(svc.State(), SummaryLine(svc)))
	return err
}

// Summaries writes one summary line per service, in order.
func (r *Renderer) Summaries(services []*entity.Service) error {
	for _, svc := range services {
		if err := r.Summary(svc); err != nil {
			return err
		}
	}
	return nil
}

// VerboseLines formats every field of e as "name:" padded to 25, a tab,
// then the value. No color, no separator.
func VerboseLines(e entity.Entity) []string {
	fields := e.Fields()
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = ui.PadRight(f.Name+":", LabelWidth) + "\t" + f.Value
	}
	return lines
}

// Verbose writes the full field dump of e, each line in e's severity
// color, followed by one blank line.
func (r *Renderer) Verbose(e entity.Entity) error {
	for _, line := range VerboseLines(e) {
		if _, err := fmt.Fprintln(r.w, r.palette.Severity(e.State(), line)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// HostGroup writes a header line for h followed by the summary line of
// each attached service, sorted by name.
func (r *Renderer) HostGroup(h *entity.Host) error {
	header := r.palette.Loud(ui.PadRight(h.Name(), HostWidth)) + "\t" +
		r.palette.Severity(h.State(), h.State().String()) + "\t" +
		r.palette.Dim(servicesLabel(h.ServiceCount()))
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}
	return r.Summaries(h.Services())
}

// Orphans writes services whose host record never arrived under a dim
// header. Nothing is written for an empty list.
func (r *Renderer) Orphans(services []*entity.Service) error {
	if len(services) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.w, r.palette.Dim("(no host record)")); err != nil {
		return err
	}
	return r.Summaries(services)
}

func servicesLabel(n int) string {
	if n == 1 {
		return "1 service"
	}
	return strconv.Itoa(n) + " services"
}

// HostTable renders hosts as a printed table: name, state, service count,
// worst state across its services, and truncated plugin output.
func HostTable(hosts []*entity.Host) string {
	columns := []ui.TableColumn{
		{Title: "Host", Width: HostWidth},
		{Title: "State", Width: 6},
		{Title: "Services", Width: 8},
		{Title: "Worst", Width: 6},
		{Title: "Output", Width: OutputWidth},
	}

	rows := make([][]string, len(hosts))
	for i, h := range hosts {
		rows[i] = []string{
			h.Name(),
			h.State().String(),
			strconv.Itoa(h.ServiceCount()),
			h.WorstState().String(),
			ui.Truncate(h.PluginOutput(), OutputWidth),
		}
	}
	return ui.RenderSimpleTable(columns, rows)
}
