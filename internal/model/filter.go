package model

import (
	"time"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/status"
)

// Filter selects services for display. Zero-valued fields match
// everything.
type Filter struct {
	// States keeps only services in one of these severities.
	States []status.Severity
	// Hosts keeps only services on one of these hosts.
	Hosts []string
	// Problems drops OK services.
	Problems bool
	// Unhandled drops acknowledged services and those in downtime.
	Unhandled bool
	// OlderThan keeps services whose last check is at least this old.
	OlderThan time.Duration
	// ChangedWithin keeps services whose state changed at most this long ago.
	ChangedWithin time.Duration
	// Now anchors the relative-time thresholds. Zero means time.Now().
	Now time.Time
}

// Apply returns the services that pass every criterion, in input order.
// Services with an unparseable timestamp never pass a time criterion.
func (f Filter) Apply(services []*entity.Service) []*entity.Service {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	states := make(map[status.Severity]bool, len(f.States))
	for _, s := range f.States {
		states[s] = true
	}
	hosts := make(map[string]bool, len(f.Hosts))
	for _, h := range f.Hosts {
		hosts[h] = true
	}

	var out []*entity.Service
	for _, svc := range services {
		if len(states) > 0 && !states[svc.State()] {
			continue
		}
		if len(hosts) > 0 && !hosts[svc.HostName()] {
			continue
		}
		if f.Problems && svc.State() == status.OK {
			continue
		}
		if f.Unhandled && (svc.Acknowledged() || svc.InDowntime()) {
			continue
		}
		if f.OlderThan > 0 {
			checked, err := svc.LastCheckTime()
			if err != nil || now.Sub(checked) < f.OlderThan {
				continue
			}
		}
		if f.ChangedWithin > 0 {
			changed, err := svc.LastStateChangeTime()
			if err != nil || now.Sub(changed) > f.ChangedWithin {
				continue
			}
		}
		out = append(out, svc)
	}
	return out
}
