package entity

import (
	"sort"

	"github.com/rileyhilliard/ncli/internal/status"
)

// Host is a monitored machine and the services attached to it.
type Host struct {
	StatusEntity
	services map[string]*Service
}

// NewHost builds a Host from one raw hoststatus record.
func NewHost(name string, attrs Attributes) (*Host, error) {
	base, err := newStatusEntity(name, attrs)
	if err != nil {
		return nil, err
	}
	return &Host{StatusEntity: base, services: make(map[string]*Service)}, nil
}

// AttachService files svc under its name. A service already attached under
// that name is replaced: feeds resend updated records for the same check
// and the newest one wins.
//
// Concurrent attaches to the same Host must be serialized by the caller.
func (h *Host) AttachService(svc *Service) {
	h.services[svc.Name()] = svc
}

// Service returns the attached service with the given name.
func (h *Host) Service(name string) (*Service, bool) {
	svc, ok := h.services[name]
	return svc, ok
}

// Services returns the attached services sorted by name.
func (h *Host) Services() []*Service {
	out := make([]*Service, 0, len(h.services))
	for _, svc := range h.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ServiceCount returns the number of attached services.
func (h *Host) ServiceCount() int {
	return len(h.services)
}

// WorstState is the highest severity across the host and its services.
func (h *Host) WorstState() status.Severity {
	worst := h.State()
	for _, svc := range h.services {
		if svc.State() > worst {
			worst = svc.State()
		}
	}
	return worst
}
