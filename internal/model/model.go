// Package model assembles a snapshot's records into hosts with their
// services attached.
//
// Build runs in two phases. Entities are constructed on a worker pool
// (construction only reads its own record), then services are attached to
// hosts serially, so no Host's service map is ever written concurrently.
// Once Build returns the Model is read-only and safe to share.
package model

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/logger"
	"github.com/rileyhilliard/ncli/internal/snapshot"
)

// RecordError is a record that could not become an entity. Err is the
// construction error unchanged: an *entity.MissingFieldError or a
// *status.UnknownStatusCodeError.
type RecordError struct {
	Kind snapshot.Kind
	Name string
	Host string
	Err  error
}

func (e *RecordError) Error() string {
	if e.Kind == snapshot.KindService {
		return fmt.Sprintf("service %q on host %q: %s", e.Name, e.Host, e.Reason())
	}
	return fmt.Sprintf("host %q: %s", e.Name, e.Reason())
}

// Reason describes what is wrong with the record without repeating its
// name.
func (e *RecordError) Reason() string {
	var missing *entity.MissingFieldError
	if errors.As(e.Err, &missing) {
		return fmt.Sprintf("missing required field %q", missing.Field)
	}
	return e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Model is the built, attached view of one snapshot.
type Model struct {
	hosts    map[string]*entity.Host
	services []*entity.Service
	orphans  []*entity.Service
	errs     []*RecordError
}

type options struct {
	strict  bool
	workers int
	log     logger.Logger
}

// Option configures Build.
type Option func(*options)

// WithStrict makes the first bad record (in snapshot order) fail the whole
// build instead of being skipped.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithWorkers bounds construction parallelism. Values below 1 mean one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets where skipped-record warnings go. The default is
// logger.Default().
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

type built struct {
	host *entity.Host
	svc  *entity.Service
	err  error
}

// Build constructs and attaches every record in snap. Bad records are
// skipped and reported through Errors and the logger; with WithStrict the
// first one is returned as a *RecordError instead.
func Build(snap *snapshot.Snapshot, opts ...Option) (*Model, error) {
	o := options{log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	results := construct(snap.Records, o.workers)

	m := &Model{hosts: make(map[string]*entity.Host)}
	for i, res := range results {
		if res.err == nil {
			continue
		}
		rec := snap.Records[i]
		recErr := &RecordError{Kind: rec.Kind, Name: rec.Name, Host: rec.Host, Err: res.err}
		if o.strict {
			return nil, recErr
		}
		o.log.Warn("skipping %v", recErr)
		m.errs = append(m.errs, recErr)
	}

	for _, res := range results {
		if res.host != nil {
			if _, dup := m.hosts[res.host.Name()]; dup {
				o.log.Debug("host %q appears twice in snapshot, keeping the later record", res.host.Name())
			}
			m.hosts[res.host.Name()] = res.host
		}
	}

	orphans := make(map[[2]string]*entity.Service)
	for _, res := range results {
		svc := res.svc
		if svc == nil {
			continue
		}

		h, ok := m.hosts[svc.HostName()]
		if !ok {
			orphans[[2]string{svc.HostName(), svc.Name()}] = svc
			continue
		}
		h.AttachService(svc)
		svc.AttachHost(h)
	}

	for _, h := range m.hosts {
		m.services = append(m.services, h.Services()...)
	}
	for _, svc := range orphans {
		m.orphans = append(m.orphans, svc)
	}
	m.services = append(m.services, m.orphans...)

	sortServices(m.services)
	sortServices(m.orphans)

	o.log.Debug("built %d hosts, %d services (%d orphaned, %d skipped)",
		len(m.hosts), len(m.services), len(m.orphans), len(m.errs))
	return m, nil
}

// construct builds one entity per record on a bounded pool of workers.
// Results are indexed like records so later phases stay deterministic.
func construct(records []snapshot.Record, workers int) []built {
	results := make([]built, len(records))
	if len(records) == 0 {
		return results
	}
	if workers > len(records) {
		workers = len(records)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = constructOne(records[i])
			}
		}()
	}

	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func constructOne(rec snapshot.Record) built {
	switch rec.Kind {
	case snapshot.KindService:
		svc, err := entity.NewService(rec.Name, rec.Attributes, rec.Host)
		return built{svc: svc, err: err}
	default:
		h, err := entity.NewHost(rec.Name, rec.Attributes)
		return built{host: h, err: err}
	}
}

func sortServices(services []*entity.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		a, b := services[i], services[j]
		if a.HostName() != b.HostName() {
			return a.HostName() < b.HostName()
		}
		return a.Name() < b.Name()
	})
}

// Hosts returns every host sorted by name.
func (m *Model) Hosts() []*entity.Host {
	out := make([]*entity.Host, 0, len(m.hosts))
	for _, h := range m.hosts {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Host looks up a host by name.
func (m *Model) Host(name string) (*entity.Host, bool) {
	h, ok := m.hosts[name]
	return h, ok
}

// Service finds a service by owning host and name, orphans included.
func (m *Model) Service(host, name string) (*entity.Service, bool) {
	if h, ok := m.hosts[host]; ok {
		return h.Service(name)
	}
	for _, svc := range m.orphans {
		if svc.HostName() == host && svc.Name() == name {
			return svc, true
		}
	}
	return nil, false
}

// Services returns every service, orphans included, sorted by host then
// service name. A service sent twice appears once, as its later record.
func (m *Model) Services() []*entity.Service {
	return append([]*entity.Service(nil), m.services...)
}

// Orphans returns services whose host has no record in the snapshot.
func (m *Model) Orphans() []*entity.Service {
	return append([]*entity.Service(nil), m.orphans...)
}

// Errors returns the records skipped during Build, in snapshot order.
func (m *Model) Errors() []*RecordError {
	return append([]*RecordError(nil), m.errs...)
}
