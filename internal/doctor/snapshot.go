package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/logger"
	"github.com/rileyhilliard/ncli/internal/model"
	"github.com/rileyhilliard/ncli/internal/snapshot"
)

// DefaultStaleAfter is how old the newest check may be before the
// snapshot counts as stale.
const DefaultStaleAfter = 15 * time.Minute

// Inspection reads a snapshot once and shares it between the SNAPSHOT
// checks.
type Inspection struct {
	ctx    context.Context
	path   string
	format snapshot.Format

	once  sync.Once
	model *model.Model
	snap  *snapshot.Snapshot
	err   error
}

// NewInspection prepares to read the snapshot at path.
func NewInspection(ctx context.Context, path string, format snapshot.Format) *Inspection {
	return &Inspection{ctx: ctx, path: path, format: format}
}

func (in *Inspection) load() (*snapshot.Snapshot, *model.Model, error) {
	in.once.Do(func() {
		in.snap, in.err = snapshot.Load(in.ctx, in.path, in.format)
		if in.err != nil {
			return
		}
		in.model, in.err = model.Build(in.snap, model.WithLogger(logger.Noop()))
	})
	return in.snap, in.model, in.err
}

// NewSnapshotChecks returns the SNAPSHOT checks. now anchors the
// freshness check; nil means time.Now.
func NewSnapshotChecks(in *Inspection, staleAfter time.Duration, now func() time.Time) []Check {
	if now == nil {
		now = time.Now
	}
	return []Check{
		&StatusFileCheck{Path: in.path},
		&SnapshotParseCheck{In: in},
		&RecordsCheck{In: in},
		&FreshnessCheck{In: in, StaleAfter: staleAfter, Now: now},
	}
}

// StatusFileCheck verifies the status file is configured and is a
// readable regular file.
type StatusFileCheck struct {
	Path string
}

func (c *StatusFileCheck) Name() string     { return "status_file" }
func (c *StatusFileCheck) Category() string { return "SNAPSHOT" }

func (c *StatusFileCheck) Run() CheckResult {
	if c.Path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No status file configured",
			Suggestion: "Pass --status-file or run 'ncli init'",
		}
	}

	info, err := os.Stat(c.Path)
	switch {
	case os.IsNotExist(err):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Status file not found: " + c.Path,
			Suggestion: "Look for status_file in the daemon's main config (e.g. nagios.cfg)",
		}
	case err != nil:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot access %s: %v", c.Path, err),
			Suggestion: "Check file permissions",
		}
	case info.IsDir():
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    c.Path + " is a directory",
			Suggestion: "Point --status-file at the status.dat inside it",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Status file: %s (%s, written %s)", c.Path, humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime())),
	}
}

// SnapshotParseCheck verifies the snapshot parses in its format.
type SnapshotParseCheck struct {
	In *Inspection
}

func (c *SnapshotParseCheck) Name() string     { return "snapshot_parse" }
func (c *SnapshotParseCheck) Category() string { return "SNAPSHOT" }

func (c *SnapshotParseCheck) Run() CheckResult {
	snap, _, err := c.In.load()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errMessage(err),
			Suggestion: "Pass --format if the file extension doesn't match its contents",
		}
	}

	hosts, services := snap.Count()
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d host record%s, %d service record%s", hosts, pluralize(hosts), services, pluralize(services)),
	}
}

// RecordsCheck reports records that would be skipped for missing fields
// or unknown state codes.
type RecordsCheck struct {
	In *Inspection
}

func (c *RecordsCheck) Name() string     { return "records" }
func (c *RecordsCheck) Category() string { return "SNAPSHOT" }

func (c *RecordsCheck) Run() CheckResult {
	_, m, err := c.In.load()
	if err != nil {
		return skipped(c.Name())
	}

	errs := m.Errors()
	if len(errs) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Every record is complete",
		}
	}

	return CheckResult{
		Name:       c.Name(),
		Status:     StatusWarn,
		Message:    fmt.Sprintf("%d malformed record%s will be skipped; first: %v", len(errs), pluralize(len(errs)), errs[0]),
		Suggestion: "Reports still work; --strict would refuse this snapshot",
	}
}

// FreshnessCheck warns when the newest check result in the snapshot is
// older than StaleAfter, which usually means the daemon stopped writing.
type FreshnessCheck struct {
	In         *Inspection
	StaleAfter time.Duration
	Now        func() time.Time
}

func (c *FreshnessCheck) Name() string     { return "freshness" }
func (c *FreshnessCheck) Category() string { return "SNAPSHOT" }

func (c *FreshnessCheck) Run() CheckResult {
	_, m, err := c.In.load()
	if err != nil {
		return skipped(c.Name())
	}

	newest, ok := newestCheck(m)
	if !ok {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "No readable last_check timestamps",
		}
	}

	now := c.Now()
	if now.Sub(newest) > c.StaleAfter {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Newest check ran " + humanize.RelTime(newest, now, "ago", "from now"),
			Suggestion: "Is the monitoring daemon running? The snapshot stops changing when it stops",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Newest check ran " + humanize.RelTime(newest, now, "ago", "from now"),
	}
}

// newestCheck finds the latest last_check across hosts and services.
func newestCheck(m *model.Model) (time.Time, bool) {
	var newest time.Time
	consider := func(t time.Time, err error) {
		if err == nil && t.After(newest) {
			newest = t
		}
	}
	for _, h := range m.Hosts() {
		consider(h.LastCheckTime())
	}
	for _, svc := range m.Services() {
		consider(svc.LastCheckTime())
	}
	return newest, !newest.IsZero()
}

func skipped(name string) CheckResult {
	return CheckResult{
		Name:    name,
		Status:  StatusFail,
		Message: "Skipped: the snapshot could not be read",
	}
}

// errMessage returns the headline of a structured error, or the first
// line of any other.
func errMessage(err error) string {
	var cliErr *errors.Error
	if stderrors.As(err, &cliErr) {
		return cliErr.Message
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
