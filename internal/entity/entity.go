// Package entity turns raw status attribute mappings into typed Host and
// Service values.
//
// Both kinds share StatusEntity, which enforces the required-field
// contract: construction walks the fields in declared order and fails on
// the first one missing, so callers never see a half-filled entity. The
// raw current_state code is classified once and dropped; every other field
// is kept verbatim.
//
// Entities are built once and only change through the attach calls
// (Host.AttachService, Service.AttachHost). They are safe to share between
// goroutines after that.
package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rileyhilliard/ncli/internal/status"
)

// Attributes is one raw record from the monitoring feed: attribute name to
// string value. Constructors read it and never modify it.
type Attributes map[string]string

// MissingFieldError reports a required attribute absent from a record.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Entity, e.Field)
}

// StatusEntity holds the fields shared by hosts and services.
type StatusEntity struct {
	name   string
	state  status.Severity
	values [numFields]string
}

func newStatusEntity(name string, attrs Attributes) (StatusEntity, error) {
	e := StatusEntity{name: name}

	for _, f := range RequiredFields() {
		v, ok := attrs[f.String()]
		if !ok {
			return StatusEntity{}, &MissingFieldError{Entity: name, Field: f.String()}
		}
		e.values[f] = v
	}

	state, err := status.Classify(e.values[CurrentState])
	if err != nil {
		return StatusEntity{}, err
	}
	e.state = state
	e.values[CurrentState] = ""

	return e, nil
}

// Name returns the host name or service description.
func (e *StatusEntity) Name() string { return e.name }

// State returns the classified current_state.
func (e *StatusEntity) State() status.Severity { return e.state }

// Value returns a required field exactly as the feed sent it. For
// CurrentState, whose raw code is not kept, it returns the severity name.
func (e *StatusEntity) Value(f Field) string {
	if f == CurrentState {
		return e.state.String()
	}
	if f < 0 || f >= numFields {
		return ""
	}
	return e.values[f]
}

func (e *StatusEntity) PluginOutput() string           { return e.values[PluginOutput] }
func (e *StatusEntity) LastCheck() string              { return e.values[LastCheck] }
func (e *StatusEntity) LastNotification() string       { return e.values[LastNotification] }
func (e *StatusEntity) LastHardState() string          { return e.values[LastHardState] }
func (e *StatusEntity) ScheduledDowntimeDepth() string { return e.values[ScheduledDowntimeDepth] }
func (e *StatusEntity) PerformanceData() string        { return e.values[PerformanceData] }
func (e *StatusEntity) LastStateChange() string        { return e.values[LastStateChange] }
func (e *StatusEntity) CurrentAttempt() string         { return e.values[CurrentAttempt] }
func (e *StatusEntity) MaxAttempts() string            { return e.values[MaxAttempts] }

// The feed's booleans are the literals "0" and "1"; only "1" is true.

// NotificationsEnabled reports notifications_enabled == "1".
func (e *StatusEntity) NotificationsEnabled() bool { return e.values[NotificationsEnabled] == "1" }

// ActiveChecksEnabled reports active_checks_enabled == "1".
func (e *StatusEntity) ActiveChecksEnabled() bool { return e.values[ActiveChecksEnabled] == "1" }

// Acknowledged reports problem_has_been_acknowledged == "1".
func (e *StatusEntity) Acknowledged() bool { return e.values[ProblemHasBeenAcknowledged] == "1" }

// InDowntime reports a scheduled_downtime_depth above zero.
func (e *StatusEntity) InDowntime() bool {
	depth, err := strconv.Atoi(e.values[ScheduledDowntimeDepth])
	return err == nil && depth > 0
}

// LastCheckTime parses last_check as unix seconds.
func (e *StatusEntity) LastCheckTime() (time.Time, error) {
	return unixField(e.values[LastCheck], LastCheck)
}

// LastStateChangeTime parses last_state_change as unix seconds.
func (e *StatusEntity) LastStateChangeTime() (time.Time, error) {
	return unixField(e.values[LastStateChange], LastStateChange)
}

func unixField(raw string, f Field) (time.Time, error) {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s is not a unix timestamp: %q", f, raw)
	}
	return time.Unix(secs, 0), nil
}

// Fields returns the name followed by every required field in declared
// order.
func (e *StatusEntity) Fields() []FieldValue {
	out := make([]FieldValue, 0, numFields+1)
	out = append(out, FieldValue{Name: "name", Value: e.name})
	return e.appendRequired(out)
}

func (e *StatusEntity) appendRequired(out []FieldValue) []FieldValue {
	for _, f := range RequiredFields() {
		out = append(out, FieldValue{Name: f.String(), Value: e.Value(f)})
	}
	return out
}

// Entity is what the renderers need from a Host or a Service.
type Entity interface {
	Name() string
	State() status.Severity
	Fields() []FieldValue
}
