package entity

// Field identifies one of the required attributes every host and service
// record must carry. The constant order is the declared order used for
// validation and verbose output.
type Field int

const (
	CurrentState Field = iota
	PluginOutput
	NotificationsEnabled
	LastCheck
	LastNotification
	ActiveChecksEnabled
	ProblemHasBeenAcknowledged
	LastHardState
	ScheduledDowntimeDepth
	PerformanceData
	LastStateChange
	CurrentAttempt
	MaxAttempts

	numFields
)

var fieldNames = [numFields]string{
	CurrentState:               "current_state",
	PluginOutput:               "plugin_output",
	NotificationsEnabled:       "notifications_enabled",
	LastCheck:                  "last_check",
	LastNotification:           "last_notification",
	ActiveChecksEnabled:        "active_checks_enabled",
	ProblemHasBeenAcknowledged: "problem_has_been_acknowledged",
	LastHardState:              "last_hard_state",
	ScheduledDowntimeDepth:     "scheduled_downtime_depth",
	PerformanceData:            "performance_data",
	LastStateChange:            "last_state_change",
	CurrentAttempt:             "current_attempt",
	MaxAttempts:                "max_attempts",
}

// String returns the attribute name as the feed spells it.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "invalid_field"
	}
	return fieldNames[f]
}

// RequiredFields returns every required field in declared order.
func RequiredFields() []Field {
	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// FieldValue is one (name, value) pair of an entity's verbose form.
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
