// Package testing provides record fixtures for the entity package.
package testing

import "github.com/rileyhilliard/ncli/internal/entity"

// Attrs returns a complete raw record in the given state code. Overrides
// are applied as key/value pairs, e.g. Attrs("2", "plugin_output", "DISK CRITICAL").
func Attrs(code string, overrides ...string) entity.Attributes {
	attrs := entity.Attributes{
		"current_state":                 code,
		"plugin_output":                 "PING OK - Packet loss = 0%",
		"notifications_enabled":         "1",
		"last_check":                    "1700000000",
		"last_notification":             "0",
		"active_checks_enabled":         "1",
		"problem_has_been_acknowledged": "0",
		"last_hard_state":               "0",
		"scheduled_downtime_depth":      "0",
		"performance_data":              "rta=0.5ms;100;500;0 pl=0%;20;60;0",
		"last_state_change":             "1699990000",
		"current_attempt":               "1",
		"max_attempts":                  "3",
	}
	for i := 0; i+1 < len(overrides); i += 2 {
		attrs[overrides[i]] = overrides[i+1]
	}
	return attrs
}

// Without returns a copy of attrs with the named field removed.
func Without(attrs entity.Attributes, field string) entity.Attributes {
	out := make(entity.Attributes, len(attrs))
	for k, v := range attrs {
		if k != field {
			out[k] = v
		}
	}
	return out
}
