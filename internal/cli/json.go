package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/model"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	ErrCodeSnapshotInvalid  = "SNAPSHOT_INVALID"
	ErrCodeRecordInvalid    = "RECORD_INVALID"
	ErrCodeEntityNotFound   = "ENTITY_NOT_FOUND"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeCommandFailed    = "COMMAND_FAILED"
	ErrCodeUnknown          = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: err == nil,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var cliErr *errors.Error
	if !stderrors.As(err, &cliErr) {
		return &JSONError{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	out := &JSONError{
		Code:       mapErrorCode(cliErr.Code, cliErr.Message),
		Message:    cliErr.Message,
		Suggestion: cliErr.Suggestion,
	}

	var recErr *model.RecordError
	if stderrors.As(err, &recErr) {
		details := map[string]interface{}{
			"kind":   recErr.Kind.String(),
			"name":   recErr.Name,
			"reason": recErr.Reason(),
		}
		if recErr.Host != "" {
			details["host"] = recErr.Host
		}
		out.Details = details
	}
	return out
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	notFound := strings.Contains(strings.ToLower(message), "not found")

	switch internalCode {
	case errors.ErrConfig:
		if notFound {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrSnapshot:
		if notFound {
			return ErrCodeSnapshotNotFound
		}
		return ErrCodeSnapshotInvalid
	case errors.ErrModel:
		if notFound {
			return ErrCodeEntityNotFound
		}
		return ErrCodeRecordInvalid
	case errors.ErrRender:
		return ErrCodeRenderFailed
	case errors.ErrExec:
		return ErrCodeCommandFailed
	}

	return ErrCodeUnknown
}

// serviceJSON is the --json shape of one service.
type serviceJSON struct {
	Host                 string `json:"host"`
	Name                 string `json:"name"`
	State                string `json:"state"`
	Output               string `json:"output"`
	Acknowledged         bool   `json:"acknowledged"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	InDowntime           bool   `json:"in_downtime"`
	LastCheck            string `json:"last_check"`
	LastStateChange      string `json:"last_state_change"`
	Attempt              string `json:"attempt"`
	HostRecord           bool   `json:"host_record"`
}

func toServiceJSON(svc *entity.Service) serviceJSON {
	return serviceJSON{
		Host:                 svc.HostName(),
		Name:                 svc.Name(),
		State:                svc.State().String(),
		Output:               svc.PluginOutput(),
		Acknowledged:         svc.Acknowledged(),
		NotificationsEnabled: svc.NotificationsEnabled(),
		InDowntime:           svc.InDowntime(),
		LastCheck:            svc.LastCheck(),
		LastStateChange:      svc.LastStateChange(),
		Attempt:              svc.CurrentAttempt() + "/" + svc.MaxAttempts(),
		HostRecord:           svc.HostRef().IsAttached(),
	}
}

func toServicesJSON(services []*entity.Service) []serviceJSON {
	out := make([]serviceJSON, len(services))
	for i, svc := range services {
		out[i] = toServiceJSON(svc)
	}
	return out
}

// hostJSON is the --json shape of one host with its services.
type hostJSON struct {
	Name     string        `json:"name"`
	State    string        `json:"state"`
	Output   string        `json:"output"`
	Worst    string        `json:"worst"`
	Services []serviceJSON `json:"services"`
}

func toHostJSON(h *entity.Host) hostJSON {
	return hostJSON{
		Name:     h.Name(),
		State:    h.State().String(),
		Output:   h.PluginOutput(),
		Worst:    h.WorstState().String(),
		Services: toServicesJSON(h.Services()),
	}
}

// entityJSON is the --json shape of a verbose dump: every field in
// display order.
type entityJSON struct {
	Name   string              `json:"name"`
	Fields []entity.FieldValue `json:"fields"`
}

func toEntityJSON(e entity.Entity) entityJSON {
	return entityJSON{Name: e.Name(), Fields: e.Fields()}
}

// skippedJSON lists the records a build skipped.
func skippedJSON(m *model.Model) []string {
	errs := m.Errors()
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
