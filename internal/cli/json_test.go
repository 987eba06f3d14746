package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/rileyhilliard/ncli/internal/model"
	"github.com/rileyhilliard/ncli/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_BasicData(t *testing.T) {
	var buf bytes.Buffer

	err := WriteJSONSuccess(&buf, map[string]string{"key": "value"})
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONSuccess(&buf, nil))
	assert.NotContains(t, buf.String(), "data")
	assert.Contains(t, buf.String(), `"success": true`)
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer

	details := map[string]string{"host": "web01"}
	err := WriteJSONError(&buf, ErrCodeEntityNotFound, "Host not found: web01", "Run 'ncli hosts'", details)
	require.NoError(t, err)

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeEntityNotFound, env.Error.Code)
	assert.Equal(t, "Host not found: web01", env.Error.Message)
	assert.Equal(t, "Run 'ncli hosts'", env.Error.Suggestion)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "web01", detailsMap["host"])
}

func TestWriteJSONFromError_NilError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, nil))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_GenericError(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("something went wrong")))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeUnknown, env.Error.Code)
	assert.Equal(t, "something went wrong", env.Error.Message)
}

func TestWriteJSONFromError_WrappedStructuredError(t *testing.T) {
	var buf bytes.Buffer

	inner := errors.New(errors.ErrSnapshot, "Status snapshot not found: /tmp/x", "Point --status-file at it")
	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("loading: %w", inner)))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))

	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeSnapshotNotFound, env.Error.Code)
	assert.Equal(t, "Point --status-file at it", env.Error.Suggestion)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		internalCode string
		message      string
		wantCode     string
	}{
		{
			name:         "config not found",
			internalCode: errors.ErrConfig,
			message:      "Config file not found: /x",
			wantCode:     ErrCodeConfigNotFound,
		},
		{
			name:         "config invalid",
			internalCode: errors.ErrConfig,
			message:      "Invalid config format",
			wantCode:     ErrCodeConfigInvalid,
		},
		{
			name:         "snapshot not found",
			internalCode: errors.ErrSnapshot,
			message:      "Status snapshot not found: status.dat",
			wantCode:     ErrCodeSnapshotNotFound,
		},
		{
			name:         "snapshot unparseable",
			internalCode: errors.ErrSnapshot,
			message:      "Couldn't parse status.dat as statusdat",
			wantCode:     ErrCodeSnapshotInvalid,
		},
		{
			name:         "malformed record",
			internalCode: errors.ErrModel,
			message:      "Snapshot contains a malformed record",
			wantCode:     ErrCodeRecordInvalid,
		},
		{
			name:         "missing entity",
			internalCode: errors.ErrModel,
			message:      "Host not found: web01",
			wantCode:     ErrCodeEntityNotFound,
		},
		{
			name:         "render",
			internalCode: errors.ErrRender,
			message:      "Failed to write the report",
			wantCode:     ErrCodeRenderFailed,
		},
		{
			name:         "exec",
			internalCode: errors.ErrExec,
			message:      "Unknown command: foo",
			wantCode:     ErrCodeCommandFailed,
		},
		{
			name:         "unrecognized code",
			internalCode: "SOMETHING_ELSE",
			message:      "whatever",
			wantCode:     ErrCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToJSON(errors.New(tt.internalCode, tt.message, ""))
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestErrorToJSON_RecordErrorDetails(t *testing.T) {
	recErr := &model.RecordError{
		Kind: snapshot.KindService,
		Name: "HTTP",
		Host: "web01",
		Err:  &entity.MissingFieldError{Entity: "HTTP", Field: entity.MaxAttempts.String()},
	}
	err := errors.WrapWithCode(recErr, errors.ErrModel, "Snapshot contains a malformed record", "drop --strict")

	got := ErrorToJSON(err)
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeRecordInvalid, got.Code)

	details, ok := got.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "service", details["kind"])
	assert.Equal(t, "HTTP", details["name"])
	assert.Equal(t, "web01", details["host"])
	assert.Contains(t, details["reason"], "max_attempts")
}

func TestJSONError_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(JSONError{Code: ErrCodeUnknown, Message: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suggestion")
	assert.NotContains(t, string(data), "details")
}

func TestWriteJSONEnvelope_Formatting(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]int{"n": 1}))
	assert.Contains(t, buf.String(), "\n  \"success\": true")
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
}

func TestErrorCodes_AreUnique(t *testing.T) {
	codes := []string{
		ErrCodeConfigNotFound,
		ErrCodeConfigInvalid,
		ErrCodeSnapshotNotFound,
		ErrCodeSnapshotInvalid,
		ErrCodeRecordInvalid,
		ErrCodeEntityNotFound,
		ErrCodeRenderFailed,
		ErrCodeCommandFailed,
		ErrCodeUnknown,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate error code: %s", code)
		seen[code] = true
	}
}
