package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		force     bool
		expectLog bool
	}{
		{name: "logs when NCLI_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when forced", force: true, expectLog: true},
		{name: "silent by default", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(DebugEnv, tt.envValue)

			var buf bytes.Buffer
			l := NewWriterLogger(&buf, "[model]", tt.force)
			l.Debug("built %d hosts", 3)

			if tt.expectLog {
				assert.Equal(t, "[model] debug: built 3 hosts\n", buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestWriterLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "", false)

	l.Info("loaded %s", "status.dat")
	l.Warn("skipping record %q", "web01")
	l.Error("boom")

	assert.Equal(t, "loaded status.dat\nwarning: skipping record \"web01\"\nerror: boom\n", buf.String())
}

func TestWriterLogger_PrefixWithoutLevel(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, "[snapshot]", false).Info("read %d records", 12)
	assert.Equal(t, "[snapshot] read 12 records\n", buf.String())
}

func TestNoop(t *testing.T) {
	l := Noop()
	assert.NotPanics(t, func() {
		l.Debug("x")
		l.Info("x")
		l.Warn("x")
		l.Error("x")
	})
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Warn("warn %d", 2)
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 5)
	assert.Equal(t, []string{"warn msg", "warn 2"}, l.AtLevel("warn"))
	assert.True(t, l.HasLevel("error"))
	assert.False(t, NewBufferLogger().HasLevel("debug"))
}

func TestDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buf := NewBufferLogger()
	SetDefault(buf)
	assert.Equal(t, buf, Default())
}
