// Package logger is the logging seam for ncli packages. Library code logs
// through the Logger interface; the CLI decides where it goes.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "NCLI_DEBUG"

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger writes to an io.Writer through the stdlib log package.
// Debug lines are dropped unless debug is forced on or NCLI_DEBUG is set.
type envLogger struct {
	out    *log.Logger
	prefix string
	debug  bool
}

// NewEnvLogger creates a logger writing to stderr. The prefix (e.g.
// "[model]") is prepended to every message.
func NewEnvLogger(prefix string) Logger {
	return NewWriterLogger(os.Stderr, prefix, false)
}

// NewWriterLogger creates a logger writing to w. debug forces debug output
// on regardless of NCLI_DEBUG.
func NewWriterLogger(w io.Writer, prefix string, debug bool) Logger {
	return &envLogger{
		out:    log.New(w, "", 0),
		prefix: prefix,
		debug:  debug,
	}
}

func (l *envLogger) printf(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.prefix != "" && level != "":
		l.out.Printf("%s %s: %s", l.prefix, level, msg)
	case l.prefix != "":
		l.out.Printf("%s %s", l.prefix, msg)
	case level != "":
		l.out.Printf("%s: %s", level, msg)
	default:
		l.out.Print(msg)
	}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if l.debug || os.Getenv(DebugEnv) != "" {
		l.printf("debug", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.printf("", format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.printf("warning", format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.printf("error", format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(format string, args ...interface{}) {}
func (noopLogger) Info(format string, args ...interface{})  {}
func (noopLogger) Warn(format string, args ...interface{})  {}
func (noopLogger) Error(format string, args ...interface{}) {}

// LogMessage is one captured log line.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures messages for test assertions.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// AtLevel returns the messages logged at level, in order.
func (l *BufferLogger) AtLevel(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, m := range l.Messages {
		if m.Level == level {
			out = append(out, m.Message)
		}
	}
	return out
}

// HasLevel reports whether anything was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	return len(l.AtLevel(level)) > 0
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewEnvLogger("")
)

// Default returns the package-level logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
