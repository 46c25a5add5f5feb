package testutil

import (
	"github.com/mikecbrant/local-authorizers/internal/utils/logging"
)

// BufferLogger records log calls for assertions.
type BufferLogger struct {
	Calls    []string
	Messages []string
	Fields   []logging.Fields
}

// Debug records a debug-level log entry.
func (l *BufferLogger) Debug(msg string, ctx logging.Fields) { l.record("debug", msg, ctx) }

// Info records an info-level log entry.
func (l *BufferLogger) Info(msg string, ctx logging.Fields) { l.record("info", msg, ctx) }

// Warn records a warn-level log entry.
func (l *BufferLogger) Warn(msg string, ctx logging.Fields) { l.record("warn", msg, ctx) }

func (l *BufferLogger) record(level, msg string, ctx logging.Fields) {
	l.Calls = append(l.Calls, level)
	l.Messages = append(l.Messages, msg)
	l.Fields = append(l.Fields, ctx)
}

// Has reports whether a message was logged at the given level.
func (l *BufferLogger) Has(level, msg string) bool {
	for i, m := range l.Messages {
		if m == msg && l.Calls[i] == level {
			return true
		}
	}
	return false
}

// FieldsFor returns the fields of the first entry logged as msg at level.
func (l *BufferLogger) FieldsFor(level, msg string) (logging.Fields, bool) {
	for i, m := range l.Messages {
		if m == msg && l.Calls[i] == level {
			return l.Fields[i], true
		}
	}
	return nil, false
}

var _ logging.Logger = (*BufferLogger)(nil)
