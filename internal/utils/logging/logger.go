package logging

// Fields represents structured context for a log entry.
// Keys should be short, lowerCamelCase; values must be JSON-serializable.
type Fields map[string]any

// Logger is the leveled logger the rewrite pipeline writes to.
// Messages are dotted event names (e.g. "localauth.route.rewritten"); details
// belong in Fields rather than in the message string.
type Logger interface {
	Debug(msg string, ctx Fields)
	Info(msg string, ctx Fields)
	Warn(msg string, ctx Fields)
}

// NopLogger discards all logs.
type NopLogger struct{}

// Debug discards the log entry.
func (NopLogger) Debug(string, Fields) {}

// Info discards the log entry.
func (NopLogger) Info(string, Fields) {}

// Warn discards the log entry.
func (NopLogger) Warn(string, Fields) {}

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
