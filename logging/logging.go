package logging

import (
	"io"
	"log/slog"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a string representation into a log level enum, defaulting to InfoLevel
func ParseLogLevel(level string) int {
	for l := TraceLevel; l <= FatalLevel; l++ {
		if LogLevelToString(l) == level {
			return l
		}
	}
	switch level {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	}
	return InfoLevel
}

// ToSlogLevel translates a log level enum to a slog.Level. Trace is mapped below slog.LevelDebug
// and Fatal above slog.LevelError.
func ToSlogLevel(level int) slog.Level {
	switch level {
	case TraceLevel:
		return slog.LevelDebug - 4
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	case FatalLevel:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// NewLogger produces a text logger writing messages of the given level (or above) to w
func NewLogger(level int, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ToSlogLevel(level)}))
}

// Discard produces a logger which drops every message
func Discard() *slog.Logger {
	return NewLogger(FatalLevel, io.Discard)
}
