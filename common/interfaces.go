// Package common provides shared constants, types, and utilities
// used across the Pxls Desktop application.
package common

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}

// ErrorReporter surfaces a failure to the user, typically as a modal dialog.
type ErrorReporter interface {
	ReportError(title, message string)
}
