// Package common provides shared constants, types, and utilities
// used across the Pxls Desktop application.
package common

import "errors"

// Sentinel errors.
// These can be checked with errors.Is() for proper error handling.
var (
	// Site errors.
	ErrInvalidURL = errors.New("invalid URL")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// User extension errors.
	ErrUserextRead = errors.New("failed to read user extension")

	// Presence errors.
	ErrPresenceUnavailable = errors.New("discord is not running")
	ErrPresenceClosed      = errors.New("discord closed the connection")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
