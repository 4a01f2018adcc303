package errors

import (
	"errors"
	"fmt"
)

// --- Verbo Core Error Types ---

// ConfigError represents an error encountered while loading, parsing, or
// applying logging options (unreadable files, bad option values).
type ConfigError struct {
	Message string
	Cause   error
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{Message: message, Cause: cause}
}
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
func (e *ConfigError) Unwrap() error { return e.Cause }

// ValidationError indicates that some input failed validation checks: a
// config document that does not match the schema, an option outside its
// allowed range, or mutually exclusive targets (log file and log directory)
// supplied together. Validation errors are raised at construction time
// only; steady-state I/O failures are never surfaced this way.
type ValidationError struct {
	Message string
	Cause   error
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
func (e *ValidationError) Unwrap() error { return e.Cause }

// NotImplementedError marks an intended feature of the options surface that
// has no implementation. It is a deliberate signal, not a runtime condition
// callers are expected to design around.
type NotImplementedError struct {
	Feature string
}

func NewNotImplementedError(feature string) *NotImplementedError {
	return &NotImplementedError{Feature: feature}
}
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Feature)
}

// IsNotImplemented checks if an error is a NotImplementedError using errors.As.
func IsNotImplemented(err error) bool {
	var nie *NotImplementedError
	return errors.As(err, &nie)
}

// DurabilityError describes a failed best-effort write on the log-file path:
// a rotation step, the session header, or a line append. It is returned as an
// explicit status by the durability layer so the owner can note the
// degradation once, but it is never propagated to the caller of a report
// operation.
type DurabilityError struct {
	Stage string // "mkdir", "rotate", "header" or "append"
	Path  string
	Cause error
}

func NewDurabilityError(stage, path string, cause error) *DurabilityError {
	return &DurabilityError{Stage: stage, Path: path, Cause: cause}
}
func (e *DurabilityError) Error() string {
	return fmt.Sprintf("log durability degraded (%s) for '%s': %v", e.Stage, e.Path, e.Cause)
}
func (e *DurabilityError) Unwrap() error { return e.Cause }
