// Package log defines the public logging interface used across verbo packages.
package log

import (
	"context"

	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"
)

// Logger defines the public interface for logging operations within verbo.
// Implementations filter on the verbo verbosity scale (higher level = more
// output, see the level package) and translate to whatever their backing
// facility uses internally.
type Logger interface {
	// Debugf logs a formatted message at DEBUG verbosity.
	// Arguments are handled in the manner of fmt.Sprintf.
	Debugf(format string, args ...interface{})
	// Progressf logs a formatted message at PROGRESS verbosity, the level
	// reserved for progress reporting between INFO and DEBUG.
	Progressf(format string, args ...interface{})
	// Infof logs a formatted message at INFO verbosity.
	Infof(format string, args ...interface{})
	// Warnf logs a formatted message at WARNING verbosity.
	Warnf(format string, args ...interface{})
	// Errorf logs a formatted message at ERROR verbosity. It's recommended
	// implementations also check if the last arg is an error and log it
	// structurally.
	Errorf(format string, args ...interface{})
	// Criticalf logs a formatted message at CRITICAL verbosity.
	Criticalf(format string, args ...interface{})

	// Log logs a message at the specified verbosity with additional
	// key-value attributes. This is the primary method for structured logging.
	Log(lvl level.Level, msg string, args ...interface{})
	// LogCtx logs a message at the specified verbosity, potentially including
	// context information like trace IDs if supported by the implementation.
	LogCtx(ctx context.Context, lvl level.Level, msg string, args ...interface{})

	// With returns a new Logger instance with the specified attributes added
	// to all subsequent log entries. Attributes are typically key-value pairs.
	With(args ...interface{}) Logger
	// IsEnabled checks if the logger is configured to emit logs at the given
	// verbosity. This can be used to avoid expensive computation for log
	// messages that would be discarded.
	IsEnabled(lvl level.Level) bool

	// Format returns a depth-limited, human-readable rendering of an
	// arbitrary value for use in diagnostic messages.
	Format(obj interface{}) string
}
