package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"

	verbolog "github.com/verbo-labs/verbo/pkg/verbo/v1/log"
	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"

	"github.com/verbo-labs/verbo/internal/config"
)

// defaultLogger implements the public verbolog.Logger interface using the
// standard Go slog library. Filtering happens on the verbo verbosity scale;
// the translation to slog's inverted severity convention occurs exactly once,
// at this boundary, via level.Slog.
type defaultLogger struct {
	*slog.Logger
	pretty *prettyPrinter
}

// Compile-time check to ensure defaultLogger implements the public interface.
var _ verbolog.Logger = (*defaultLogger)(nil)

// NewLogger creates a Logger configured from the given options, writing to
// the given writer (defaults to os.Stderr). The options value is explicit
// and private to this logger: no process-wide logging state is consulted or
// mutated.
func NewLogger(opts *config.Options, writer io.Writer) verbolog.Logger {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if writer == nil {
		writer = os.Stderr
	}

	hOpts := &slog.HandlerOptions{
		Level:       opts.StdoutLevel().Slog(),
		ReplaceAttr: makeReplaceAttr(opts.Style(), opts.TimeLayout()),
	}

	var baseHandler slog.Handler
	switch opts.Format {
	case config.FormatJSON:
		baseHandler = slog.NewJSONHandler(writer, hOpts)
	default:
		baseHandler = slog.NewTextHandler(writer, hOpts)
	}

	// Wrap the base handler with the OtelHandler to inject trace/span IDs.
	return &defaultLogger{
		Logger: slog.New(NewOtelHandler(baseHandler)),
		pretty: newPrettyPrinter(defaultPrettyDepth),
	}
}

// NewDefaultLogger provides a basic text logger writing to stderr with the
// given verbosity ceiling. Useful for simple cases or when configuration is
// unavailable.
func NewDefaultLogger(verbosity level.Level) verbolog.Logger {
	opts := config.DefaultOptions()
	opts.StdoutVerbosity = verbosity.String()
	return NewLogger(opts, os.Stderr)
}

// slogToLevel inverts the boundary translation for display purposes.
var slogToLevel = func() map[slog.Level]level.Level {
	m := make(map[slog.Level]level.Level)
	for _, l := range level.All() {
		m[l.Slog()] = l
	}
	return m
}()

// makeReplaceAttr customizes the standard slog attributes: the level is
// rendered as its verbosity name in the configured display style, and the
// timestamp in the configured time style.
func makeReplaceAttr(style level.Style, timeLayout string) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.LevelKey:
			sl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			if vl, known := slogToLevel[sl]; known {
				a.Value = slog.StringValue(vl.Format(style))
			}
		case slog.TimeKey:
			if ts, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(ts.Format(timeLayout))
			}
		}
		return a
	}
}

// Debugf logs a formatted message at DEBUG verbosity.
func (l *defaultLogger) Debugf(format string, args ...interface{}) {
	l.logf(level.Debug, format, args...)
}

// Progressf logs a formatted message at PROGRESS verbosity.
func (l *defaultLogger) Progressf(format string, args ...interface{}) {
	l.logf(level.Progress, format, args...)
}

// Infof logs a formatted message at INFO verbosity.
func (l *defaultLogger) Infof(format string, args ...interface{}) {
	l.logf(level.Info, format, args...)
}

// Warnf logs a formatted message at WARNING verbosity.
func (l *defaultLogger) Warnf(format string, args ...interface{}) {
	l.logf(level.Warning, format, args...)
}

// Criticalf logs a formatted message at CRITICAL verbosity.
func (l *defaultLogger) Criticalf(format string, args ...interface{}) {
	l.logf(level.Critical, format, args...)
}

// logf formats and logs at the given verbosity, skipping the formatting
// work entirely when the level is filtered out.
func (l *defaultLogger) logf(lvl level.Level, format string, args ...interface{}) {
	sl := lvl.Slog()
	if !l.Logger.Enabled(context.Background(), sl) {
		return
	}
	l.Logger.Log(context.Background(), sl, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at ERROR verbosity. When the last argument
// is an error it is additionally attached as a structured "error" attribute.
func (l *defaultLogger) Errorf(format string, args ...interface{}) {
	sl := level.Error.Slog()
	if !l.Logger.Enabled(context.Background(), sl) {
		return
	}
	logArgs := []any{}
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			logArgs = append(logArgs, slog.String("error", err.Error()))
		}
	}
	l.Logger.Log(context.Background(), sl, fmt.Sprintf(format, args...), logArgs...)
}

// Log logs a message at the specified verbosity with explicit key-value pairs.
func (l *defaultLogger) Log(lvl level.Level, msg string, args ...interface{}) {
	l.Logger.Log(context.Background(), lvl.Slog(), msg, args...)
}

// LogCtx logs a message at the specified verbosity, potentially including
// trace/span IDs from the context via the OtelHandler.
func (l *defaultLogger) LogCtx(ctx context.Context, lvl level.Level, msg string, args ...interface{}) {
	l.Logger.Log(ctx, lvl.Slog(), msg, args...)
}

// With returns a new Logger instance with added attributes.
func (l *defaultLogger) With(args ...interface{}) verbolog.Logger {
	return &defaultLogger{
		Logger: l.Logger.With(args...),
		pretty: l.pretty,
	}
}

// IsEnabled checks if logging is enabled for the specified verbosity.
func (l *defaultLogger) IsEnabled(lvl level.Level) bool {
	return l.Logger.Enabled(context.Background(), lvl.Slog())
}

// Format returns a depth-limited pretty rendering of obj for diagnostics.
func (l *defaultLogger) Format(obj interface{}) string {
	return l.pretty.format(obj)
}

// --- OtelHandler for Trace/Span ID Injection ---

// OtelHandler is a slog.Handler middleware that automatically injects
// OpenTelemetry trace_id and span_id attributes into log records if a valid
// span context exists in the logging context.
type OtelHandler struct {
	next slog.Handler
}

// NewOtelHandler creates a new OtelHandler wrapping the provided handler.
func NewOtelHandler(next slog.Handler) *OtelHandler {
	return &OtelHandler{next: next}
}

// Enabled forwards the check to the wrapped handler.
func (h *OtelHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

// Handle extracts span context from the context.Context, adds trace_id and
// span_id attributes if available, and forwards the record.
func (h *OtelHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		record.AddAttrs(
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
		)
	}
	return h.next.Handle(ctx, record)
}

// WithAttrs returns a new OtelHandler wrapping the result of calling
// WithAttrs on the next handler.
func (h *OtelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewOtelHandler(h.next.WithAttrs(attrs))
}

// WithGroup returns a new OtelHandler wrapping the result of calling
// WithGroup on the next handler.
func (h *OtelHandler) WithGroup(name string) slog.Handler {
	return NewOtelHandler(h.next.WithGroup(name))
}
