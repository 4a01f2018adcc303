// Package timer implements elapsed-time reporting between checkpoints,
// optionally durable to a rotating log file.
package timer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"
	verbolog "github.com/verbo-labs/verbo/pkg/verbo/v1/log"

	"github.com/verbo-labs/verbo/internal/config"
	"github.com/verbo-labs/verbo/internal/metrics"
	"github.com/verbo-labs/verbo/internal/rotate"
)

// Timer records a start time and a last-checkpoint time and reports the
// elapsed interval on demand. Reports always go to the error writer; when a
// log file target was configured they are also appended there, best-effort.
//
// A Timer is owned by a single goroutine. It holds no open file handles
// between calls and has no teardown beyond being discarded.
type Timer struct {
	start time.Time
	last  time.Time
	clock func() time.Time

	errW   io.Writer
	sink   *rotate.Writer
	diag   verbolog.Logger
	met    *metrics.Diagnostics
	tracer trace.Tracer

	degradationNoted bool
}

type settings struct {
	logFile  string
	logDir   string
	backups  int
	maxKB    int
	rotating bool
	banner   string
	errW     io.Writer
	clock    func() time.Time
	diag     verbolog.Logger
	met      *metrics.Diagnostics
	tracer   trace.Tracer
}

// Option configures a Timer at construction.
type Option func(*settings)

// WithLogFile makes reports durable to the given file path. Mutually
// exclusive with WithLogDir.
func WithLogFile(path string) Option {
	return func(s *settings) { s.logFile = path }
}

// WithLogDir makes reports durable to the default-named log file inside the
// given directory. Mutually exclusive with WithLogFile.
func WithLogDir(dir string) Option {
	return func(s *settings) { s.logDir = dir }
}

// WithBackups bounds the rotation chain of the log file.
func WithBackups(n int) Option {
	return func(s *settings) { s.backups = n }
}

// WithMaxFileSizeKB caps the live log file size.
func WithMaxFileSizeKB(kb int) Option {
	return func(s *settings) { s.maxKB = kb }
}

// WithRotation enables or disables backup rotation.
func WithRotation(enabled bool) Option {
	return func(s *settings) { s.rotating = enabled }
}

// WithBanner overrides the session banner in the log file header.
func WithBanner(banner string) Option {
	return func(s *settings) { s.banner = banner }
}

// WithErrWriter redirects the unconditional report stream. Defaults to
// os.Stderr.
func WithErrWriter(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.errW = w
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDiagnosticLogger attaches a logger used to note durability
// degradation. Without it, degradation is still counted but not logged.
func WithDiagnosticLogger(l verbolog.Logger) Option {
	return func(s *settings) { s.diag = l }
}

// WithMetrics attaches the diagnostics collector set.
func WithMetrics(d *metrics.Diagnostics) Option {
	return func(s *settings) { s.met = d }
}

// WithTracer makes every report call emit a span covering the reported
// interval.
func WithTracer(t trace.Tracer) Option {
	return func(s *settings) { s.tracer = t }
}

// New creates a Timer and, when a log target is configured, prepares the
// rotating log file (rotation plus session header). Only the mutual
// exclusion of file and directory targets can fail construction; every
// file-system problem degrades the Timer to memory-only reporting instead.
func New(opts ...Option) (*Timer, error) {
	s := settings{
		backups:  rotate.DefaultBackups,
		rotating: true,
		errW:     os.Stderr,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.logFile != "" && s.logDir != "" {
		return nil, verboerrors.NewValidationError("cannot specify both a log file and a log directory", nil)
	}

	t := &Timer{
		clock:  s.clock,
		errW:   s.errW,
		diag:   s.diag,
		met:    s.met,
		tracer: s.tracer,
	}

	target := s.logFile
	if s.logDir != "" {
		target = filepath.Join(s.logDir, config.DefaultLogFileName)
	}
	if target != "" {
		sinkOpts := []rotate.Option{
			rotate.WithBackups(s.backups),
			rotate.WithRotation(s.rotating),
			rotate.WithMaxSizeKB(s.maxKB),
			rotate.WithClock(s.clock),
			rotate.WithDiagnostics(s.met),
		}
		if s.banner != "" {
			sinkOpts = append(sinkOpts, rotate.WithBanner(s.banner))
		}
		t.sink = rotate.NewWriter(target, sinkOpts...)
		if err := t.sink.Open(); err != nil {
			t.noteDegradation(err)
		}
	}

	now := t.clock()
	t.start = now
	t.last = now
	return t, nil
}

// FromOptions creates a Timer from a logging configuration, with any extra
// options applied on top.
func FromOptions(o *config.Options, extra ...Option) (*Timer, error) {
	opts := []Option{
		WithBackups(o.NumBackups),
		WithRotation(o.RotationEnabled()),
		WithMaxFileSizeKB(o.MaxFileSizeKB),
	}
	if o.LogFile != "" {
		opts = append(opts, WithLogFile(o.LogFile))
	}
	if o.LogDir != "" {
		opts = append(opts, WithLogDir(o.LogDir))
	}
	return New(append(opts, extra...)...)
}

// Checkpoint reports the time elapsed since the previous report call (or
// since construction for the first one) in the terse fixed-width format,
// and advances the checkpoint.
func (t *Timer) Checkpoint(msg string) {
	now := t.clock()
	line := fmt.Sprintf("%s: %s", msg, ShortFormatElapsed(now.Sub(t.last)))
	t.emit("checkpoint", msg, line, t.last, now)
	t.last = t.clock()
}

// Total reports the cumulative time elapsed since construction in the
// verbose format. It still advances the checkpoint used by subsequent
// Checkpoint calls.
func (t *Timer) Total(msg string) {
	now := t.clock()
	line := fmt.Sprintf("%s: %s", msg, FormatElapsed(now.Sub(t.start)))
	t.emit("total", msg, line, t.start, now)
	t.last = t.clock()
}

// Degraded reports whether any best-effort file write has failed since
// construction.
func (t *Timer) Degraded() bool {
	return t.sink != nil && t.sink.Degraded()
}

// emit delivers one report line: unconditionally to the error writer, then
// best-effort to the log file. File failures never propagate past here.
func (t *Timer) emit(mode, msg, line string, from, to time.Time) {
	fmt.Fprintln(t.errW, line)

	if t.sink != nil {
		if err := t.sink.Append(line); err != nil {
			t.noteDegradation(err)
		}
	}
	if t.met != nil {
		t.met.Reports.WithLabelValues(mode).Inc()
	}
	if t.tracer != nil {
		_, span := t.tracer.Start(context.Background(), "verbo.timer."+mode,
			trace.WithTimestamp(from),
			trace.WithAttributes(
				attribute.String("message", msg),
				attribute.Float64("elapsed_seconds", to.Sub(from).Seconds()),
			),
		)
		span.End(trace.WithTimestamp(to))
	}
}

// noteDegradation logs the first absorbed file-system failure at DEBUG.
// Later failures are still counted by the metrics but not re-logged; the
// non-fatal contract stays intact either way.
func (t *Timer) noteDegradation(err error) {
	if t.degradationNoted {
		return
	}
	t.degradationNoted = true
	if t.diag != nil {
		t.diag.Debugf("continuing without log file durability: %v", err)
	}
}
