// Package rotate implements the size/count-bounded rotating log file used
// by the elapsed-time reporting helpers.
//
// Durability here is best-effort by contract: a log file is a side channel
// observing somebody else's computation, and must never abort it. Every
// file-system failure is absorbed and reported to the owner as an explicit
// status error (never a panic, never a propagated failure), so the owner can
// note the degradation once and carry on in memory-only mode.
package rotate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"

	"github.com/verbo-labs/verbo/internal/metrics"
)

// DefaultBackups is the default length of the rotation chain.
const DefaultBackups = 8

// DefaultBanner identifies the session in the log file header.
const DefaultBanner = "verbo session"

// ctimeLayout renders timestamps the way the session header expects them.
const ctimeLayout = time.ANSIC

// Writer writes lines to a log file at a fixed path, rotating prior contents
// into numbered backups (path.1 .. path.N, lower suffix = more recent).
//
// The file handle is never held open across calls: each append reopens,
// writes and closes, trading performance for safety against stale handles
// when multiple processes share a target path. A Writer is owned by a single
// goroutine; concurrent use requires external coordination (the rotation
// scheme is race-tolerant, not race-free).
type Writer struct {
	path     string
	backups  int
	maxSize  int64 // bytes; 0 disables the size cap
	rotating bool
	banner   string
	clock    func() time.Time
	diag     *metrics.Diagnostics

	degraded bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithBackups bounds the rotation chain at n numbered backups.
func WithBackups(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.backups = n
		}
	}
}

// WithMaxSizeKB caps the live file size; an append that finds the file at or
// above the cap runs the rotation sequence first. Zero disables the cap.
func WithMaxSizeKB(kb int) Option {
	return func(w *Writer) { w.maxSize = int64(kb) * 1024 }
}

// WithRotation enables or disables backup rotation. When disabled, Open
// truncates any prior file in place without preserving a backup.
func WithRotation(enabled bool) Option {
	return func(w *Writer) { w.rotating = enabled }
}

// WithBanner overrides the session banner written in the file header.
func WithBanner(banner string) Option {
	return func(w *Writer) {
		if banner != "" {
			w.banner = banner
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(w *Writer) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// WithDiagnostics attaches the metrics collector set.
func WithDiagnostics(d *metrics.Diagnostics) Option {
	return func(w *Writer) { w.diag = d }
}

// NewWriter creates a Writer for the given target path. No file-system
// activity happens until Open.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{
		path:     path,
		backups:  DefaultBackups,
		rotating: true,
		banner:   DefaultBanner,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the live log file path.
func (w *Writer) Path() string { return w.path }

// Degraded reports whether any durability operation has failed since the
// Writer was created.
func (w *Writer) Degraded() bool { return w.degraded }

// Open prepares the live log file for a new session: it creates missing
// parent directories, rotates any prior file into the numbered backup chain,
// truncates the live file and writes the session header.
//
// The returned error is a status, not a failure of the Writer: the Writer
// stays usable (further appends are still attempted) and the caller's
// computation must not be aborted on account of it.
func (w *Writer) Open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return w.degrade("mkdir", err)
	}

	if _, err := os.Stat(w.path); err == nil && w.rotating {
		if err := w.rotateChain(); err != nil {
			// Rotation trouble is noted but must not prevent the new
			// session from getting a fresh live file.
			_ = w.degrade("rotate", err)
		} else if w.diag != nil {
			w.diag.Rotations.Inc()
		}
	}

	if err := w.writeHeader(); err != nil {
		return w.degrade("header", err)
	}
	return nil
}

// Append adds one line to the live log file, reopening and closing the file
// around the write. When a size cap is configured and the file has grown past
// it, the rotation sequence runs first so no single file grows unbounded.
// Like Open, the returned error is a status only.
func (w *Writer) Append(line string) error {
	if w.maxSize > 0 && w.rotating {
		if info, err := os.Stat(w.path); err == nil && info.Size() >= w.maxSize {
			if err := w.rotateChain(); err != nil {
				_ = w.degrade("rotate", err)
			} else if w.diag != nil {
				w.diag.Rotations.Inc()
			}
			if err := w.writeHeader(); err != nil {
				_ = w.degrade("header", err)
			}
		}
	}

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return w.degrade("append", err)
	}
	_, werr := f.WriteString(line + "\n")
	cerr := f.Close()
	if werr != nil {
		return w.degrade("append", werr)
	}
	if cerr != nil {
		return w.degrade("append", cerr)
	}
	if w.diag != nil {
		w.diag.FileAppends.Inc()
	}
	return nil
}

// rotateChain shifts existing backups one slot up, discarding the oldest
// when the chain is full, then copies the live file to path.1. Copy, not
// move: a process tailing the live file must not lose it mid-session.
// Individual step failures do not stop the remaining steps.
func (w *Writer) rotateChain() error {
	var firstErr error
	for i := w.backups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", w.path, i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := fmt.Sprintf("%s.%d", w.path, i+1)
		if err := os.Rename(src, dst); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := copyFile(w.path, w.path+".1"); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// writeHeader truncates the live file and writes the session-start header:
// a blank line, the banner line, and the session timestamp set off by dashes.
func (w *Writer) writeHeader() error {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("\nLogging %s\n\n---%s---\n\n", w.banner, w.clock().Format(ctimeLayout))
	_, werr := f.WriteString(header)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// degrade records an absorbed failure and wraps it in the status error type.
func (w *Writer) degrade(stage string, cause error) error {
	w.degraded = true
	if w.diag != nil {
		w.diag.DurabilityDegraded.WithLabelValues(stage).Inc()
	}
	return verboerrors.NewDurabilityError(stage, w.path, cause)
}

// copyFile duplicates src to dst, truncating dst if present.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, cerr := io.Copy(out, in)
	if err := out.Close(); cerr == nil {
		cerr = err
	}
	return cerr
}
