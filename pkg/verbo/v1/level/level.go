// Package level defines the verbosity scale used throughout verbo.
//
// Unlike most logging facilities, where DEBUG is the lowest severity,
// verbo levels grow with the amount of output requested: a higher level
// always means more detail, and 0 means complete silence. Code that
// delegates to a facility with the opposite convention (such as log/slog)
// must translate exactly once, at the boundary, via Slog.
package level

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level is an integer verbosity level. The named constants form a closed
// set; intermediate values are permitted as thresholds but have no name.
type Level int

// The verbosity scale. Numeric order matches verbosity order.
const (
	Silent   Level = 0
	Critical Level = 10
	Error    Level = 20
	Warning  Level = 30
	Info     Level = 40
	Progress Level = 45
	Debug    Level = 50
)

// DefaultLevel is used when a level string cannot be parsed.
const DefaultLevel = Info

// Style selects how a level name is rendered in log output.
type Style string

const (
	StyleUpper Style = "upper"
	StyleLower Style = "lower"
	StyleShort Style = "short"
)

// names maps each named level to its canonical upper-case name.
var names = map[Level]string{
	Silent:   "SILENT",
	Critical: "CRITICAL",
	Error:    "ERROR",
	Warning:  "WARNING",
	Info:     "INFO",
	Progress: "PROGRESS",
	Debug:    "DEBUG",
}

// shortNames maps each named level to a fixed-width three-letter code.
var shortNames = map[Level]string{
	Silent:   "SIL",
	Critical: "CRT",
	Error:    "ERR",
	Warning:  "WRN",
	Info:     "INF",
	Progress: "PRG",
	Debug:    "DBG",
}

// slogLevels maps the verbosity scale onto slog's ascending-severity scale.
// The mapping is strictly decreasing in verbosity, so the two orderings
// agree after inversion. Progress sits between Info and Debug; Critical
// sits above slog's Error; Silent maps above everything so that using it
// as a threshold suppresses all output.
var slogLevels = map[Level]slog.Level{
	Silent:   slog.LevelError + 8,
	Critical: slog.LevelError + 4,
	Error:    slog.LevelError,
	Warning:  slog.LevelWarn,
	Info:     slog.LevelInfo,
	Progress: slog.LevelInfo - 2,
	Debug:    slog.LevelDebug,
}

// Named reports whether l is one of the named levels of the closed set.
func (l Level) Named() bool {
	_, ok := names[l]
	return ok
}

// String returns the canonical upper-case name of l, or "LEVEL(n)" for
// unnamed values.
func (l Level) String() string {
	if name, ok := names[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Format renders the level name in the given display style. Unknown styles
// fall back to the canonical upper-case form.
func (l Level) Format(style Style) string {
	switch style {
	case StyleLower:
		return strings.ToLower(l.String())
	case StyleShort:
		if short, ok := shortNames[l]; ok {
			return short
		}
		return l.String()
	default:
		return l.String()
	}
}

// Slog translates l to the equivalent slog.Level. For unnamed values the
// nearest named level at or below l is used, so that thresholds between
// two named levels behave like the lower one.
//
// When the result is used as a slog handler threshold, a message logged at
// verbosity v passes the filter exactly when v <= l: the translation is
// strictly decreasing, so the comparison flips direction with it.
func (l Level) Slog() slog.Level {
	if sl, ok := slogLevels[l]; ok {
		return sl
	}
	// Walk down to the nearest named level. The scale is small and fixed.
	nearest := Silent
	for named := range slogLevels {
		if named <= l && named > nearest {
			nearest = named
		}
	}
	return slogLevels[nearest]
}

// Parse converts a level name to its Level, case-insensitively. "WARN" is
// accepted as an alias for WARNING. Unrecognized names return DefaultLevel
// and false.
func Parse(name string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SILENT":
		return Silent, true
	case "CRITICAL":
		return Critical, true
	case "ERROR":
		return Error, true
	case "WARNING", "WARN":
		return Warning, true
	case "INFO":
		return Info, true
	case "PROGRESS":
		return Progress, true
	case "DEBUG":
		return Debug, true
	default:
		return DefaultLevel, false
	}
}

// MustParse is Parse without the validity flag, for call sites that treat
// unknown names as a request for the default.
func MustParse(name string) Level {
	l, _ := Parse(name)
	return l
}

// All returns the named levels in ascending verbosity order.
func All() []Level {
	return []Level{Silent, Critical, Error, Warning, Info, Progress, Debug}
}
