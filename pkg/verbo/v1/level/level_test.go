package level_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"
)

// TestDocumentedValues pins the verbosity scale to its documented integers.
// These values are part of the public contract and must never drift.
func TestDocumentedValues(t *testing.T) {
	assert.EqualValues(t, 0, level.Silent)
	assert.EqualValues(t, 10, level.Critical)
	assert.EqualValues(t, 20, level.Error)
	assert.EqualValues(t, 30, level.Warning)
	assert.EqualValues(t, 40, level.Info)
	assert.EqualValues(t, 45, level.Progress)
	assert.EqualValues(t, 50, level.Debug)
}

// TestOrderingMatchesVerbosity verifies that numeric order and verbosity
// order agree, and that the slog translation inverts it consistently.
func TestOrderingMatchesVerbosity(t *testing.T) {
	all := level.All()
	require.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, int(all[i]), int(all[i-1]),
			"%s should be more verbose than %s", all[i], all[i-1])
		assert.Less(t, int(all[i].Slog()), int(all[i-1].Slog()),
			"slog translation must be strictly decreasing at %s", all[i])
	}
}

func TestSlogBoundaryTranslation(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, level.Debug.Slog())
	assert.Equal(t, slog.LevelInfo, level.Info.Slog())
	assert.Equal(t, slog.LevelWarn, level.Warning.Slog())
	assert.Equal(t, slog.LevelError, level.Error.Slog())

	// A threshold between two named levels behaves like the lower one.
	assert.Equal(t, level.Info.Slog(), level.Level(42).Slog())

	// Silent as a threshold suppresses even CRITICAL output.
	assert.Greater(t, int(level.Silent.Slog()), int(level.Critical.Slog()))
}

func TestParse(t *testing.T) {
	for _, l := range level.All() {
		got, ok := level.Parse(l.String())
		assert.True(t, ok)
		assert.Equal(t, l, got)
	}

	got, ok := level.Parse("warn")
	assert.True(t, ok)
	assert.Equal(t, level.Warning, got)

	got, ok = level.Parse("loud")
	assert.False(t, ok)
	assert.Equal(t, level.DefaultLevel, got)

	assert.Equal(t, level.Progress, level.MustParse(" progress "))
}

func TestFormatStyles(t *testing.T) {
	assert.Equal(t, "WARNING", level.Warning.Format(level.StyleUpper))
	assert.Equal(t, "warning", level.Warning.Format(level.StyleLower))
	assert.Equal(t, "WRN", level.Warning.Format(level.StyleShort))
	assert.Equal(t, "PRG", level.Progress.Format(level.StyleShort))

	// Unknown styles fall back to the canonical form.
	assert.Equal(t, "DEBUG", level.Debug.Format(level.Style("fancy")))
}

func TestUnnamedString(t *testing.T) {
	assert.False(t, level.Level(33).Named())
	assert.Equal(t, "LEVEL(33)", level.Level(33).String())
}
