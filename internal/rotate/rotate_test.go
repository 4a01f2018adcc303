package rotate_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"

	"github.com/verbo-labs/verbo/internal/rotate"
)

// fixedTime is the session timestamp used by all tests needing one.
var fixedTime = time.Date(2024, 3, 1, 15, 45, 1, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func newWriter(t *testing.T, path string, opts ...rotate.Option) *rotate.Writer {
	t.Helper()
	return rotate.NewWriter(path, append([]rotate.Option{rotate.WithClock(fixedClock)}, opts...)...)
}

func TestFreshPathWritesSingleHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")
	w := newWriter(t, path)
	require.NoError(t, w.Open())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := fmt.Sprintf("\nLogging verbo session\n\n---%s---\n\n", fixedTime.Format(time.ANSIC))
	assert.Equal(t, expected, string(data))
	assert.False(t, w.Degraded())

	// No rotation happened, so no backup may exist.
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
}

func TestOpenCreatesMissingParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "verbo.log")
	w := newWriter(t, path)
	require.NoError(t, w.Open())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestAppendAddsLinesAfterHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")
	w := newWriter(t, path)
	require.NoError(t, w.Open())
	require.NoError(t, w.Append("step one:   1.0s"))
	require.NoError(t, w.Append("step two:   2.0s"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "step one:   1.0s\nstep two:   2.0s\n"))
}

func TestRotationPreservesPriorSessionByteForByte(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")

	first := newWriter(t, path)
	require.NoError(t, first.Open())
	require.NoError(t, first.Append("one:   1.0s"))
	require.NoError(t, first.Append("two:   2.0s"))
	require.NoError(t, first.Append("three:   3.0s"))

	preRotation, err := os.ReadFile(path)
	require.NoError(t, err)

	second := newWriter(t, path)
	require.NoError(t, second.Open())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, preRotation, backup, "backup must be byte-identical to the pre-rotation file")

	// The live file has a fresh header and no report lines.
	live, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(live), "one:")
	assert.Contains(t, string(live), "Logging verbo session")
}

func TestRotationBeyondBoundDiscardsOldest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")

	// Each Open of an existing file pushes the chain one step. With two
	// backups, four sessions must never produce a third backup.
	for session := 0; session < 4; session++ {
		w := newWriter(t, path, rotate.WithBackups(2))
		require.NoError(t, w.Open())
		require.NoError(t, w.Append(fmt.Sprintf("session %d:   1.0s", session)))
	}

	_, err := os.Stat(path + ".1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".2")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err), "backup beyond the bound must never appear")

	// Lower suffix is the more recent backup.
	recent, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Contains(t, string(recent), "session 2:")
}

func TestRotationDisabledTruncatesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")

	first := newWriter(t, path, rotate.WithRotation(false))
	require.NoError(t, first.Open())
	require.NoError(t, first.Append("old:   1.0s"))

	second := newWriter(t, path, rotate.WithRotation(false))
	require.NoError(t, second.Open())

	_, err := os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
	live, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(live), "old:")
}

func TestSizeCapForcesRotationOnAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")
	w := newWriter(t, path, rotate.WithMaxSizeKB(1))
	require.NoError(t, w.Open())

	// Push the live file past 1 KiB, then append once more.
	require.NoError(t, w.Append(strings.Repeat("x", 2048)))
	require.NoError(t, w.Append("after cap:   1.0s"))

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Contains(t, string(backup), strings.Repeat("x", 2048))

	live, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(live), "after cap:")
	assert.NotContains(t, string(live), strings.Repeat("x", 2048))
}

func TestUnwritableTargetDegradesWithoutPanicking(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}
	dir := t.TempDir()
	readonly := filepath.Join(dir, "ro")
	require.NoError(t, os.Mkdir(readonly, 0o555))

	path := filepath.Join(readonly, "verbo.log")
	w := newWriter(t, path)

	err := w.Open()
	require.Error(t, err)
	var durErr *verboerrors.DurabilityError
	assert.ErrorAs(t, err, &durErr)
	assert.True(t, w.Degraded())

	// The writer stays usable: appends keep returning a status, never panic.
	err = w.Append("still here:   1.0s")
	require.Error(t, err)
	assert.ErrorAs(t, err, &durErr)
}

func TestCustomBanner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verbo.log")
	w := newWriter(t, path, rotate.WithBanner("pipeline run"))
	require.NoError(t, w.Open())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logging pipeline run\n")
}
