package command_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verbo-labs/verbo/internal/command"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests drive a POSIX shell")
	}
}

func TestRunSuccess(t *testing.T) {
	requirePosixShell(t)
	var stdout, stderr bytes.Buffer

	result, err := command.NewRunner().Run(context.Background(), "sh", []string{"-c", "echo hello"}, nil, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunNonZeroExitIsAResultNotAnError(t *testing.T) {
	requirePosixShell(t)
	var stdout, stderr bytes.Buffer

	result, err := command.NewRunner().Run(context.Background(), "sh", []string{"-c", "exit 3"}, nil, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Error(t, result.Error)
}

func TestRunCommandNotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer

	result, err := command.NewRunner().Run(context.Background(), "definitely-not-a-command-xyz", nil, nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	requirePosixShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var stdout, stderr bytes.Buffer

	result, err := command.NewRunner().Run(ctx, "sh", []string{"-c", "sleep 10"}, nil, &stdout, &stderr)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, result.ExitCode)
}
