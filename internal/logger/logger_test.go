package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"
	verbolog "github.com/verbo-labs/verbo/pkg/verbo/v1/log"

	"github.com/verbo-labs/verbo/internal/config"
	"github.com/verbo-labs/verbo/internal/logger"
)

func newTestLogger(verbosity string, mutate func(*config.Options)) (verbolog.Logger, *bytes.Buffer) {
	opts := config.DefaultOptions()
	opts.StdoutVerbosity = verbosity
	if mutate != nil {
		mutate(opts)
	}
	var buf bytes.Buffer
	return logger.NewLogger(opts, &buf), &buf
}

func TestVerbosityCeilingFilters(t *testing.T) {
	log, buf := newTestLogger("WARNING", nil)

	log.Debugf("debug message")
	log.Progressf("progress message")
	log.Infof("info message")
	assert.Empty(t, buf.String(), "messages above the ceiling must be discarded")

	log.Warnf("warn message")
	log.Errorf("error message")
	log.Criticalf("critical message")
	out := buf.String()
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "critical message")
}

func TestProgressCeilingAdmitsInfo(t *testing.T) {
	log, buf := newTestLogger("PROGRESS", nil)

	log.Debugf("debug message")
	assert.Empty(t, buf.String())

	log.Progressf("progress message")
	log.Infof("info message")
	out := buf.String()
	assert.Contains(t, out, "progress message")
	assert.Contains(t, out, "info message")
}

func TestSilentDiscardsEverything(t *testing.T) {
	log, buf := newTestLogger("SILENT", nil)

	log.Debugf("debug")
	log.Infof("info")
	log.Errorf("error")
	log.Criticalf("critical")
	assert.Empty(t, buf.String())
}

func TestIsEnabled(t *testing.T) {
	log, _ := newTestLogger("INFO", nil)

	assert.True(t, log.IsEnabled(level.Error))
	assert.True(t, log.IsEnabled(level.Info))
	assert.False(t, log.IsEnabled(level.Progress))
	assert.False(t, log.IsEnabled(level.Debug))
}

func TestShortLevelStyle(t *testing.T) {
	log, buf := newTestLogger("INFO", func(o *config.Options) {
		o.LevelStyle = string(level.StyleShort)
	})

	log.Warnf("attention")
	assert.Contains(t, buf.String(), "WRN")
}

func TestJSONFormatWithLowerStyle(t *testing.T) {
	log, buf := newTestLogger("INFO", func(o *config.Options) {
		o.Format = config.FormatJSON
		o.LevelStyle = string(level.StyleLower)
	})

	log.Infof("structured")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "structured", record["msg"])
}

func TestErrorfAttachesErrorAttribute(t *testing.T) {
	log, buf := newTestLogger("INFO", nil)

	log.Errorf("step failed: %v", errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "step failed: boom")
	assert.Contains(t, out, "error=boom")
}

func TestWithCarriesAttributes(t *testing.T) {
	log, buf := newTestLogger("INFO", nil)

	log.With("component", "rotator").Infof("attached")
	assert.Contains(t, buf.String(), "component=rotator")
}

func TestLogCtxInjectsTraceIDs(t *testing.T) {
	log, buf := newTestLogger("INFO", nil)

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	log.LogCtx(ctx, level.Info, "traced")
	out := buf.String()
	assert.Contains(t, out, "trace_id="+span.SpanContext().TraceID().String())
	assert.Contains(t, out, "span_id="+span.SpanContext().SpanID().String())
}

func TestFormatLimitsDepth(t *testing.T) {
	log, _ := newTestLogger("INFO", nil)

	deep := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": map[string]any{
					"d": "bottom",
				},
			},
		},
	}
	out := log.Format(deep)
	assert.Contains(t, out, "max depth reached")
	assert.NotContains(t, out, "bottom")

	shallow := log.Format(map[string]int{"n": 1})
	assert.Contains(t, shallow, "1")
	assert.False(t, strings.HasSuffix(shallow, "\n"))
}

func TestHeaderFramesMessage(t *testing.T) {
	log, buf := newTestLogger("INFO", nil)

	logger.Header(log, "Processing dataset")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], strings.Repeat("_", 72))
	assert.Contains(t, lines[1], "Processing dataset")
	assert.Contains(t, lines[2], "_ verbo")
}

func TestHeaderObeysCeiling(t *testing.T) {
	log, buf := newTestLogger("ERROR", nil)

	logger.Header(log, "hidden")
	assert.Empty(t, buf.String())
}
