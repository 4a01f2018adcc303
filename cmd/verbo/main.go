package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"

	"github.com/verbo-labs/verbo/internal/command"
	"github.com/verbo-labs/verbo/internal/config"
	"github.com/verbo-labs/verbo/internal/logger"
	"github.com/verbo-labs/verbo/internal/metrics"
	"github.com/verbo-labs/verbo/internal/timer"
	"github.com/verbo-labs/verbo/internal/tracing"
)

const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsageError = 2
	ExitSigIntBase = 128
	ExitSigInt     = ExitSigIntBase + int(syscall.SIGINT)
	ExitSigTerm    = ExitSigIntBase + int(syscall.SIGTERM)
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "validate":
			os.Exit(runValidateCommand(os.Args[2:]))
		case "time":
			os.Exit(runTimeCommand(os.Args[2:]))
		case "--version", "-version":
			printVersion()
			os.Exit(ExitSuccess)
		}
	}
	printUsage()
	os.Exit(ExitUsageError)
}

func printVersion() {
	fmt.Printf("verbo version %s\n", version)
	fmt.Printf("commit: %s\n", commit)
	fmt.Printf("built: %s\n", buildDate)
	fmt.Printf("go version: %s\n", runtime.Version())
	fmt.Printf("os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags...]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  time      Run a command and report elapsed time, durable to a rotating log file")
	fmt.Fprintln(os.Stderr, "  validate  Validate a verbo config file")
	fmt.Fprintln(os.Stderr, "\nUse '<command> -h' for command flags.")
}

func runValidateCommand(args []string) int {
	validateFlags := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := validateFlags.String("config", "", "Path to the config YAML file to validate (required)")

	validateFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s validate -config <path>\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Validates the structure and schema compatibility of a verbo config file.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		validateFlags.PrintDefaults()
	}

	if err := validateFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required for validation")
		validateFlags.Usage()
		return ExitUsageError
	}

	log := logger.NewLogger(nil, os.Stderr)

	_, err := config.LoadOptionsFromFile(*configPath)
	if err != nil {
		var validationErr *verboerrors.ValidationError
		var configErr *verboerrors.ConfigError
		if errors.As(err, &validationErr) {
			log.Errorf("Config validation failed:\n%s", validationErr.Error())
		} else if errors.As(err, &configErr) {
			log.Errorf("Config error:\n%s", configErr.Error())
		} else {
			log.Errorf("Failed to load or validate config: %v", err)
		}
		return ExitFailure
	}

	log.Infof("Config validation successful: %s", *configPath)
	return ExitSuccess
}

func runTimeCommand(args []string) int {
	timeFlags := flag.NewFlagSet("time", flag.ExitOnError)
	configPath := timeFlags.String("config", "", "Path to a verbo config YAML file")
	logFile := timeFlags.String("log-file", "", "Log file target (overrides config; '~' expands to HOME)")
	logDir := timeFlags.String("log-dir", "", "Log directory target (overrides config)")
	logLevel := timeFlags.String("log-level", "", "Console verbosity (SILENT, CRITICAL, ERROR, WARNING, INFO, PROGRESS, DEBUG)")
	enableTracing := timeFlags.Bool("trace", false, "Enable OpenTelemetry checkpoint spans (configured via OTEL_* env)")

	timeFlags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s time [flags...] -- <command> [args...]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Runs a command, reporting elapsed time to stderr and optionally to a")
		fmt.Fprintln(os.Stderr, "rotating log file.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		timeFlags.PrintDefaults()
	}

	if err := timeFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	cmdArgs := timeFlags.Args()
	if len(cmdArgs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no command given")
		timeFlags.Usage()
		return ExitUsageError
	}

	opts := config.DefaultOptions()
	if *configPath != "" {
		loaded, err := config.LoadOptionsFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitFailure
		}
		opts = loaded
	}
	if *logFile != "" {
		opts.LogFile = config.ExpandHome(*logFile)
		opts.LogDir = ""
	}
	if *logDir != "" {
		opts.LogDir = config.ExpandHome(*logDir)
		if *logFile == "" {
			opts.LogFile = ""
		}
	}
	if *logLevel != "" {
		opts.StdoutVerbosity = *logLevel
	}
	if errs := config.ValidateOptions(opts); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return ExitUsageError
	}

	log := logger.NewLogger(opts, os.Stderr)

	metricsProvider := metrics.NewPrometheusRegistryProvider()
	diag := metrics.NewDiagnostics(metricsProvider.Registry())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := newTracerProvider(ctx, *enableTracing)
	if err != nil {
		log.Warnf("Tracing unavailable, continuing without it: %v", err)
		tracerProvider, _ = tracing.NewNoOpProvider()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Tracer shutdown failed: %v", err)
		}
	}()

	t, err := timer.FromOptions(opts,
		timer.WithDiagnosticLogger(log),
		timer.WithMetrics(diag),
		timer.WithTracer(tracerProvider.GetTracer("verbo")),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	runner := command.NewRunner()
	result, runErr := runner.Run(ctx, cmdArgs[0], cmdArgs[1:], os.Stdin, os.Stdout, os.Stderr)
	t.Checkpoint(cmdArgs[0])
	t.Total("total")

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return ExitSigInt
		}
		log.Errorf("Failed to run command '%s': %v", cmdArgs[0], runErr)
		return ExitFailure
	}
	return result.ExitCode
}

func newTracerProvider(ctx context.Context, enabled bool) (*tracing.OtelTracerProvider, error) {
	if !enabled {
		return tracing.NewNoOpProvider()
	}
	return tracing.NewProviderFromEnv(ctx)
}
