package config

import (
	"fmt"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"
	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"
)

// ValidateOptions performs logical validation of an Options value: rules
// that cross fields or depend on the closed level set, which JSON Schema
// alone cannot express. It returns a slice of all validation errors found.
func ValidateOptions(o *Options) []error {
	var errs []error

	// A file target and a directory target are mutually exclusive. This is
	// the one construction-time failure that reaches the caller.
	if o.LogFile != "" && o.LogDir != "" {
		errs = append(errs, verboerrors.NewValidationError("cannot specify both 'log_file' and 'log_dir'", nil))
	}

	if o.StdoutVerbosity != "" {
		if _, ok := level.Parse(o.StdoutVerbosity); !ok {
			errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'stdout_verbosity' has unknown level name: '%s'", o.StdoutVerbosity), nil))
		}
	}
	if o.FileVerbosity != "" {
		if _, ok := level.Parse(o.FileVerbosity); !ok {
			errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'file_verbosity' has unknown level name: '%s'", o.FileVerbosity), nil))
		}
	}

	if o.NumBackups < 1 {
		errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'num_backups' must be at least 1, got %d", o.NumBackups), nil))
	}
	if o.MaxFileSizeKB < 1 {
		errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'max_file_size_kb' must be at least 1, got %d", o.MaxFileSizeKB), nil))
	}

	switch o.TimeStyle {
	case "", TimeStyleEU, TimeStyleUS:
	default:
		errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'time_style' must be '%s' or '%s', got '%s'", TimeStyleEU, TimeStyleUS, o.TimeStyle), nil))
	}

	switch o.LevelStyle {
	case "", string(level.StyleUpper), string(level.StyleLower), string(level.StyleShort):
	default:
		errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'level_style' has unknown style: '%s'", o.LevelStyle), nil))
	}

	switch o.Format {
	case "", FormatText, FormatJSON:
	default:
		errs = append(errs, verboerrors.NewValidationError(fmt.Sprintf("'format' must be '%s' or '%s', got '%s'", FormatText, FormatJSON, o.Format), nil))
	}

	return errs
}
