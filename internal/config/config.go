package config

import (
	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"
	"github.com/verbo-labs/verbo/pkg/verbo/v1/level"
)

// Constants for the time display style of log timestamps.
const (
	TimeStyleEU = "EU" // 24-hour clock, e.g. 15:45:01
	TimeStyleUS = "US" // 12-hour clock, e.g. 03:45:01 PM
)

// Constants for the log output format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultLogFileName is the file created inside a log directory target when
// only a directory is configured.
const DefaultLogFileName = "verbo.log"

// Options is the complete logging configuration. It is an explicit value
// passed to constructors; there is no process-wide option singleton, so two
// components with different Options never interfere.
type Options struct {
	// SchemaVersion declares which config schema the document was written
	// against. Required in config files; filled by DefaultOptions otherwise.
	SchemaVersion string `yaml:"schemaVersion"`

	// LogFile is the target log file path. A leading "~" is expanded to the
	// user's home directory. Mutually exclusive with LogDir.
	LogFile string `yaml:"log_file,omitempty"`
	// LogDir is a target directory; the log file is resolved to
	// DefaultLogFileName inside it. Mutually exclusive with LogFile.
	LogDir string `yaml:"log_dir,omitempty"`

	// StdoutVerbosity is the verbosity ceiling for the console stream.
	// Messages logged at a level above the ceiling are discarded; SILENT
	// discards everything.
	StdoutVerbosity string `yaml:"stdout_verbosity,omitempty"`
	// FileVerbosity is the verbosity ceiling for the log file stream.
	FileVerbosity string `yaml:"file_verbosity,omitempty"`

	// Rotating enables numbered-backup rotation of the log file. Defaults
	// to true when unset.
	Rotating *bool `yaml:"rotating,omitempty"`
	// NumBackups bounds the rotation chain: backups beyond this count are
	// discarded silently.
	NumBackups int `yaml:"num_backups,omitempty"`
	// MaxFileSizeKB bounds the live log file; when an append would find the
	// file above this size the rotation sequence runs first.
	MaxFileSizeKB int `yaml:"max_file_size_kb,omitempty"`

	// TimeStyle selects the timestamp rendering (TimeStyleEU or TimeStyleUS).
	TimeStyle string `yaml:"time_style,omitempty"`
	// LevelStyle selects how level names are rendered ("upper", "lower",
	// "short").
	LevelStyle string `yaml:"level_style,omitempty"`
	// Format selects the console handler format (FormatText or FormatJSON).
	Format string `yaml:"format,omitempty"`

	// FilePath is an internal field holding the source config path for
	// context in logging and error messages. It is not parsed from YAML.
	FilePath string `yaml:"-"`
}

// DefaultOptions returns the options in effect when no config file is given.
func DefaultOptions() *Options {
	rotating := true
	return &Options{
		SchemaVersion:   "v1.0.0",
		StdoutVerbosity: level.Info.String(),
		FileVerbosity:   level.Info.String(),
		Rotating:        &rotating,
		NumBackups:      8,
		MaxFileSizeKB:   10,
		TimeStyle:       TimeStyleEU,
		LevelStyle:      string(level.StyleUpper),
		Format:          FormatText,
	}
}

// StdoutLevel returns the parsed console verbosity ceiling.
func (o *Options) StdoutLevel() level.Level {
	return level.MustParse(o.StdoutVerbosity)
}

// FileLevel returns the parsed log-file verbosity ceiling.
func (o *Options) FileLevel() level.Level {
	return level.MustParse(o.FileVerbosity)
}

// RotationEnabled reports whether numbered-backup rotation is on.
func (o *Options) RotationEnabled() bool {
	return o.Rotating == nil || *o.Rotating
}

// Style returns the configured level display style.
func (o *Options) Style() level.Style {
	switch o.LevelStyle {
	case string(level.StyleLower):
		return level.StyleLower
	case string(level.StyleShort):
		return level.StyleShort
	default:
		return level.StyleUpper
	}
}

// TimeLayout returns the Go time layout for the configured time style.
func (o *Options) TimeLayout() string {
	if o.TimeStyle == TimeStyleUS {
		return "03:04:05 PM"
	}
	return "15:04:05"
}

// SetDefaultLogger is the one surviving stub of the original configuration
// surface. Swapping the backing logger is already covered by the public
// Logger interface, so this remains an explicit signal rather than behavior.
func (o *Options) SetDefaultLogger(loggerObj interface{}) error {
	return verboerrors.NewNotImplementedError("set_default_logger")
}
