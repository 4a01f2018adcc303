package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"
)

// SupportedSchemaVersionConstraint defines the SemVer constraint that loaded
// config documents must satisfy. A v1 library only accepts v1 configs.
const SupportedSchemaVersionConstraint = "v1"

// LoadOptions parses the given YAML bytes into Options, validating against
// the embedded JSON schema, checking schema version compatibility, expanding
// home-relative paths and performing logical validation. The result starts
// from DefaultOptions, so absent fields keep their defaults.
func LoadOptions(optionsYAML []byte, filePathHint string) (*Options, error) {
	if len(optionsYAML) == 0 {
		return nil, verboerrors.NewConfigError("config content cannot be empty", nil)
	}

	// Step 1: Validate against the JSON Schema for basic structure and types.
	if err := ValidateWithSchema(optionsYAML); err != nil {
		return nil, verboerrors.NewConfigError(fmt.Sprintf("config '%s' failed schema validation", filePathHint), err)
	}

	// Step 2: Unmarshal over the defaults using strict decoding so typos in
	// option names are caught early instead of silently ignored.
	opts := DefaultOptions()
	if err := yamlUnmarshalStrict(optionsYAML, opts); err != nil {
		return nil, verboerrors.NewConfigError(fmt.Sprintf("failed to parse config YAML '%s'", filePathHint), err)
	}
	opts.FilePath = filePathHint

	// Step 3: Check schema version compatibility.
	if opts.SchemaVersion == "" {
		return nil, verboerrors.NewValidationError(fmt.Sprintf("config '%s' is missing required 'schemaVersion' field", filePathHint), nil)
	}
	schemaSemVer := opts.SchemaVersion
	if !strings.HasPrefix(schemaSemVer, "v") {
		schemaSemVer = "v" + schemaSemVer
	}
	if !semver.IsValid(schemaSemVer) {
		return nil, verboerrors.NewValidationError(fmt.Sprintf("config '%s' has invalid 'schemaVersion' format: '%s'", filePathHint, opts.SchemaVersion), nil)
	}
	if semver.Major(schemaSemVer) != SupportedSchemaVersionConstraint {
		return nil, verboerrors.NewValidationError(
			fmt.Sprintf("config '%s' schemaVersion '%s' is not compatible with library requirement '%s'",
				filePathHint, opts.SchemaVersion, SupportedSchemaVersionConstraint),
			nil,
		)
	}

	// Step 4: Expand home-relative targets before validation so downstream
	// consumers always see absolute-ish paths.
	opts.LogFile = ExpandHome(opts.LogFile)
	opts.LogDir = ExpandHome(opts.LogDir)

	// Step 5: Perform detailed logical validation on the Go struct.
	validationErrs := ValidateOptions(opts)
	if len(validationErrs) > 0 {
		var errorMessages []string
		for _, vErr := range validationErrs {
			errorMessages = append(errorMessages, vErr.Error())
		}
		combinedMessage := fmt.Sprintf("config '%s' has %d validation error(s):\n- %s",
			filePathHint, len(errorMessages), strings.Join(errorMessages, "\n- "))
		return nil, verboerrors.NewValidationError(combinedMessage, validationErrs[0])
	}

	return opts, nil
}

// LoadOptionsFromFile is a convenience function to read a config from disk.
func LoadOptionsFromFile(filePath string) (*Options, error) {
	if filePath == "" {
		return nil, verboerrors.NewConfigError("config file path cannot be empty", nil)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, verboerrors.NewConfigError(fmt.Sprintf("failed to get absolute path for '%s'", filePath), err)
	}
	yamlFile, err := os.ReadFile(absPath)
	if err != nil {
		return nil, verboerrors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", absPath), err)
	}
	return LoadOptions(yamlFile, absPath)
}

// ExpandHome replaces a leading "~" in path with the current user's home
// directory. Paths without the marker, and failures to resolve the home
// directory, leave the path unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// yamlUnmarshalStrict provides stricter YAML unmarshalling by disallowing
// unknown fields. This helps users catch typos or unsupported options early.
func yamlUnmarshalStrict(in []byte, out interface{}) error {
	decoder := yaml.NewDecoder(strings.NewReader(string(in)))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("YAML parsing error: %w", err)
	}
	return nil
}
