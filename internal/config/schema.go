package config

import (
	_ "embed" // Required for //go:embed directive
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	verboerrors "github.com/verbo-labs/verbo/pkg/verbo/v1/errors"
)

// Embed the schema file content directly into the compiled binary.
//
//go:embed verbo_schema_v1.0.0.json
var schemaV1Bytes []byte

var (
	// schemaV1 holds the compiled schema object for efficient validation.
	schemaV1 *gojsonschema.Schema
	// schemaOnce ensures the schema is loaded and compiled only once.
	schemaOnce sync.Once
	// schemaErr stores any error encountered during the one-time schema load.
	schemaErr error
)

// loadSchema ensures the embedded schema is loaded and compiled thread-safely,
// only once. It returns the compiled schema or an error if compiling failed.
func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		if len(schemaV1Bytes) == 0 {
			schemaErr = verboerrors.NewConfigError("embedded schema 'verbo_schema_v1.0.0.json' is empty or not found (ensure file exists in internal/config/)", nil)
			return
		}
		schemaV1, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaV1Bytes))
		if schemaErr != nil {
			schemaErr = verboerrors.NewConfigError("failed to compile embedded schema 'verbo_schema_v1.0.0.json'", schemaErr)
		}
	})
	return schemaV1, schemaErr
}

// ValidateWithSchema validates the given YAML document bytes against the
// embedded v1.0.0 options schema. gojsonschema works on JSON-like Go values,
// so the YAML is first unmarshalled into a generic interface{}.
func ValidateWithSchema(documentYAML []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	var jsonData interface{}
	if err := yaml.Unmarshal(documentYAML, &jsonData); err != nil {
		return verboerrors.NewConfigError("failed to parse config YAML for schema validation", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(jsonData))
	if err != nil {
		return verboerrors.NewConfigError("schema validation process failed", err)
	}

	if !result.Valid() {
		errMsg := "config failed JSON schema validation:"
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "(root)" || field == "" {
				field = desc.Context().String()
			}
			errMsg += fmt.Sprintf("\n  - Field '%s': %s", field, desc.Description())
		}
		return verboerrors.NewValidationError(errMsg, nil)
	}

	return nil
}
