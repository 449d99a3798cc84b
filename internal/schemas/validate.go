// Package schemas provides JSON Schema validation for the structured artifacts
// exchanged with the LLM. Every stage boundary validates its parsed output
// against one of the embedded schemas exactly once.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema names for the pipeline's stage artifacts
const (
	SchemaRequirements = "requirements.json"
	SchemaEvidenceMap  = "evidence_map.json"
	SchemaVerdict      = "verdict.json"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("schema validation failed (%s):\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or compiling the schema itself
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns a *ValidationError when the document does not conform.
func Validate(schemaName, jsonContent string) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		// The document itself could not be loaded (e.g. not valid JSON)
		return &SchemaLoadError{
			Schema:  schemaName,
			Message: "document could not be validated",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: schemaName,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// load compiles and caches an embedded schema
func load(schemaName string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[schemaName]; ok {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return nil, &SchemaLoadError{Schema: schemaName, Message: "unknown schema", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Schema: schemaName, Message: "schema failed to compile", Cause: err}
	}

	compiled[schemaName] = schema
	return schema, nil
}
