package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// recordsSchema describes the backing file: an array of memory records.
const recordsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text"],
		"properties": {
			"id":         {"type": "string", "minLength": 1},
			"text":       {"type": "string", "minLength": 1},
			"keywords":   {"type": "array", "items": {"type": "string"}},
			"always":     {"type": "boolean"},
			"created_at": {"type": "string"}
		}
	}
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// validateRaw checks raw file contents against the record schema before
// unmarshalling, so a mangled file is rejected as a whole instead of
// half-loading.
func validateRaw(data []byte) error {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordsSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("store: compile schema: %w", schemaErr)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("store: schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("store: invalid memory file:\n- %s", strings.Join(errs, "\n- "))
}
