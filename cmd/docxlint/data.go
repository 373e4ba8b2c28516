package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/docxtools/docxlint/internal/schemas"
)

// loadDataContext reads and parses a data-context JSON file. The bundled
// schema check is advisory: a context that fails it gets a warning on
// stderr, only unreadable or malformed JSON is fatal.
func loadDataContext(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}

	if err := schemas.ValidateDataContextFile(path); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		switch {
		case errors.As(err, &validationErr):
			_, _ = fmt.Fprintf(os.Stderr, "Warning: data context does not validate against schema: %v\n", err)
		case errors.As(err, &schemaLoadErr):
			_, _ = fmt.Fprintf(os.Stderr, "Warning: could not validate data context (schema loading failed): %v\n", err)
		default:
			return nil, err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data JSON: %w", err)
	}

	return data, nil
}
