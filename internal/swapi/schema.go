package swapi

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schemas for the parts of each response holonet reads. A body that fails
// validation is reported as ErrMalformed instead of decoding to zero values.
var (
	pageSchema = gojsonschema.NewGoLoader(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":      map[string]any{"type": "string"},
						"homeworld": map[string]any{"type": []string{"string", "null"}},
						"starships": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"species":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []string{"name"},
				},
			},
		},
		"required": []string{"results"},
	})

	starshipSchema = objectSchema("name", "cargo_capacity", "starship_class")
	planetSchema   = objectSchema("name", "population", "climate")
	speciesSchema  = objectSchema("name", "language", "average_lifespan")
)

func objectSchema(fields ...string) gojsonschema.JSONLoader {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}
	return gojsonschema.NewGoLoader(map[string]any{
		"type":       "object",
		"properties": props,
		"required":   fields,
	})
}

// validate checks body against schema and wraps any violation in ErrMalformed.
func validate(schema gojsonschema.JSONLoader, body []byte, source string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, source, err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s: %s", ErrMalformed, source, strings.Join(errs, ", "))
}
