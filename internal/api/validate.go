package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Generation payloads are validated against a JSON Schema before they
// reach any cache, so a contract drift on the backend surfaces as a
// DecodingError instead of silently cached garbage.

var vocabularySetSchema = map[string]any{
	"type":     "object",
	"required": []any{"categories"},
	"properties": map[string]any{
		"place":           map[string]any{"type": "string"},
		"quiz_session_id": map[string]any{"type": "string"},
		"session_id":      map[string]any{"type": "string"},
		"categories": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"category", "words"},
				"properties": map[string]any{
					"category": map[string]any{"type": "string"},
					"words": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"native_text", "target_text"},
							"properties": map[string]any{
								"native_text":     map[string]any{"type": "string"},
								"target_text":     map[string]any{"type": "string"},
								"transliteration": map[string]any{"type": "string"},
								"clicked":         map[string]any{"type": "boolean"},
								"is_correct":      map[string]any{"type": "boolean"},
								"attempts":        map[string]any{"type": "integer"},
							},
						},
					},
				},
			},
		},
	},
}

var quizSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"quiz_session_id": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw against the named schema definition and
// returns a *DecodingError on any failure.
func validatePayload(name string, definition map[string]any, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &DecodingError{Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(name, definition)
	if err != nil {
		return &DecodingError{Body: raw, Err: fmt.Errorf("compile schema %q: %w", name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &DecodingError{Body: raw, Err: fmt.Errorf("schema %q: %w", name, err)}
	}
	return nil
}

func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value; round-trip the definition
	// to normalize Go literals into plain any values.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
