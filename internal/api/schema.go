package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// questionSchema describes what the client is willing to run a sprint on.
// The backend generates questions with an LLM, so malformed payloads are a
// real possibility and are rejected up front.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"question_text": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "string",
			},
			"minProperties": 2,
		},
	},
	"required": []any{"id", "question_text", "options"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled question schema, compiling it once.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := json.Marshal(questionSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("question.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("question.json")
	})
	return compiledSchema, compileErr
}

// validateQuestion checks one generated question against the schema.
func validateQuestion(q Question) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	// The validator wants a parsed JSON value, not a struct.
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return fmt.Errorf("reparse question: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("question %d: %w", q.ID, err)
	}
	return nil
}
