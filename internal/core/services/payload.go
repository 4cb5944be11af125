package services

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

const habitItemSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string"},
		"emoji": {"type": "string"}
	}
}`

var (
	listsSchema = mustCompileSchema("lists.json", `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["id", "name"],
			"properties": {
				"id": {"type": "string", "minLength": 1},
				"name": {"type": "string"},
				"morning": {"type": ["array", "null"], "items": `+habitItemSchema+`},
				"afternoon": {"type": ["array", "null"], "items": `+habitItemSchema+`},
				"evening": {"type": ["array", "null"], "items": `+habitItemSchema+`}
			}
		}
	}`)

	scheduleSchema = mustCompileSchema("schedule.json", `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["day"],
			"properties": {
				"day": {"type": "string"},
				"listId": {"type": ["string", "null"]},
				"listName": {"type": ["string", "null"]}
			}
		}
	}`)

	librarySchema = mustCompileSchema("habit_library.json", `{
		"type": "array",
		"items": `+habitItemSchema+`
	}`)
)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", name, err))
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// decodePayload validates raw against schema before decoding into dst.
func decodePayload(schema *jsonschema.Schema, raw string, dst any) error {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecordMalformed, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecordMalformed, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRecordMalformed, err)
	}
	return nil
}

func encodePayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(data), nil
}
