package todos

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const itemSchemaJSON = `{
  "type": "object",
  "required": ["id", "title"],
  "properties": {
    "id": {"type": "integer"},
    "title": {"type": "string"},
    "userId": {"type": "integer"},
    "completed": {"type": "boolean"}
  }
}`

const listSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string"},
      "userId": {"type": "integer"},
      "completed": {"type": "boolean"}
    }
  }
}`

var (
	itemSchema = jsonschema.MustCompileString("todo-item.json", itemSchemaJSON)
	listSchema = jsonschema.MustCompileString("todo-list.json", listSchemaJSON)
)

func validateItem(body []byte) error {
	return validatePayload(itemSchema, "todo", body)
}

func validateList(body []byte) error {
	return validatePayload(listSchema, "todo list", body)
}

func validatePayload(schema *jsonschema.Schema, resource string, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &SchemaError{Resource: resource, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return &SchemaError{Resource: resource, Err: err}
	}
	return nil
}
