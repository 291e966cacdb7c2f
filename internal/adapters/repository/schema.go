package repository

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/todoapp/core/internal/domain/entities"
	"github.com/todoapp/core/internal/ports"
)

const tasksSchemaURL = "mem://todoapp/tasks.schema.json"

const tasksSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed", "priority", "created_at", "updated_at"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "description": {"type": ["string", "null"]},
      "completed": {"type": "boolean"},
      "priority": {"type": "string"},
      "due_date": {"type": ["string", "null"]},
      "created_at": {"type": "string", "format": "date-time"},
      "updated_at": {"type": "string", "format": "date-time"},
      "attachments": {
        "type": ["array", "null"],
        "items": {
          "type": "object",
          "required": ["id", "name", "size", "type", "data", "created_at"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string"},
            "size": {"type": "integer", "minimum": 0},
            "type": {"type": "string"},
            "data": {"type": "string"},
            "created_at": {"type": "string", "format": "date-time"}
          }
        }
      }
    }
  }
}`

// SchemaValidatorImpl implements DocumentValidator with an embedded JSON Schema
// plus an id uniqueness check the schema language can't express.
type SchemaValidatorImpl struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the task document schema.
func NewSchemaValidator() (ports.DocumentValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true

	if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchema)); err != nil {
		return nil, fmt.Errorf("add tasks schema: %w", err)
	}
	schema, err := compiler.Compile(tasksSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile tasks schema: %w", err)
	}

	return &SchemaValidatorImpl{schema: schema}, nil
}

func (v *SchemaValidatorImpl) ValidateTasks(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrInvalidDocument, err)
	}

	if err := v.schema.Validate(doc); err != nil {
		var msgs []string
		collectSchemaErrors(&msgs, err)
		return fmt.Errorf("%w: %s", entities.ErrInvalidDocument, strings.Join(msgs, "; "))
	}

	items, _ := doc.([]interface{})
	seen := make(map[string]int, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]interface{})
		id, _ := obj["id"].(string)
		if first, ok := seen[id]; ok {
			return fmt.Errorf("%w: [%d].id duplicates [%d].id %q", entities.ErrInvalidDocument, i, first, id)
		}
		seen[id] = i
	}

	return nil
}

func collectSchemaErrors(msgs *[]string, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*msgs = append(*msgs, err.Error())
		return
	}
	if len(ve.Causes) == 0 {
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", jsonPointerToPath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(msgs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return "$"
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
