package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/Makepad-fr/tada/todos.schema.json"

// todoSchema describes the file Save writes. Loading never depends on it;
// it only backs Check.
const todoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$ref": "#/$defs/forest",
  "$defs": {
    "forest": {
      "type": "array",
      "items": { "$ref": "#/$defs/todo" }
    },
    "todo": {
      "type": "object",
      "required": ["id", "title", "completed", "createdAt", "priority", "children"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "completed": { "type": "boolean" },
        "createdAt": { "type": "string" },
        "priority": { "enum": ["high", "medium", "low"] },
        "children": { "$ref": "#/$defs/forest" }
      }
    }
  }
}`

// Issue is one schema violation, located by a dotted JSON path.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Check validates the data file against the todo schema and reports what
// the normalizer would have to repair on the next load. A missing file has
// no issues.
func (s *Store) Check() ([]Issue, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return CheckValue(raw)
}

// CheckValue validates an already decoded value.
func CheckValue(raw any) ([]Issue, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(todoSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	err = schema.Validate(raw)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var issues []Issue
	collect(&issues, ve)
	return issues, nil
}

func collect(issues *[]Issue, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*issues = append(*issues, Issue{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message})
		return
	}
	for _, cause := range ve.Causes {
		collect(issues, cause)
	}
}

// pointerToPath turns /0/children/2/title into [0].children[2].title.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
