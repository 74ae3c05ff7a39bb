package task

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// taskSchema is the embedded JSON schema for task files. A file holds one
// task object or an array of them; keys other than convertor, params and
// note are rejected at the schema level.
const taskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://tablelinker.example/schemas/task.json",
  "oneOf": [
    {"$ref": "#/$defs/task"},
    {"type": "array", "items": {"$ref": "#/$defs/task"}, "minItems": 1}
  ],
  "$defs": {
    "task": {
      "type": "object",
      "required": ["convertor", "params"],
      "additionalProperties": false,
      "properties": {
        "convertor": {"type": "string", "minLength": 1},
        "params": {"type": ["object", "null"]},
        "note": {"type": ["string", "null"]}
      }
    }
  }
}`

// ValidationError describes a schema violation in a task file.
type ValidationError struct {
	// Path is the JSON pointer to the offending location.
	Path string
	// Message is the human-readable violation description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compileSchema compiles the embedded task schema once.
func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(taskSchema))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling task schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("task.json", doc); err != nil {
			schemaErr = fmt.Errorf("adding task schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("task.json")
	})
	return compiledSchema, schemaErr
}

// ValidateData validates parsed task file data against the schema.
// Returns one ValidationError per violation.
func ValidateData(data any) []*ValidationError {
	schema, err := compileSchema()
	if err != nil {
		return []*ValidationError{{Message: err.Error()}}
	}
	if err := schema.Validate(data); err != nil {
		return collectValidationErrors(err)
	}
	return nil
}

// collectValidationErrors flattens a jsonschema validation error tree.
func collectValidationErrors(err error) []*ValidationError {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []*ValidationError{{Message: err.Error()}}
	}
	printer := message.NewPrinter(language.English)
	var out []*ValidationError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, &ValidationError{
				Path:    "/" + strings.Join(e.InstanceLocation, "/"),
				Message: e.ErrorKind.LocalizedString(printer),
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return out
}
