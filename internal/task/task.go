package task

import (
	"fmt"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/registry"
)

// Task names a convertor run: the convertor key, its raw parameters, and an
// optional free-form note logged when the task executes.
type Task struct {
	Convertor string
	Params    map[string]any
	Note      string
}

// String returns the convertor key, with the note when present.
func (t *Task) String() string {
	if t.Note != "" {
		return fmt.Sprintf("%s(%s)", t.Convertor, t.Note)
	}
	return t.Convertor
}

// allowed task object keys
var allowedKeys = map[string]bool{
	"convertor": true,
	"params":    true,
	"note":      true,
}

// Create builds a Task from a decoded task object, checking its keys.
//
// The key set must be exactly {convertor, params, note}: unknown keys are an
// error, convertor and params are required, and the convertor must resolve
// in the registry. Parameter values are deliberately not checked here; they
// are validated against the convertor's schema when the task runs.
func Create(raw map[string]any) (*Task, error) {
	var unknown []string
	for key := range raw {
		if !allowedKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return nil, errs.NewConfigError("task uses undefined keys %v", unknown)
	}

	for _, key := range []string{"convertor", "params"} {
		if _, ok := raw[key]; !ok {
			return nil, errs.NewConfigError("task key %q is required", key)
		}
	}

	name, ok := raw["convertor"].(string)
	if !ok || name == "" {
		return nil, errs.NewConfigError("task key \"convertor\" must be a non-empty string")
	}
	if !registry.Exists(name) {
		return nil, errs.NewConfigError("convertor %q is not registered", name)
	}

	t := &Task{Convertor: name}
	switch p := raw["params"].(type) {
	case nil:
		t.Params = map[string]any{}
	case map[string]any:
		t.Params = p
	default:
		return nil, errs.NewConfigError("task key \"params\" must be an object")
	}
	if note, ok := raw["note"].(string); ok {
		t.Note = note
	}
	return t, nil
}

// FromFiles reads, validates and parses one or more task files.
// Each file may hold a single task object or an array of tasks; the result
// is always a flat list in file order.
func FromFiles(paths ...string) ([]*Task, error) {
	var all []*Task
	for _, path := range paths {
		data, err := ParseFile(path)
		if err != nil {
			return nil, asEngineError(err)
		}
		if verrs := ValidateData(data); len(verrs) > 0 {
			return nil, errs.NewConfigError("task file %q: %s", path, verrs[0].Error())
		}

		var rawTasks []any
		switch v := data.(type) {
		case map[string]any:
			rawTasks = []any{v}
		case []any:
			rawTasks = v
		default:
			return nil, errs.NewConfigError("task file %q: expected object or array", path)
		}

		for _, rawTask := range rawTasks {
			obj, ok := rawTask.(map[string]any)
			if !ok {
				return nil, errs.NewConfigError("task file %q: task is not an object", path)
			}
			t, err := Create(obj)
			if err != nil {
				return nil, errs.WrapConfigError(err, "task file %q", path)
			}
			all = append(all, t)
		}
	}
	return all, nil
}
