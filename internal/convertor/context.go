package convertor

import (
	"log/slog"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/collection"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// Context data keys shared between the driver and convertors.
const (
	// DataHeaders holds the header row captured during preprocessing.
	DataHeaders = "headers"
	// DataNumOfColumns holds the table width captured during preprocessing.
	DataNumOfColumns = "num_of_columns"
)

// Context carries everything one convertor run needs: the raw task
// parameters, the input and output collections, the record cursor and a
// scratch data store.
//
// Parameter access is schema-checked: reading a parameter the convertor
// never declared is a programming error and fails, and required parameters
// are verified at construction time, before any record is consumed.
type Context struct {
	conv      Convertor
	rawParams map[string]any
	input     collection.Input
	output    collection.Output
	current   []string
	data      map[string]any
}

// NewContext builds a context and validates the raw parameters against the
// convertor's schema: unknown parameter names are warned about and ignored,
// missing required parameters are a fatal configuration error.
func NewContext(conv Convertor, rawParams map[string]any, input collection.Input, output collection.Output) (*Context, error) {
	if rawParams == nil {
		rawParams = map[string]any{}
	}
	meta := conv.Meta()
	schema := meta.Params

	for key := range rawParams {
		if _, ok := schema.Get(key); !ok {
			logger.Warn("parameter not recognized by convertor",
				slog.String("convertor", meta.Key),
				slog.String("param", key))
		}
	}
	for _, p := range schema.All() {
		if p.Required {
			if _, ok := rawParams[p.Name]; !ok {
				return nil, errs.NewConfigError(
					"convertor %q: required parameter %q is missing", meta.Key, p.Name)
			}
		}
	}

	return &Context{
		conv:      conv,
		rawParams: rawParams,
		input:     input,
		output:    output,
		data:      map[string]any{},
	}, nil
}

// Open opens the underlying collections.
func (c *Context) Open() error {
	if err := c.input.Open(); err != nil {
		return err
	}
	return c.output.Open()
}

// Close closes the underlying collections.
func (c *Context) Close() error {
	if err := c.input.Close(); err != nil {
		return err
	}
	return c.output.Close()
}

// Reset rewinds the input to the header row.
func (c *Context) Reset() error {
	return c.input.Reset()
}

// Next advances the record cursor.
func (c *Context) Next() ([]string, error) {
	record, err := c.input.Next()
	if err != nil {
		return nil, err
	}
	c.current = record
	return record, nil
}

// Current returns the record at the cursor.
func (c *Context) Current() []string {
	return c.current
}

// Output appends a record to the output collection.
func (c *Context) Output(record []string) error {
	return c.output.Append(record)
}

// SetData stores a named context-dependent value.
func (c *Context) SetData(key string, value any) {
	c.data[key] = value
}

// GetData retrieves a value stored with SetData.
func (c *Context) GetData(key string) (any, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, errs.NewConfigError("context data %q is not set", key)
	}
	return v, nil
}

// Headers returns the header row recorded during preprocessing.
func (c *Context) Headers() ([]string, error) {
	v, err := c.GetData(DataHeaders)
	if err != nil {
		return nil, err
	}
	headers, ok := v.([]string)
	if !ok {
		return nil, errs.NewConfigError("context data %q has unexpected type", DataHeaders)
	}
	return headers, nil
}

// Raw returns the raw parameter value after schema lookup and coercion.
// Absent optional parameters yield the declared default (nil when none).
func (c *Context) Raw(name string) (any, error) {
	meta := c.conv.Meta()
	p, ok := meta.Params.Get(name)
	if !ok {
		return nil, errs.NewConfigError(
			"convertor %q: access to undeclared parameter %q", meta.Key, name)
	}
	value, present := c.rawParams[name]
	if !present || value == nil {
		if p.Required {
			return nil, errs.NewConfigError(
				"convertor %q: required parameter %q is missing", meta.Key, name)
		}
		return p.Default, nil
	}
	return p.Coerce(value)
}

// Has reports whether the parameter was explicitly provided (and non-nil).
func (c *Context) Has(name string) bool {
	v, ok := c.rawParams[name]
	return ok && v != nil
}

// String returns a string parameter, or its default.
func (c *Context) String(name string) (string, error) {
	v, err := c.Raw(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errs.NewConfigError("parameter %q: expected string, got %T", name, v)
	}
	return s, nil
}

// Int returns an integer parameter, or its default.
func (c *Context) Int(name string) (int, error) {
	v, err := c.Raw(name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, errs.NewConfigError("parameter %q: expected int, got %T", name, v)
	}
	return n, nil
}

// Float returns a float parameter, or its default.
func (c *Context) Float(name string) (float64, error) {
	v, err := c.Raw(name)
	if err != nil {
		return 0, err
	}
	switch f := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	default:
		return 0, errs.NewConfigError("parameter %q: expected number, got %T", name, v)
	}
}

// Bool returns a boolean parameter, or its default.
func (c *Context) Bool(name string) (bool, error) {
	v, err := c.Raw(name)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errs.NewConfigError("parameter %q: expected bool, got %T", name, v)
	}
	return b, nil
}

// StringList returns a string-list parameter, or its default.
func (c *Context) StringList(name string) ([]string, error) {
	v, err := c.Raw(name)
	if err != nil {
		return nil, err
	}
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	default:
		return nil, errs.NewConfigError("parameter %q: expected string list, got %T", name, v)
	}
}

// Dict returns the ordered entries of a dict parameter, or nil.
func (c *Context) Dict(name string) ([]params.DictEntry, error) {
	v, err := c.Raw(name)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case nil:
		return nil, nil
	case []params.DictEntry:
		return m, nil
	default:
		return nil, errs.NewConfigError("parameter %q: expected object, got %T", name, v)
	}
}

// InputColumn resolves an input column reference parameter to a column
// index. Unresolvable references are a fatal configuration error.
func (c *Context) InputColumn(name string) (int, error) {
	v, err := c.Raw(name)
	if err != nil {
		return 0, err
	}
	headers, err := c.Headers()
	if err != nil {
		return 0, err
	}
	idx, err := params.ResolveColumn(v, headers)
	if err != nil {
		return 0, errs.WrapConfigError(err, "parameter %q", name)
	}
	return idx, nil
}

// InputColumns resolves a list of input column references.
func (c *Context) InputColumns(name string) ([]int, error) {
	v, err := c.Raw(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	headers, err := c.Headers()
	if err != nil {
		return nil, err
	}
	idxs, err := params.ResolveColumnList(v, headers)
	if err != nil {
		return nil, errs.WrapConfigError(err, "parameter %q", name)
	}
	return idxs, nil
}

// OutputColumn resolves an output column reference parameter.
// Absent or unresolvable references return -1, meaning append at the end.
func (c *Context) OutputColumn(name string) (int, error) {
	v, err := c.Raw(name)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return -1, nil
	}
	headers, err := c.Headers()
	if err != nil {
		return 0, err
	}
	return params.ResolveOutputColumn(v, headers), nil
}
