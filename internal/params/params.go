// Package params provides declarative parameter schemas for convertors.
//
// Every convertor publishes a closed, static parameter schema: the set of
// parameter names it accepts, their types, whether they are required, and
// their defaults. The schema is used to validate raw task parameters before
// any record is processed, so configuration mistakes surface immediately
// rather than mid-stream.
//
// Column references get dedicated parameter types. An attribute parameter
// resolves a header name (or a numeric index) to a column position and fails
// hard when it cannot; an output attribute parameter resolves the same way
// but falls back to append-at-end, because naming a column that does not
// exist yet is how new columns are created.
package params

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
)

// Type identifies the value type of a parameter.
type Type int

const (
	// TypeString is a plain string value.
	TypeString Type = iota
	// TypeInt is an integer value.
	TypeInt
	// TypeFloat is a floating point value.
	TypeFloat
	// TypeBool is a boolean value.
	TypeBool
	// TypeStringList is a list of strings.
	TypeStringList
	// TypeAttribute is an input column reference, resolved to a column index.
	TypeAttribute
	// TypeOutputAttribute is an output column reference; unresolvable
	// references mean append-at-end.
	TypeOutputAttribute
	// TypeAttributeList is a list of input column references.
	TypeAttributeList
	// TypeDict is an ordered list of key-value pairs.
	TypeDict
)

// String returns the type name used in error messages.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeStringList:
		return "string list"
	case TypeAttribute:
		return "attribute"
	case TypeOutputAttribute:
		return "output attribute"
	case TypeAttributeList:
		return "attribute list"
	case TypeDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Param describes a single convertor parameter.
type Param struct {
	// Name is the parameter key as it appears in task files.
	Name string
	// Type is the expected value type.
	Type Type
	// Description is a short human-readable explanation.
	Description string
	// Required marks parameters that must be present in the task.
	Required bool
	// Default is the value used when the parameter is absent.
	// Ignored for required parameters.
	Default any
	// Validators run against the coerced value.
	Validators []Validator
}

// Set is an ordered collection of parameter definitions.
type Set struct {
	list   []*Param
	byName map[string]*Param
}

// NewSet creates a parameter set from definitions.
// Duplicate names panic: schemas are static program data, not user input.
func NewSet(defs ...*Param) *Set {
	s := &Set{byName: make(map[string]*Param, len(defs))}
	for _, p := range defs {
		if _, dup := s.byName[p.Name]; dup {
			panic(fmt.Sprintf("params: duplicate parameter %q", p.Name))
		}
		s.list = append(s.list, p)
		s.byName[p.Name] = p
	}
	return s
}

// Get returns the definition for a parameter name.
func (s *Set) Get(name string) (*Param, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Names returns parameter names in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.list))
	for i, p := range s.list {
		names[i] = p.Name
	}
	return names
}

// Len returns the number of declared parameters.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}

// All returns the definitions in declaration order.
func (s *Set) All() []*Param {
	return s.list
}

// Coerce converts a raw task value to the parameter's Go type and runs the
// validators. It does not resolve column references; resolution needs live
// headers and happens in the execution context.
func (p *Param) Coerce(value any) (any, error) {
	var coerced any
	var err error

	switch p.Type {
	case TypeString:
		coerced, err = toString(value)
	case TypeInt, TypeAttribute, TypeOutputAttribute:
		// Attribute values stay raw until resolution; they may be header
		// names or indexes. Plain ints coerce here.
		if p.Type == TypeInt {
			coerced, err = toInt(value)
		} else {
			coerced = value
		}
	case TypeFloat:
		coerced, err = toFloat(value)
	case TypeBool:
		coerced, err = toBool(value)
	case TypeStringList:
		coerced, err = toStringList(value)
	case TypeAttributeList:
		coerced = value
	case TypeDict:
		coerced, err = toDict(value)
	default:
		err = fmt.Errorf("unsupported parameter type %v", p.Type)
	}
	if err != nil {
		return nil, errs.WrapConfigError(err, "parameter %q", p.Name)
	}

	for _, v := range p.Validators {
		if err := v.Validate(coerced); err != nil {
			return nil, errs.WrapConfigError(err, "parameter %q", p.Name)
		}
	}
	return coerced, nil
}

// ResolveColumn resolves an input column reference against live headers.
// A string referring to an existing header resolves to the first matching
// position; otherwise the value must parse as a numeric index within range.
func ResolveColumn(value any, headers []string) (int, error) {
	if s, ok := value.(string); ok {
		for i, h := range headers {
			if h == s {
				return i, nil
			}
		}
	}
	idx, err := toInt(value)
	if err != nil {
		return 0, errs.NewConfigError("column %q not found in headers", value)
	}
	if idx < 0 || idx >= len(headers) {
		return 0, errs.NewConfigError("column index %d out of range (%d columns)", idx, len(headers))
	}
	return idx, nil
}

// ResolveOutputColumn resolves an output column reference.
// Unresolvable references return -1, meaning append at the end.
func ResolveOutputColumn(value any, headers []string) int {
	if value == nil {
		return -1
	}
	if s, ok := value.(string); ok {
		for i, h := range headers {
			if h == s {
				return i
			}
		}
	}
	idx, err := toInt(value)
	if err != nil || idx < 0 || idx >= len(headers) {
		return -1
	}
	return idx
}

// ResolveColumnList resolves a list of input column references.
func ResolveColumnList(value any, headers []string) ([]int, error) {
	items, err := toList(value)
	if err != nil {
		return nil, errs.WrapConfigError(err, "column list")
	}
	idxs := make([]int, 0, len(items))
	for _, item := range items {
		idx, err := ResolveColumn(item, headers)
		if err != nil {
			return nil, err
		}
		idxs = append(idxs, idx)
	}
	return idxs, nil
}

// EvalNumber parses a numeric cell value. Digit group separators (commas)
// are removed before parsing.
func EvalNumber(val string) (float64, error) {
	val = strings.ReplaceAll(val, ",", "")
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number", val)
	}
	return f, nil
}

func toString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected string, got %T", value)
	}
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", value)
	}
}

func toList(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, nil
	case []int:
		items := make([]any, len(v))
		for i, n := range v {
			items[i] = n
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", value)
	}
}

func toStringList(value any) ([]string, error) {
	// A bare string is accepted as a one-element list.
	if s, ok := value.(string); ok {
		return []string{s}, nil
	}
	items, err := toList(value)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := toString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// DictEntry is one key-value pair of a dict parameter. Dict parameters keep
// their entries ordered because convertors like column mapping derive the
// output column order from them.
type DictEntry struct {
	Key   string
	Value any
}

// toDict accepts either a plain object or a list of two-element pairs.
// Plain objects lose their original order during decoding, so their entries
// are sorted by key; the pair-list form preserves order and is what the
// mapping APIs emit.
func toDict(value any) ([]DictEntry, error) {
	switch v := value.(type) {
	case []DictEntry:
		return v, nil
	case map[string]string:
		entries := make([]DictEntry, 0, len(v))
		for k, item := range v {
			entries = append(entries, DictEntry{Key: k, Value: item})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return entries, nil
	case map[string]any:
		entries := make([]DictEntry, 0, len(v))
		for k, item := range v {
			entries = append(entries, DictEntry{Key: k, Value: item})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return entries, nil
	case []any:
		entries := make([]DictEntry, 0, len(v))
		for _, item := range v {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("expected [key, value] pair, got %v", item)
			}
			key, err := toString(pair[0])
			if err != nil {
				return nil, err
			}
			entries = append(entries, DictEntry{Key: key, Value: pair[1]})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("expected object or pair list, got %T", value)
	}
}
