package params

import "fmt"

// Validator checks a coerced parameter value.
type Validator interface {
	Validate(value any) error
}

// Range validates that a numeric value falls within [Min, Max].
// A nil bound is unbounded on that side.
type Range struct {
	Min *float64
	Max *float64
}

// Validate implements Validator.
func (r Range) Validate(value any) error {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case float64:
		f = v
	default:
		return fmt.Errorf("range validator: expected number, got %T", value)
	}
	if r.Min != nil && f < *r.Min {
		return fmt.Errorf("value %v is below minimum %v", f, *r.Min)
	}
	if r.Max != nil && f > *r.Max {
		return fmt.Errorf("value %v is above maximum %v", f, *r.Max)
	}
	return nil
}

// IntRange builds a Range validator with integer bounds.
func IntRange(min, max int) Range {
	lo, hi := float64(min), float64(max)
	return Range{Min: &lo, Max: &hi}
}

// Enum validates that a string value is one of a fixed set.
type Enum struct {
	Values []string
}

// Validate implements Validator.
func (e Enum) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("enum validator: expected string, got %T", value)
	}
	for _, v := range e.Values {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of %v", s, e.Values)
}

// NonEmpty validates that a string or list value is not empty.
type NonEmpty struct{}

// Validate implements Validator.
func (NonEmpty) Validate(value any) error {
	switch v := value.(type) {
	case string:
		if v == "" {
			return fmt.Errorf("value must not be empty")
		}
	case []string:
		if len(v) == 0 {
			return fmt.Errorf("list must not be empty")
		}
	case []any:
		if len(v) == 0 {
			return fmt.Errorf("list must not be empty")
		}
	}
	return nil
}
