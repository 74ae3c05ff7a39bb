package collection

import (
	"io"
	"strconv"
	"strings"
)

// ColumnType is the inferred datatype of a column.
type ColumnType int

const (
	// TypeText is the default: values pass through unchanged.
	TypeText ColumnType = iota
	// TypeInt marks columns whose sampled values all parse as integers.
	TypeInt
	// TypeFloat marks columns whose sampled values all parse as numbers.
	TypeFloat
)

// typeScanRows is the number of data rows sampled for type inference.
const typeScanRows = 20

// TypedInput wraps an Input and normalizes numeric cells on read.
// Column types are inferred from the first rows on Open: a column where
// every sampled non-empty value parses as an integer is rewritten in
// canonical integer form ("007" becomes "7"), likewise for floats. Columns
// with any non-numeric sample pass through untouched.
type TypedInput struct {
	in    Input
	types []ColumnType
}

// NewTypedInput wraps in with datatype adjustment.
func NewTypedInput(in Input) *TypedInput {
	return &TypedInput{in: in}
}

// Open opens the underlying input, samples rows for type inference, then
// rewinds so the caller still sees the full stream.
func (t *TypedInput) Open() error {
	if err := t.in.Open(); err != nil {
		return err
	}
	// Header row does not participate in inference.
	if _, err := t.in.Next(); err != nil {
		if err == io.EOF {
			return t.in.Reset()
		}
		return err
	}
	var rows [][]string
	for i := 0; i < typeScanRows; i++ {
		row, err := t.in.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	t.types = inferTypes(rows)
	return t.in.Reset()
}

// Close implements Input.
func (t *TypedInput) Close() error {
	return t.in.Close()
}

// Reset implements Input.
func (t *TypedInput) Reset() error {
	return t.in.Reset()
}

// Next returns the next record with numeric columns normalized.
func (t *TypedInput) Next() ([]string, error) {
	row, err := t.in.Next()
	if err != nil {
		return nil, err
	}
	for i, cell := range row {
		if i >= len(t.types) || cell == "" {
			continue
		}
		switch t.types[i] {
		case TypeInt:
			if f, err := strconv.ParseFloat(stripSeparators(cell), 64); err == nil {
				row[i] = strconv.FormatInt(int64(f), 10)
			}
		case TypeFloat:
			if f, err := strconv.ParseFloat(stripSeparators(cell), 64); err == nil {
				row[i] = strconv.FormatFloat(f, 'f', -1, 64)
			}
		}
	}
	return row, nil
}

// Types returns the inferred column types.
func (t *TypedInput) Types() []ColumnType {
	return t.types
}

func inferTypes(rows [][]string) []ColumnType {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	types := make([]ColumnType, width)
	for col := 0; col < width; col++ {
		allInt, allFloat, seen := true, true, false
		for _, row := range rows {
			if col >= len(row) || row[col] == "" {
				continue
			}
			seen = true
			v := stripSeparators(row[col])
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				allInt, allFloat = false, false
				break
			}
			if f != float64(int64(f)) || strings.ContainsAny(v, ".eE") {
				allInt = false
			}
		}
		switch {
		case !seen:
			types[col] = TypeText
		case allInt:
			types[col] = TypeInt
		case allFloat:
			types[col] = TypeFloat
		default:
			types[col] = TypeText
		}
	}
	return types
}

// stripSeparators removes thousands separators before numeric parsing.
func stripSeparators(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
