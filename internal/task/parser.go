// Package task provides task file parsing, validation and the Task type.
//
// A task names a convertor and carries its parameters. Task files are JSON
// or YAML; the format is auto-detected from the file extension or, failing
// that, the content. A file holds either a single task object or an array of
// task objects. Files are validated against an embedded schema before tasks
// are built, so malformed files fail with positioned errors instead of
// failing mid-conversion.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
)

// Format identifies a task file format.
type Format string

// Supported task file formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatUnknown Format = "unknown"
)

// ParseError describes a parse failure with positional information.
type ParseError struct {
	// Path is the file the error occurred in.
	Path string
	// Message is the human-readable error message.
	Message string
	// Type is the error class (syntax, io).
	Type string
	// Line is the 1-based line of the error, 0 if unknown.
	Line int
	// Column is the 1-based column of the error, 0 if unknown.
	Column int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// DetectFormat determines the file format from the extension, falling back
// to content sniffing for unknown extensions.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	if len(trimmed) > 0 {
		return FormatYAML
	}
	return FormatUnknown
}

// ParseFile reads and parses a task file into generic JSON-style data.
func ParseFile(path string) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Type: "io"}
	}
	switch DetectFormat(path, content) {
	case FormatJSON:
		return parseJSON(path, content)
	case FormatYAML:
		return parseYAML(path, content)
	default:
		return nil, &ParseError{Path: path, Message: "empty task file", Type: "syntax"}
	}
}

// parseJSON decodes JSON content, reporting syntax errors with line/column.
func parseJSON(path string, content []byte) (any, error) {
	var data any
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Type: "syntax"}
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) {
			perr.Line, perr.Column = offsetToLineColumn(content, syntaxErr.Offset)
		} else if errors.As(err, &typeErr) {
			perr.Line, perr.Column = offsetToLineColumn(content, typeErr.Offset)
		}
		return nil, perr
	}
	return normalizeNumbers(data), nil
}

// parseYAML decodes YAML content, reporting syntax errors with line numbers.
func parseYAML(path string, content []byte) (any, error) {
	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Type: "syntax"}
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			// yaml syntax errors embed "line N" in the message
			perr.Line = yamlErrorLine(err.Error())
		}
		return nil, perr
	}
	return data, nil
}

// offsetToLineColumn converts a byte offset to 1-based line and column.
func offsetToLineColumn(content []byte, offset int64) (int, int) {
	if offset < 0 || offset > int64(len(content)) {
		return 0, 0
	}
	line, col := 1, 1
	for _, b := range content[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// yamlErrorLine extracts the line number from a yaml error message.
func yamlErrorLine(msg string) int {
	idx := strings.Index(msg, "line ")
	if idx < 0 {
		return 0
	}
	line := 0
	if _, err := fmt.Sscanf(msg[idx:], "line %d", &line); err != nil {
		return 0
	}
	return line
}

// normalizeNumbers converts json.Number values into int or float64 so task
// parameters carry plain Go numbers regardless of the source format.
func normalizeNumbers(data any) any {
	switch v := data.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	default:
		return data
	}
}

// asEngineError wraps a parse error as a fatal configuration error.
func asEngineError(err error) error {
	if err == nil {
		return nil
	}
	return errs.WrapConfigError(err, "task file")
}
