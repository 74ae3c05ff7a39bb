// Package cli provides output formatting for the command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/task"
)

// PrintParseError prints a task file parse error to stderr.
func PrintParseError(err *task.ParseError, verbose bool) {
	fmt.Fprintln(os.Stderr, "✗ Parse error:")

	location := formatErrorLocation(err.Path, err.Line, err.Column)
	if location != "" {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", location, err.Message)
	} else {
		fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	}

	if verbose && err.Type != "" {
		fmt.Fprintf(os.Stderr, "    Type: %s\n", err.Type)
	}
}

// formatErrorLocation formats the error location string (path:line:column).
func formatErrorLocation(path string, line, column int) string {
	if path == "" {
		return ""
	}

	location := path
	if line > 0 {
		location += fmt.Sprintf(":%d", line)
		if column > 0 {
			location += fmt.Sprintf(":%d", column)
		}
	}
	return location
}

// PrintValidationErrors prints task file schema violations to stderr.
func PrintValidationErrors(path string, errors []*task.ValidationError, quiet bool) {
	fmt.Fprintf(os.Stderr, "✗ Validation errors in %s:\n", path)
	for _, err := range errors {
		pointer := err.Path
		if pointer == "" {
			pointer = "/"
		}
		msg := err.Message
		if len(msg) > 80 {
			msg = msg[:77] + "..."
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", pointer, msg)
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Hint: task files hold one task object or an array of them")
	}
}
