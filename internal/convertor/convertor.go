// Package convertor provides the convertor execution model.
//
// # Overview
//
// A convertor is a named, parameterized transformation applied to a whole
// table. The engine drives every convertor through the same lifecycle:
// preprocessing (parameter resolution against live headers), a rewind of the
// input, the header row transformation, then one call per data record.
// Records flow one at a time; a convertor never sees the table as a whole.
//
// # Implementing a Convertor
//
// Most convertors do not implement the lifecycle directly. They embed one of
// the wrapper types and supply a value function:
//
//   - InputOutput: reads one column, writes one column. The wrapper owns
//     header bookkeeping (which column is replaced, where the output lands)
//     and the overwrite rule; the value function is a pure record-to-value
//     computation.
//   - InputOutputs: reads one column, writes several columns at once.
//
// Convertors with other shapes (row filters, row expanders, column
// rearrangers) embed Base and override the lifecycle methods they need.
package convertor

import (
	"io"
	"log/slog"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// Meta describes a convertor: its registry key, display name, a short
// description and its closed parameter schema.
type Meta struct {
	Key         string
	Name        string
	Description string
	Params      *params.Set
}

// Convertor is the transformation lifecycle contract.
type Convertor interface {
	// Meta returns the convertor's static metadata.
	Meta() *Meta
	// Preproc resolves parameters and prepares per-run state.
	// It runs before any output is produced; errors here are fatal.
	Preproc(ctx *Context) error
	// ProcessHeader transforms and emits the header row.
	ProcessHeader(headers []string, ctx *Context) error
	// CheckRecord reports whether a record should be processed.
	// Returning false drops the record.
	CheckRecord(record []string, ctx *Context) bool
	// ProcessRecord transforms and emits one data record.
	ProcessRecord(record []string, ctx *Context) error
}

// Run executes a convertor against the context's input and output.
//
// The driver is not overridable: preprocessing reads the header row and
// resolves parameters, the input is rewound, the header row is emitted
// through ProcessHeader, then each data record passes through CheckRecord
// and ProcessRecord. Records failing CheckRecord are dropped silently except
// for a warning; record-level errors from ProcessRecord skip the record,
// everything else aborts the run.
func Run(c Convertor, ctx *Context) error {
	if err := c.Preproc(ctx); err != nil {
		return err
	}

	if err := ctx.Reset(); err != nil {
		return err
	}
	if _, err := ctx.Next(); err != nil {
		return errs.WrapIOError(err, "reading header row")
	}

	headers, err := ctx.Headers()
	if err != nil {
		return err
	}
	if err := c.ProcessHeader(headers, ctx); err != nil {
		return err
	}

	for {
		record, err := ctx.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !c.CheckRecord(record, ctx) {
			logger.Warn("record skipped",
				slog.String("convertor", c.Meta().Key),
				slog.String("record", truncateForLog(strings.Join(record, ","))))
			continue
		}
		if err := c.ProcessRecord(record, ctx); err != nil {
			if errs.IsSkippable(err) {
				logger.Warn("record skipped",
					slog.String("convertor", c.Meta().Key),
					slog.String("error", err.Error()))
				continue
			}
			return err
		}
	}
	return nil
}

// truncateForLog shortens a record preview for warning messages.
func truncateForLog(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// Base provides the default lifecycle: parameters resolved, header and
// records passed through unchanged. Convertors embed it and override what
// they need.
type Base struct {
	headers      []string
	numOfColumns int
}

// Preproc reads the header row and records it in the context so parameter
// resolution can match column names.
func (b *Base) Preproc(ctx *Context) error {
	headers, err := ctx.Next()
	if err != nil {
		return errs.WrapIOError(err, "reading header row")
	}
	ctx.SetData(DataHeaders, headers)
	ctx.SetData(DataNumOfColumns, len(headers))
	b.headers = headers
	b.numOfColumns = len(headers)
	return nil
}

// HeaderRow returns the header row captured during preprocessing.
func (b *Base) HeaderRow() []string {
	return b.headers
}

// NumOfColumns returns the table width captured during preprocessing.
func (b *Base) NumOfColumns() int {
	return b.numOfColumns
}

// ProcessHeader emits the header row unchanged.
func (b *Base) ProcessHeader(headers []string, ctx *Context) error {
	return ctx.Output(headers)
}

// CheckRecord verifies the record width matches the header row.
func (b *Base) CheckRecord(record []string, ctx *Context) bool {
	if b.numOfColumns != len(record) {
		logger.Warn("column count mismatch",
			slog.Int("expected", b.numOfColumns),
			slog.Int("got", len(record)))
		return false
	}
	return true
}

// ProcessRecord emits the record unchanged.
func (b *Base) ProcessRecord(record []string, ctx *Context) error {
	return ctx.Output(record)
}
