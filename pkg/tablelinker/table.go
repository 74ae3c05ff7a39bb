// Package tablelinker is the public API of the tabular-data transformation
// engine. A Table wraps one CSV source; convertors transform it into new
// Tables, spooling intermediate results through temporary files.
package tablelinker

import (
	"encoding/csv"
	"io"
	"math"
	"os"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/collection"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/mapping"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/registry"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/task"

	// The extended convertor catalog registers itself lazily.
	_ "github.com/NII-CPS-Center/tablelinker-lib/internal/convertors/basics"
	_ "github.com/NII-CPS-Center/tablelinker-lib/internal/convertors/extras"

	"log/slog"
)

// DefaultMappingThreshold is the similarity percentage below which Mapping
// leaves a template column unassigned.
const DefaultMappingThreshold = 20

// Table wraps one CSV source: a file path or in-memory data. Conversions
// never modify the source; they produce a new Table over a new file.
type Table struct {
	path       string
	data       []byte
	isTempfile bool
}

// New creates a Table over a CSV file path.
func New(path string) *Table {
	return &Table{path: path}
}

// FromData creates a Table over raw CSV bytes.
func FromData(data []byte) *Table {
	return &Table{data: data}
}

// FromReader creates a Table by draining a CSV stream.
func FromReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.WrapIOError(err, "reading CSV stream")
	}
	return FromData(data), nil
}

// Path returns the file path backing the table, empty for in-memory data.
func (t *Table) Path() string {
	return t.path
}

func (t *Table) input() collection.Input {
	if t.data != nil {
		return collection.NewCSVInputFromData(t.data)
	}
	return collection.NewCSVInput(t.path)
}

// Cleanup removes the temporary file backing a converted table. Tables over
// caller-named files or in-memory data are untouched.
func (t *Table) Cleanup() {
	if t.isTempfile && t.path != "" {
		if err := os.Remove(t.path); err != nil {
			logger.Warn("removing temporary table file",
				slog.String("path", t.path),
				slog.String("error", err.Error()))
		}
		t.path = ""
		t.isTempfile = false
	}
}

// Headers returns the table's header row, after cleaning.
func (t *Table) Headers() ([]string, error) {
	in := t.input()
	if err := in.Open(); err != nil {
		return nil, err
	}
	defer in.Close()
	headers, err := in.Next()
	if err != nil {
		return nil, errs.WrapIOError(err, "reading header row")
	}
	return headers, nil
}

// Rows reads the whole table into memory, header row first.
func (t *Table) Rows() ([][]string, error) {
	in := t.input()
	if err := in.Open(); err != nil {
		return nil, err
	}
	defer in.Close()

	var rows [][]string
	for {
		row, err := in.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// Convert applies one convertor and returns a Table over the result, spooled
// to a temporary file. The file is removed by Cleanup on the returned table,
// or immediately when the conversion fails.
func (t *Table) Convert(key string, p map[string]any) (*Table, error) {
	return t.convert(key, p, "")
}

// ConvertTo applies one convertor writing the result to a named file. The
// file is kept even when the conversion fails partway.
func (t *Table) ConvertTo(key string, p map[string]any, output string) (*Table, error) {
	if output == "" {
		return nil, errs.NewConfigError("output path must not be empty")
	}
	return t.convert(key, p, output)
}

func (t *Table) convert(key string, p map[string]any, output string) (*Table, error) {
	ctor, ok := registry.Get(key)
	if !ok {
		return nil, errs.NewConfigError("convertor %q is not registered", key)
	}

	path := output
	isTemp := false
	if path == "" {
		f, err := os.CreateTemp("", "table_*.csv")
		if err != nil {
			return nil, errs.WrapIOError(err, "creating temporary table file")
		}
		path = f.Name()
		if err := f.Close(); err != nil {
			return nil, errs.WrapIOError(err, "creating temporary table file")
		}
		isTemp = true
	}

	conv := ctor()
	ctx, err := convertor.NewContext(conv, p, t.input(), collection.NewCSVOutput(path))
	if err == nil {
		err = ctx.Open()
		if err == nil {
			err = convertor.Run(conv, ctx)
			if closeErr := ctx.Close(); err == nil {
				err = closeErr
			}
		}
	}
	if err != nil {
		if isTemp {
			if rmErr := os.Remove(path); rmErr != nil {
				logger.Warn("removing failed conversion output",
					slog.String("path", path),
					slog.String("error", rmErr.Error()))
			}
		} else {
			logger.Warn("conversion failed, partial output retained",
				slog.String("convertor", key),
				slog.String("path", path))
		}
		return nil, err
	}

	logger.Debug("conversion finished",
		slog.String("convertor", key),
		slog.String("output", path))
	return &Table{path: path, isTempfile: isTemp}, nil
}

// Apply runs tasks in order, each over the previous result. Intermediate
// temporary files are removed as the chain advances.
func (t *Table) Apply(tasks ...*task.Task) (*Table, error) {
	current := t
	for _, tk := range tasks {
		if tk.Note != "" {
			logger.Info("running task", slog.String("task", tk.String()))
		} else {
			logger.Debug("running task", slog.String("task", tk.String()))
		}

		next, err := current.Convert(tk.Convertor, tk.Params)
		if current != t {
			current.Cleanup()
		}
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Save writes the cleaned table to a CSV file.
func (t *Table) Save(path string) error {
	in := t.input()
	if err := in.Open(); err != nil {
		return err
	}
	defer in.Close()

	out := collection.NewCSVOutput(path)
	if err := out.Open(); err != nil {
		return err
	}
	for {
		row, err := in.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Close()
			return err
		}
		if err := out.Append(row); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

// Write streams the cleaned table to w as CSV. A non-negative lines limit
// caps the number of rows written, header row included.
func (t *Table) Write(w io.Writer, lines int) error {
	in := t.input()
	if err := in.Open(); err != nil {
		return err
	}
	defer in.Close()

	writer := csv.NewWriter(w)
	written := 0
	for lines < 0 || written < lines {
		row, err := in.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return errs.WrapIOError(err, "writing CSV")
		}
		written++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errs.WrapIOError(err, "writing CSV")
	}
	return nil
}

// Merge appends this table's rows to a target CSV file, reordering columns
// to the target's header first. A missing target file is created as a plain
// copy. The header row is not appended.
func (t *Table) Merge(targetPath string) error {
	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		logger.Debug("merge target does not exist, saving directly",
			slog.String("path", targetPath))
		return t.Save(targetPath)
	}

	targetHeaders, err := New(targetPath).Headers()
	if err != nil {
		return err
	}

	reordered, err := t.Convert("reorder_cols", map[string]any{
		"column_list": targetHeaders,
	})
	if err != nil {
		return err
	}
	defer reordered.Cleanup()

	in := reordered.input()
	if err := in.Open(); err != nil {
		return err
	}
	defer in.Close()
	if _, err := in.Next(); err != nil {
		return errs.WrapIOError(err, "reading header row")
	}

	f, err := os.OpenFile(targetPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.WrapIOError(err, "opening %q for append", targetPath)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	for {
		row, err := in.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return errs.WrapIOError(err, "appending to %q", targetPath)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errs.WrapIOError(err, "appending to %q", targetPath)
	}
	return nil
}

// MapEntry is one column assignment produced by Mapping: the template
// column name and the matching source column name, nil when unmatched.
// A MapEntry list is directly usable as the column_map parameter of the
// mapping_cols convertor.
type MapEntry = params.DictEntry

// Mapping aligns this table's columns with a template table's and returns
// the assignment in template column order. A negative threshold means
// DefaultMappingThreshold.
func (t *Table) Mapping(template *Table, threshold int) ([]MapEntry, error) {
	templateHeaders, err := template.Headers()
	if err != nil {
		return nil, err
	}
	return t.MappingWithHeaders(templateHeaders, threshold)
}

// MappingWithHeaders aligns this table's columns with a template header
// list. Pairs whose similarity percentage rounds up below the threshold are
// reported unmatched.
func (t *Table) MappingWithHeaders(headers []string, threshold int) ([]MapEntry, error) {
	return t.mappingWith(headers, threshold, nil)
}

// MappingWithScorer is MappingWithHeaders with a custom similarity scorer.
func (t *Table) MappingWithScorer(headers []string, threshold int, scorer Scorer) ([]MapEntry, error) {
	return t.mappingWith(headers, threshold, scorer)
}

func (t *Table) mappingWith(headers []string, threshold int, scorer Scorer) ([]MapEntry, error) {
	if threshold < 0 {
		threshold = DefaultMappingThreshold
	}
	myHeaders, err := t.Headers()
	if err != nil {
		return nil, err
	}

	pair := mapping.NewPair(headers, myHeaders, scorer)
	var entries []MapEntry
	for _, m := range pair.Mapping() {
		if m.Template == nil {
			// source columns with no template counterpart are dropped
			continue
		}
		entry := MapEntry{Key: *m.Template}
		if m.Source != nil && int(math.Ceil(m.Score*100)) >= threshold {
			entry.Value = *m.Source
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
