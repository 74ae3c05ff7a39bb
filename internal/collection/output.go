package collection

import (
	"encoding/csv"
	"os"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
)

// Output is a writable record sink.
// The first appended record is the header row. AsInput reopens the written
// data as an Input so conversions can be chained.
type Output interface {
	Open() error
	Append(record []string) error
	Close() error
	AsInput() (Input, error)
}

// ArrayOutput collects records in memory.
type ArrayOutput struct {
	rows [][]string
}

// NewArrayOutput creates an empty in-memory output.
func NewArrayOutput() *ArrayOutput {
	return &ArrayOutput{}
}

// Open implements Output.
func (a *ArrayOutput) Open() error {
	a.rows = a.rows[:0]
	return nil
}

// Append implements Output.
func (a *ArrayOutput) Append(record []string) error {
	row := make([]string, len(record))
	copy(row, record)
	a.rows = append(a.rows, row)
	return nil
}

// Close implements Output.
func (a *ArrayOutput) Close() error {
	return nil
}

// Rows returns the collected records, header first.
func (a *ArrayOutput) Rows() [][]string {
	return a.rows
}

// AsInput returns an input over the collected records.
func (a *ArrayOutput) AsInput() (Input, error) {
	return NewArrayInput(a.rows), nil
}

// CSVOutput writes records to a UTF-8, comma-separated CSV file.
type CSVOutput struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVOutput creates an output writing to the given path.
func NewCSVOutput(path string) *CSVOutput {
	return &CSVOutput{path: path}
}

// Path returns the output file path.
func (c *CSVOutput) Path() string {
	return c.path
}

// Open creates or truncates the output file.
func (c *CSVOutput) Open() error {
	f, err := os.Create(c.path)
	if err != nil {
		return errs.WrapIOError(err, "creating %q", c.path)
	}
	c.file = f
	c.writer = csv.NewWriter(f)
	return nil
}

// Append writes one record.
func (c *CSVOutput) Append(record []string) error {
	if c.writer == nil {
		return errs.NewConfigError("CSV output is not open")
	}
	if err := c.writer.Write(record); err != nil {
		return errs.WrapIOError(err, "writing to %q", c.path)
	}
	return nil
}

// Close flushes and closes the file.
func (c *CSVOutput) Close() error {
	if c.writer != nil {
		c.writer.Flush()
		if err := c.writer.Error(); err != nil {
			return errs.WrapIOError(err, "flushing %q", c.path)
		}
		c.writer = nil
	}
	if c.file != nil {
		if err := c.file.Close(); err != nil {
			return errs.WrapIOError(err, "closing %q", c.path)
		}
		c.file = nil
	}
	return nil
}

// AsInput reopens the written file for reading.
func (c *CSVOutput) AsInput() (Input, error) {
	return NewCSVInput(c.path), nil
}
