// Package collection provides streaming input and output collections for
// tabular data.
//
// A collection is the engine's only I/O surface: convertors pull records one
// at a time from an Input and append transformed records to an Output. The
// first record of every collection is the header row. Implementations exist
// for in-memory arrays and for CSV files; file-backed inputs are cleaned on
// open (character encoding, delimiter and leading-junk detection) so that
// convertors always see comma-separated UTF-8 rows.
package collection

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
)

// Input is a readable, resettable record stream.
// Next returns io.EOF after the last record.
type Input interface {
	Open() error
	Close() error
	Reset() error
	Next() ([]string, error)
}

// ArrayInput streams records from an in-memory slice.
type ArrayInput struct {
	rows [][]string
	pos  int
}

// NewArrayInput creates an input over the given rows.
// The first row is the header.
func NewArrayInput(rows [][]string) *ArrayInput {
	return &ArrayInput{rows: rows}
}

// Open implements Input.
func (a *ArrayInput) Open() error {
	a.pos = 0
	return nil
}

// Close implements Input.
func (a *ArrayInput) Close() error {
	return nil
}

// Reset rewinds to the first record.
func (a *ArrayInput) Reset() error {
	a.pos = 0
	return nil
}

// Next returns the next record, or io.EOF.
func (a *ArrayInput) Next() ([]string, error) {
	if a.pos >= len(a.rows) {
		return nil, io.EOF
	}
	row := a.rows[a.pos]
	a.pos++
	return row, nil
}

// CSVInput streams records from a CSV source, cleaning it on open.
type CSVInput struct {
	path    string
	data    []byte
	cleaned *Cleaned
	reader  *csv.Reader
}

// NewCSVInput creates an input reading from a file path.
func NewCSVInput(path string) *CSVInput {
	return &CSVInput{path: path}
}

// NewCSVInputFromData creates an input reading from raw CSV bytes.
func NewCSVInputFromData(data []byte) *CSVInput {
	return &CSVInput{data: data}
}

// NewCSVInputFromReader creates an input by draining the given reader.
func NewCSVInputFromReader(r io.Reader) (*CSVInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.WrapIOError(err, "reading CSV stream")
	}
	return &CSVInput{data: data}, nil
}

// Open loads, cleans and positions the stream at the header row.
func (c *CSVInput) Open() error {
	data := c.data
	if data == nil {
		var err error
		data, err = os.ReadFile(c.path)
		if err != nil {
			return errs.WrapIOError(err, "opening %q", c.path)
		}
		c.data = data
	}
	cleaned, err := Clean(data)
	if err != nil {
		return err
	}
	c.cleaned = cleaned
	return c.Reset()
}

// Close implements Input.
func (c *CSVInput) Close() error {
	c.reader = nil
	return nil
}

// Reset rewinds to the header row.
func (c *CSVInput) Reset() error {
	if c.cleaned == nil {
		return errs.NewConfigError("CSV input is not open")
	}
	r := csv.NewReader(strings.NewReader(c.cleaned.Text))
	r.Comma = c.cleaned.Delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for i := 0; i < c.cleaned.SkipLines; i++ {
		if _, err := r.Read(); err != nil {
			break
		}
	}
	c.reader = r
	return nil
}

// Next returns the next record, or io.EOF.
func (c *CSVInput) Next() ([]string, error) {
	if c.reader == nil {
		return nil, errs.NewConfigError("CSV input is not open")
	}
	row, err := c.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errs.WrapIOError(err, "reading CSV record")
	}
	return row, nil
}

// DictReader projects an Input into header-keyed maps.
// Duplicate header names collapse: the later column wins, matching what
// header-keyed access can represent.
type DictReader struct {
	in         Input
	fieldnames []string
}

// NewDictReader reads the header row from in and returns a map projector.
// The input must already be open.
func NewDictReader(in Input) (*DictReader, error) {
	header, err := in.Next()
	if err != nil {
		return nil, errs.WrapIOError(err, "reading header row")
	}
	return &DictReader{in: in, fieldnames: header}, nil
}

// Fieldnames returns the header row.
func (d *DictReader) Fieldnames() []string {
	return d.fieldnames
}

// Next returns the next record as a map, or io.EOF.
// Missing trailing cells map to the empty string.
func (d *DictReader) Next() (map[string]string, error) {
	row, err := d.in.Next()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(d.fieldnames))
	for i, name := range d.fieldnames {
		if i < len(row) {
			m[name] = row[i]
		} else {
			m[name] = ""
		}
	}
	return m, nil
}

// trimUTF8BOM strips a leading UTF-8 byte order mark.
func trimUTF8BOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}
