package collection

import (
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Cleaned holds the result of preparing a raw CSV byte stream for reading:
// decoded text, the detected delimiter, and the number of leading non-data
// lines to skip (titles, notes, blank lines above the real header).
type Cleaned struct {
	Text      string
	Delimiter rune
	SkipLines int
}

// Clean decodes raw CSV bytes to UTF-8 and detects the delimiter and the
// number of leading junk lines.
func Clean(data []byte) (*Cleaned, error) {
	text := decodeText(data)
	delimiter := detectDelimiter(text)
	skip := detectSkipLines(text, delimiter)
	return &Cleaned{Text: text, Delimiter: delimiter, SkipLines: skip}, nil
}

// decodeText converts raw bytes to a UTF-8 string.
// A UTF-8 BOM is stripped; byte streams that are not valid UTF-8 are
// decoded as Shift_JIS, the dominant legacy encoding for Japanese CSV.
// If that fails too, the bytes pass through unchanged.
func decodeText(data []byte) string {
	data = trimUTF8BOM(data)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// detectDelimiter decides between comma and tab separation.
// Counts both characters per line, ignoring short lines and the first five
// lines (often titles); the first line showing a clear majority decides.
func detectDelimiter(text string) rune {
	for i, line := range strings.Split(text, "\n") {
		if len(line) < 10 {
			continue
		}
		ncommas := strings.Count(line, ",")
		ntabs := strings.Count(line, "\t")
		if i < 5 || ncommas+ntabs < 2 {
			continue
		}
		if ncommas > ntabs {
			return ','
		}
		if ntabs > ncommas {
			return '\t'
		}
	}
	return ','
}

// detectSkipLines counts the leading lines that are not table data.
//
// The column count of the table is taken as the maximum over the first ~20
// rows, ignoring trailing empty cells and spreadsheet-export placeholders
// ("Unnamed: N"). The first row that has that many columns and more than one
// non-empty value starts the data; everything above it is skipped. A blank
// line directly above a multi-valued row also ends the scan.
func detectSkipLines(text string, delimiter rune) int {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var ncols, nvalues []int
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		for len(row) > 0 && (row[len(row)-1] == "" || strings.HasPrefix(row[len(row)-1], "Unnamed: ")) {
			row = row[:len(row)-1]
		}
		filled := 0
		for _, cell := range row {
			if len(cell) > 0 {
				filled++
			}
		}
		ncols = append(ncols, len(row))
		nvalues = append(nvalues, filled)
		if i > 20 {
			break
		}
	}
	if len(ncols) == 0 {
		return 0
	}

	tableColumns := 0
	for _, n := range ncols {
		if n > tableColumns {
			tableColumns = n
		}
	}

	skip := 0
	for i, n := range ncols {
		if n == tableColumns && nvalues[i] > 1 {
			break
		}
		if n == 0 && i+1 < len(nvalues) && nvalues[i+1] > 1 {
			skip++
			break
		}
		skip++
	}
	return skip
}
