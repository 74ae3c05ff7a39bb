package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// OutputOptions configures CLI output behavior.
type OutputOptions struct {
	Verbose bool
	Quiet   bool
}

// ConvertorRow is one line of the convertor catalog listing.
type ConvertorRow struct {
	Key         string
	Name        string
	Description string
}

// PrintConvertors lists the convertor catalog. Verbose output includes the
// display name and description of each convertor.
func PrintConvertors(w io.Writer, rows []ConvertorRow, opts OutputOptions) {
	if !opts.Verbose {
		for _, row := range rows {
			fmt.Fprintln(w, row.Key)
		}
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.Key, row.Name)
		if row.Description != "" {
			fmt.Fprintf(w, "\t%s\n", row.Description)
		}
	}
}

// PrintMapping writes a column assignment as a JSON object, template columns
// in order, unmatched columns as null. The output is directly usable as the
// column_map parameter of the mapping_cols convertor.
func PrintMapping(w io.Writer, entries []params.DictEntry) error {
	buf := []byte{'{'}
	for i, entry := range entries {
		if i > 0 {
			buf = append(buf, ',', ' ')
		}
		key, err := json.Marshal(entry.Key)
		if err != nil {
			return err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return err
		}
		buf = append(buf, key...)
		buf = append(buf, ':', ' ')
		buf = append(buf, value...)
	}
	buf = append(buf, '}', '\n')
	_, err := w.Write(buf)
	return err
}
