package basics

import (
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var mappingColsMeta = convertor.Meta{
	Key:         "mapping_cols",
	Name:        "カラムマッピング",
	Description: "カラムを指定した通りにマッピングします。",
	Params: params.NewSet(
		&params.Param{Name: "column_map", Type: params.TypeDict, Required: true,
			Description: "output column to source column mapping; a null source produces an empty column"},
	),
}

// MappingCols rebuilds the table according to an explicit column map. Each
// entry names an output column and the source column (by name or position)
// it is filled from; a nil source yields an empty column.
//
// The entry order defines the output column order. Task files can pass the
// map as a list of [output, source] pairs to control it; a plain object is
// applied in sorted key order.
type MappingCols struct {
	convertor.Base

	// mapping holds one source index per output column, -1 for empty.
	mapping    []int
	newHeaders []string
}

// NewMappingCols creates a mapping_cols convertor.
func NewMappingCols() convertor.Convertor { return &MappingCols{} }

// Meta implements convertor.Convertor.
func (c *MappingCols) Meta() *convertor.Meta { return &mappingColsMeta }

// Preproc resolves every map entry against the live headers.
func (c *MappingCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	entries, err := ctx.Dict("column_map")
	if err != nil {
		return err
	}

	headers := c.HeaderRow()
	c.mapping = c.mapping[:0]
	c.newHeaders = c.newHeaders[:0]
	for _, entry := range entries {
		if entry.Value == nil {
			c.mapping = append(c.mapping, -1)
			c.newHeaders = append(c.newHeaders, entry.Key)
			continue
		}
		idx, err := params.ResolveColumn(entry.Value, headers)
		if err != nil {
			return errs.NewConfigError(
				"column %v mapped to output column %q is not a valid column; valid columns are: %s",
				entry.Value, entry.Key, strings.Join(headers, ","))
		}
		c.mapping = append(c.mapping, idx)
		c.newHeaders = append(c.newHeaders, entry.Key)
	}
	return nil
}

// ProcessHeader emits the output column names.
func (c *MappingCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(c.newHeaders)
}

// ProcessRecord emits the record rebuilt through the map.
func (c *MappingCols) ProcessRecord(record []string, ctx *convertor.Context) error {
	out := make([]string, 0, len(c.mapping))
	for _, idx := range c.mapping {
		if idx < 0 {
			out = append(out, "")
		} else {
			out = append(out, record[idx])
		}
	}
	return ctx.Output(out)
}
