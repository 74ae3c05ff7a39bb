package basics

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var insertColMeta = convertor.Meta{
	Key:         "insert_col",
	Name:        "新規列追加",
	Description: "新規列を指定した場所に追加します。",
	Params: params.NewSet(
		&params.Param{Name: "output_col_name", Type: params.TypeString, Required: true,
			Description: "name of the new column"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "insertion position; omitted means the end"},
		&params.Param{Name: "value", Type: params.TypeString, Default: "",
			Description: "value set in every row of the new column"},
	),
}

// InsertCol adds one new column holding a constant value.
type InsertCol struct {
	convertor.Base

	outputColName string
	outputColIdx  int
	value         string
}

// NewInsertCol creates an insert_col convertor.
func NewInsertCol() convertor.Convertor { return &InsertCol{} }

// Meta implements convertor.Convertor.
func (c *InsertCol) Meta() *convertor.Meta { return &insertColMeta }

// Preproc resolves the column name, position and fill value.
func (c *InsertCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.outputColName, err = ctx.String("output_col_name"); err != nil {
		return err
	}
	if c.outputColIdx, err = ctx.OutputColumn("output_col_idx"); err != nil {
		return err
	}
	if c.value, err = ctx.String("value"); err != nil {
		return err
	}
	if c.outputColIdx < 0 {
		c.outputColIdx = c.NumOfColumns()
	}
	return nil
}

// ProcessHeader inserts the new column name.
func (c *InsertCol) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(insertAt(headers, c.outputColIdx, c.outputColName))
}

// ProcessRecord inserts the constant value.
func (c *InsertCol) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(insertAt(record, c.outputColIdx, c.value))
}

var insertColsMeta = convertor.Meta{
	Key:         "insert_cols",
	Name:        "新規列追加（複数）",
	Description: "新規列を複数指定した場所に追加します。",
	Params: params.NewSet(
		&params.Param{Name: "output_col_names", Type: params.TypeStringList, Required: true,
			Description: "names of the new columns"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "insertion position; omitted means the end"},
		&params.Param{Name: "values", Type: params.TypeStringList,
			Description: "values set in the new columns; a single value repeats"},
	),
}

// InsertCols adds several new columns holding constant values.
type InsertCols struct {
	convertor.Base

	outputColIdx int
	newNames     []string
	newValues    []string
}

// NewInsertCols creates an insert_cols convertor.
func NewInsertCols() convertor.Convertor { return &InsertCols{} }

// Meta implements convertor.Convertor.
func (c *InsertCols) Meta() *convertor.Meta { return &insertColsMeta }

// Preproc resolves names, position and values. The value list must match the
// name list in length; a missing or single value is repeated for every
// column.
func (c *InsertCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.outputColIdx, err = ctx.OutputColumn("output_col_idx"); err != nil {
		return err
	}
	if c.newNames, err = ctx.StringList("output_col_names"); err != nil {
		return err
	}

	values, err := ctx.StringList("values")
	if err != nil {
		return err
	}
	switch {
	case len(values) == 0:
		c.newValues = make([]string, len(c.newNames))
	case len(values) == 1 && len(c.newNames) > 1:
		// A single value fills every new column.
		c.newValues = make([]string, len(c.newNames))
		for i := range c.newValues {
			c.newValues[i] = values[0]
		}
	case len(values) != len(c.newNames):
		return errs.NewConfigError(
			"the length of \"values\" must be equal to the length of \"output_col_names\"")
	default:
		c.newValues = values
	}

	if c.outputColIdx < 0 {
		c.outputColIdx = c.NumOfColumns()
	}
	return nil
}

// ProcessHeader inserts the new column names.
func (c *InsertCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(insertListAt(headers, c.outputColIdx, c.newNames))
}

// ProcessRecord inserts the constant values.
func (c *InsertCols) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(insertListAt(record, c.outputColIdx, c.newValues))
}

func insertAt(row []string, idx int, value string) []string {
	if idx < 0 || idx > len(row) {
		idx = len(row)
	}
	out := make([]string, 0, len(row)+1)
	out = append(out, row[:idx]...)
	out = append(out, value)
	out = append(out, row[idx:]...)
	return out
}

func insertListAt(row []string, idx int, values []string) []string {
	if idx < 0 || idx > len(row) {
		idx = len(row)
	}
	out := make([]string, 0, len(row)+len(values))
	out = append(out, row[:idx]...)
	out = append(out, values...)
	out = append(out, row[idx:]...)
	return out
}
