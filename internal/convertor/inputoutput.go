package convertor

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// ValueFunc computes the output cell for one record. Returning
// errs.ErrSkipRecord omits the whole record from the output; a record-level
// error skips the record with a warning.
type ValueFunc func(record []string, ctx *Context) (string, error)

// ValuesFunc computes the full output vector for one record.
type ValuesFunc func(record []string, ctx *Context) ([]string, error)

// ioParams are the parameters shared by every single-output convertor.
func ioParams(extra ...*params.Param) *params.Set {
	defs := []*params.Param{
		{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to read values from"},
		{Name: "output_col_name", Type: params.TypeString,
			Description: "name of the column to write; an existing name replaces that column"},
		{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "position of the output column; omitted means the end"},
		{Name: "overwrite", Type: params.TypeBool, Default: true,
			Description: "whether to overwrite non-empty destination cells"},
	}
	return params.NewSet(append(defs, extra...)...)
}

// iosParams are the parameters shared by every multi-output convertor.
func iosParams(extra ...*params.Param) *params.Set {
	defs := []*params.Param{
		{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to read values from"},
		{Name: "output_col_names", Type: params.TypeStringList, Required: true,
			Description: "names of the columns to write; existing names replace those columns"},
		{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "position of the first output column; omitted means the end"},
		{Name: "overwrite", Type: params.TypeBool, Default: false,
			Description: "whether to overwrite non-empty destination cells"},
	}
	return params.NewSet(append(defs, extra...)...)
}

// IOParams builds a single-output parameter set with extra definitions.
func IOParams(extra ...*params.Param) *params.Set {
	return ioParams(extra...)
}

// IOSParams builds a multi-output parameter set with extra definitions.
func IOSParams(extra ...*params.Param) *params.Set {
	return iosParams(extra...)
}

// InputOutput drives convertors that read one column and write one column.
//
// Header bookkeeping during preprocessing:
//
//   - no output name: the input column's name is reused and the input
//     column itself is replaced; an unspecified position defaults to the
//     input column's position.
//   - output name matching an existing header: that column is replaced.
//   - brand-new output name: a new column is created and overwrite is
//     forced on, because there is no old value to preserve.
//
// An unspecified position otherwise means append at the end.
type InputOutput struct {
	Base

	// InputColIdx is the resolved input column.
	InputColIdx int
	// OutputColName is the effective output column name.
	OutputColName string
	// OutputColIdx is the effective insertion position.
	OutputColIdx int
	// DelCol is the column replaced by the output, or -1 for none.
	DelCol int
	// Overwrite controls whether non-empty destination cells are replaced.
	Overwrite bool

	// Value computes the output cell. Set by the concrete convertor.
	Value ValueFunc
}

// Preproc resolves the shared single-output parameters.
func (c *InputOutput) Preproc(ctx *Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}

	var err error
	c.InputColIdx, err = ctx.InputColumn("input_col_idx")
	if err != nil {
		return err
	}
	c.OutputColName, err = ctx.String("output_col_name")
	if err != nil {
		return err
	}
	c.OutputColIdx, err = ctx.OutputColumn("output_col_idx")
	if err != nil {
		return err
	}
	c.Overwrite, err = ctx.Bool("overwrite")
	if err != nil {
		return err
	}

	headers := c.HeaderRow()
	c.DelCol = -1
	if !ctx.Has("output_col_name") {
		// No output name: reuse the input column's name and replace it.
		c.OutputColName = headers[c.InputColIdx]
		c.DelCol = c.InputColIdx
		if !ctx.Has("output_col_idx") {
			c.OutputColIdx = c.InputColIdx
		}
	} else {
		found := false
		for i, h := range headers {
			if h == c.OutputColName {
				c.DelCol = i
				found = true
				break
			}
		}
		if !found {
			// New column: nothing old to preserve.
			c.Overwrite = true
		}
	}

	// An unspecified position is already -1 here, meaning append at the
	// end, except for the reuse-input-name case handled above.
	return nil
}

// ProcessHeader replaces or inserts the output column name.
func (c *InputOutput) ProcessHeader(headers []string, ctx *Context) error {
	return ctx.Output(Reorder(headers, c.DelCol, c.OutputColIdx, c.OutputColName))
}

// ProcessRecord computes the output cell and emits the reordered record.
func (c *InputOutput) ProcessRecord(record []string, ctx *Context) error {
	needValue := c.Overwrite
	if !needValue {
		if c.DelCol >= len(record) || record[c.DelCol] == "" {
			needValue = true
		}
	}

	var value string
	if needValue {
		v, err := c.Value(record, ctx)
		if err != nil {
			return err
		}
		value = v
	} else {
		value = record[c.DelCol]
	}

	return ctx.Output(Reorder(record, c.DelCol, c.OutputColIdx, value))
}

// InputOutputs drives convertors that read one column and write several.
type InputOutputs struct {
	Base

	// InputColIdx is the resolved input column.
	InputColIdx int
	// OutputColNames are the output column names.
	OutputColNames []string
	// OutputColIdx is the insertion position after delete adjustment.
	OutputColIdx int
	// OldColIndexes are the positions of pre-existing output columns in the
	// original row, -1 for columns that do not exist yet.
	OldColIndexes []int
	// DelColIndexes are OldColIndexes adjusted for sequential deletion.
	DelColIndexes []int

	// Values computes the full output vector. Set by the concrete convertor.
	Values ValuesFunc
}

// Preproc resolves the shared multi-output parameters.
func (c *InputOutputs) Preproc(ctx *Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}

	var err error
	c.InputColIdx, err = ctx.InputColumn("input_col_idx")
	if err != nil {
		return err
	}
	c.OutputColNames, err = ctx.StringList("output_col_names")
	if err != nil {
		return err
	}
	outIdx, err := ctx.OutputColumn("output_col_idx")
	if err != nil {
		return err
	}

	headers := c.HeaderRow()
	c.OldColIndexes = make([]int, len(c.OutputColNames))
	for i, name := range c.OutputColNames {
		c.OldColIndexes[i] = -1
		for j, h := range headers {
			if h == name {
				c.OldColIndexes[i] = j
				break
			}
		}
	}

	if outIdx < 0 || outIdx >= len(headers) {
		outIdx = len(headers)
	}
	c.DelColIndexes, c.OutputColIdx = AdjustDeleteIndexes(c.OldColIndexes, outIdx)
	return nil
}

// ProcessHeader replaces or inserts the output column names.
func (c *InputOutputs) ProcessHeader(headers []string, ctx *Context) error {
	return ctx.Output(ReorderMulti(headers, c.DelColIndexes, c.OutputColIdx, c.OutputColNames))
}

// ProcessRecord computes the output vector and emits the reordered record.
//
// Without overwrite, the vector is recomputed as soon as any destination
// cell is empty, but destination cells that already hold values keep them.
func (c *InputOutputs) ProcessRecord(record []string, ctx *Context) error {
	oldValues := make([]string, len(c.OldColIndexes))
	for i, idx := range c.OldColIndexes {
		if idx >= 0 && idx < len(record) {
			oldValues[i] = record[idx]
		}
	}

	overwrite, err := ctx.Bool("overwrite")
	if err != nil {
		return err
	}

	var newValues []string
	if overwrite {
		newValues, err = c.Values(record, ctx)
		if err != nil {
			return err
		}
	} else {
		var computed []string
		newValues = make([]string, 0, len(oldValues))
		for i, oldValue := range oldValues {
			if oldValue == "" {
				if computed == nil {
					computed, err = c.Values(record, ctx)
					if err != nil {
						return err
					}
				}
				if i < len(computed) {
					newValues = append(newValues, computed[i])
				} else {
					newValues = append(newValues, "")
				}
			} else {
				newValues = append(newValues, oldValue)
			}
		}
	}

	if len(newValues) != len(c.OutputColNames) {
		return errs.NewRecordError(
			"convertor produced %d values for %d output columns",
			len(newValues), len(c.OutputColNames))
	}

	return ctx.Output(ReorderMulti(record, c.DelColIndexes, c.OutputColIdx, newValues))
}
