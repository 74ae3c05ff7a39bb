package basics

import (
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var concatColMeta = convertor.Meta{
	Key:         "concat_col",
	Name:        "列結合",
	Description: "指定した列を結合します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx1", Type: params.TypeAttribute, Required: true,
			Description: "first column to concatenate"},
		&params.Param{Name: "input_col_idx2", Type: params.TypeAttribute, Required: true,
			Description: "second column to concatenate"},
		&params.Param{Name: "output_col_name", Type: params.TypeString,
			Description: "name of the result column"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "position of the result column"},
		&params.Param{Name: "separator", Type: params.TypeString, Default: "",
			Description: "string placed between the joined values"},
	),
}

// ConcatCol joins two columns into one.
type ConcatCol struct {
	concatBase
}

// NewConcatCol creates a concat_col convertor.
func NewConcatCol() convertor.Convertor { return &ConcatCol{} }

// Meta implements convertor.Convertor.
func (c *ConcatCol) Meta() *convertor.Meta { return &concatColMeta }

// Preproc resolves the two source columns and the output placement.
func (c *ConcatCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	idx1, err := ctx.InputColumn("input_col_idx1")
	if err != nil {
		return err
	}
	idx2, err := ctx.InputColumn("input_col_idx2")
	if err != nil {
		return err
	}
	c.inputColIdxs = []int{idx1, idx2}
	return c.resolveOutput(ctx)
}

var concatColsMeta = convertor.Meta{
	Key:         "concat_cols",
	Name:        "複数列結合",
	Description: "指定した複数列を結合します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idxs", Type: params.TypeAttributeList, Required: true,
			Description: "columns to concatenate, in order"},
		&params.Param{Name: "output_col_name", Type: params.TypeString,
			Description: "name of the result column"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "position of the result column"},
		&params.Param{Name: "separator", Type: params.TypeString, Default: "",
			Description: "string placed between the joined values"},
	),
}

// ConcatCols joins any number of columns into one.
type ConcatCols struct {
	concatBase
}

// NewConcatCols creates a concat_cols convertor.
func NewConcatCols() convertor.Convertor { return &ConcatCols{} }

// Meta implements convertor.Convertor.
func (c *ConcatCols) Meta() *convertor.Meta { return &concatColsMeta }

// Preproc resolves the source columns and the output placement.
func (c *ConcatCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	idxs, err := ctx.InputColumns("input_col_idxs")
	if err != nil {
		return err
	}
	c.inputColIdxs = idxs
	return c.resolveOutput(ctx)
}

// concatBase carries the shared output placement logic of the concat
// convertors. The result column replaces an existing column of the same
// name; otherwise it is inserted at the requested position or appended.
type concatBase struct {
	convertor.Base

	inputColIdxs  []int
	outputColName string
	outputColIdx  int
	delCol        int
	separator     string
}

func (c *concatBase) resolveOutput(ctx *convertor.Context) error {
	var err error
	if c.outputColName, err = ctx.String("output_col_name"); err != nil {
		return err
	}
	if c.outputColIdx, err = ctx.OutputColumn("output_col_idx"); err != nil {
		return err
	}
	if c.separator, err = ctx.String("separator"); err != nil {
		return err
	}

	headers := c.HeaderRow()
	if !ctx.Has("output_col_name") {
		names := make([]string, len(c.inputColIdxs))
		for i, idx := range c.inputColIdxs {
			names[i] = headers[idx]
		}
		c.outputColName = strings.Join(names, c.separator)
	}

	c.delCol = -1
	for i, h := range headers {
		if h == c.outputColName {
			c.delCol = i
			break
		}
	}
	if c.delCol >= 0 {
		if c.outputColIdx < 0 {
			c.outputColIdx = c.delCol
		} else if c.delCol < c.outputColIdx {
			c.outputColIdx--
		}
	} else if c.outputColIdx < 0 || c.outputColIdx > len(headers) {
		c.outputColIdx = len(headers)
	}
	return nil
}

// ProcessHeader emits the header row with the result column placed.
func (c *concatBase) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(c.reorder(headers, c.outputColName))
}

// ProcessRecord joins the source cells and emits the reordered record.
func (c *concatBase) ProcessRecord(record []string, ctx *convertor.Context) error {
	values := make([]string, len(c.inputColIdxs))
	for i, idx := range c.inputColIdxs {
		values[i] = record[idx]
	}
	return ctx.Output(c.reorder(record, strings.Join(values, c.separator)))
}

func (c *concatBase) reorder(row []string, value string) []string {
	out := make([]string, 0, len(row)+1)
	out = append(out, row...)
	if c.delCol >= 0 && c.delCol < len(out) {
		out = append(out[:c.delCol], out[c.delCol+1:]...)
	}
	idx := c.outputColIdx
	if idx < 0 || idx > len(out) {
		idx = len(out)
	}
	out = append(out, "")
	copy(out[idx+1:], out[idx:])
	out[idx] = value
	return out
}
