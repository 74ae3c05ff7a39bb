package basics

import (
	"regexp"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var splitColMeta = convertor.Meta{
	Key:         "split_col",
	Name:        "列の分割",
	Description: "列を指定された文字列で分割して、複数の列を生成します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to split"},
		&params.Param{Name: "output_col_names", Type: params.TypeStringList, Required: true,
			Description: "names of the generated columns"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "position of the generated columns; omitted means the end"},
		&params.Param{Name: "separator", Type: params.TypeString, Required: true, Default: ",",
			Description: "regular expression the value is split on"},
	),
}

// SplitCol splits one column into several new columns.
//
// The value is split at most once per generated column; a value with fewer
// parts than generated columns leaves the remaining cells empty.
type SplitCol struct {
	convertor.Base

	inputColIdx    int
	outputColNames []string
	outputColIdx   int
	separator      *regexp.Regexp
}

// NewSplitCol creates a split_col convertor.
func NewSplitCol() convertor.Convertor { return &SplitCol{} }

// Meta implements convertor.Convertor.
func (c *SplitCol) Meta() *convertor.Meta { return &splitColMeta }

// Preproc resolves the source column, output names and separator pattern.
func (c *SplitCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	if c.outputColNames, err = ctx.StringList("output_col_names"); err != nil {
		return err
	}
	if c.outputColIdx, err = ctx.OutputColumn("output_col_idx"); err != nil {
		return err
	}
	sep, err := ctx.String("separator")
	if err != nil {
		return err
	}
	if c.separator, err = regexp.Compile(sep); err != nil {
		return errs.WrapConfigError(err, "parameter \"separator\"")
	}
	if c.outputColIdx < 0 {
		c.outputColIdx = c.NumOfColumns()
	}
	return nil
}

// ProcessHeader inserts the generated column names.
func (c *SplitCol) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(insertListAt(headers, c.outputColIdx, c.outputColNames))
}

// ProcessRecord splits the source cell and inserts the parts.
func (c *SplitCol) ProcessRecord(record []string, ctx *convertor.Context) error {
	parts := c.separator.Split(record[c.inputColIdx], len(c.outputColNames))
	values := make([]string, len(c.outputColNames))
	copy(values, parts)
	return ctx.Output(insertListAt(record, c.outputColIdx, values))
}

var splitRowMeta = convertor.Meta{
	Key:         "split_row",
	Name:        "列を分割して行に展開",
	Description: "列を指定された文字列で分割して、複数の行を生成します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to split"},
		&params.Param{Name: "separator", Type: params.TypeString, Required: true, Default: ",",
			Description: "regular expression the value is split on"},
	),
}

// SplitRow expands one record into several, one per part of the split cell.
type SplitRow struct {
	convertor.Base

	inputColIdx int
	separator   *regexp.Regexp
}

// NewSplitRow creates a split_row convertor.
func NewSplitRow() convertor.Convertor { return &SplitRow{} }

// Meta implements convertor.Convertor.
func (c *SplitRow) Meta() *convertor.Meta { return &splitRowMeta }

// Preproc resolves the source column and separator pattern.
func (c *SplitRow) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	sep, err := ctx.String("separator")
	if err != nil {
		return err
	}
	if c.separator, err = regexp.Compile(sep); err != nil {
		return errs.WrapConfigError(err, "parameter \"separator\"")
	}
	return nil
}

// ProcessRecord emits one copy of the record per part of the split cell.
func (c *SplitRow) ProcessRecord(record []string, ctx *convertor.Context) error {
	for _, part := range c.separator.Split(record[c.inputColIdx], -1) {
		out := make([]string, len(record))
		copy(out, record)
		out[c.inputColIdx] = part
		if err := ctx.Output(out); err != nil {
			return err
		}
	}
	return nil
}
