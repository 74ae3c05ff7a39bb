package basics

import (
	"sort"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var deleteColMeta = convertor.Meta{
	Key:         "delete_col",
	Name:        "列を削除する",
	Description: "指定した列を削除します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to delete"},
	),
}

// DeleteCol removes one column.
type DeleteCol struct {
	convertor.Base

	inputColIdx int
}

// NewDeleteCol creates a delete_col convertor.
func NewDeleteCol() convertor.Convertor { return &DeleteCol{} }

// Meta implements convertor.Convertor.
func (c *DeleteCol) Meta() *convertor.Meta { return &deleteColMeta }

// Preproc resolves the target column.
func (c *DeleteCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	c.inputColIdx, err = ctx.InputColumn("input_col_idx")
	return err
}

// ProcessHeader emits the header row without the deleted column.
func (c *DeleteCol) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(removeAt(headers, c.inputColIdx))
}

// ProcessRecord emits the record without the deleted column.
func (c *DeleteCol) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(removeAt(record, c.inputColIdx))
}

var deleteColsMeta = convertor.Meta{
	Key:         "delete_cols",
	Name:        "列を削除する",
	Description: "指定した複数列を削除します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idxs", Type: params.TypeAttributeList, Required: true,
			Description: "columns to delete"},
	),
}

// DeleteCols removes several columns at once.
type DeleteCols struct {
	convertor.Base

	// positions sorted descending so each removal leaves the rest valid
	inputColIdxs []int
}

// NewDeleteCols creates a delete_cols convertor.
func NewDeleteCols() convertor.Convertor { return &DeleteCols{} }

// Meta implements convertor.Convertor.
func (c *DeleteCols) Meta() *convertor.Meta { return &deleteColsMeta }

// Preproc resolves the target columns.
func (c *DeleteCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	idxs, err := ctx.InputColumns("input_col_idxs")
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
	c.inputColIdxs = idxs
	return nil
}

// ProcessHeader emits the header row without the deleted columns.
func (c *DeleteCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(removeAll(headers, c.inputColIdxs))
}

// ProcessRecord emits the record without the deleted columns.
func (c *DeleteCols) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(removeAll(record, c.inputColIdxs))
}

func removeAt(row []string, idx int) []string {
	out := make([]string, 0, len(row))
	out = append(out, row...)
	if idx >= 0 && idx < len(out) {
		out = append(out[:idx], out[idx+1:]...)
	}
	return out
}

func removeAll(row []string, sortedDesc []int) []string {
	out := make([]string, 0, len(row))
	out = append(out, row...)
	for _, idx := range sortedDesc {
		if idx >= 0 && idx < len(out) {
			out = append(out[:idx], out[idx+1:]...)
		}
	}
	return out
}
