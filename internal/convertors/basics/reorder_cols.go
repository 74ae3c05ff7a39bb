package basics

import (
	"fmt"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var reorderColsMeta = convertor.Meta{
	Key:         "reorder_cols",
	Name:        "カラム並べ替え",
	Description: "カラムを指定した順番に並べ替えます。",
	Params: params.NewSet(
		&params.Param{Name: "column_list", Type: params.TypeAttributeList, Required: true,
			Description: "column names or positions in the desired output order"},
	),
}

// ReorderCols rearranges columns into the order given by a list of names or
// positions. Columns absent from the list are dropped; a column may appear
// more than once.
type ReorderCols struct {
	convertor.Base

	mapping []int
}

// NewReorderCols creates a reorder_cols convertor.
func NewReorderCols() convertor.Convertor { return &ReorderCols{} }

// Meta implements convertor.Convertor.
func (c *ReorderCols) Meta() *convertor.Meta { return &reorderColsMeta }

// Preproc resolves every entry of the order list, collecting all the
// unresolvable entries into one error.
func (c *ReorderCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	raw, err := ctx.Raw("column_list")
	if err != nil {
		return err
	}
	items, ok := raw.([]any)
	if !ok {
		if strs, isStrs := raw.([]string); isStrs {
			items = make([]any, len(strs))
			for i, s := range strs {
				items[i] = s
			}
		} else {
			return errs.NewConfigError("parameter \"column_list\": expected list, got %T", raw)
		}
	}

	headers := c.HeaderRow()
	var missing []string
	c.mapping = c.mapping[:0]
	for _, item := range items {
		idx, err := params.ResolveColumn(item, headers)
		if err != nil {
			missing = append(missing, toLabel(item))
			continue
		}
		c.mapping = append(c.mapping, idx)
	}
	if len(missing) > 0 {
		return errs.NewConfigError(
			"%q are not in the original headers", strings.Join(missing, ","))
	}
	return nil
}

// ProcessHeader emits the reordered header row.
func (c *ReorderCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(c.reorder(headers))
}

// ProcessRecord emits the reordered record.
func (c *ReorderCols) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(c.reorder(record))
}

func (c *ReorderCols) reorder(row []string) []string {
	out := make([]string, 0, len(c.mapping))
	for _, idx := range c.mapping {
		out = append(out, row[idx])
	}
	return out
}

func toLabel(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	return fmt.Sprint(item)
}
