package basics

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var renameColMeta = convertor.Meta{
	Key:         "rename_col",
	Name:        "カラム名変更",
	Description: "指定した列名を変更します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to rename"},
		&params.Param{Name: "output_col_name", Type: params.TypeString, Required: true,
			Description: "new column name"},
	),
}

// RenameCol renames one column; records pass through unchanged.
type RenameCol struct {
	convertor.Base

	inputColIdx int
	newName     string
}

// NewRenameCol creates a rename_col convertor.
func NewRenameCol() convertor.Convertor { return &RenameCol{} }

// Meta implements convertor.Convertor.
func (c *RenameCol) Meta() *convertor.Meta { return &renameColMeta }

// Preproc resolves the target column and new name.
func (c *RenameCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	c.newName, err = ctx.String("output_col_name")
	return err
}

// ProcessHeader emits the header row with the column renamed.
func (c *RenameCol) ProcessHeader(headers []string, ctx *convertor.Context) error {
	out := make([]string, len(headers))
	copy(out, headers)
	out[c.inputColIdx] = c.newName
	return ctx.Output(out)
}

var renameColsMeta = convertor.Meta{
	Key:         "rename_cols",
	Name:        "カラム名一括変更",
	Description: "カラム名を一括で変更します。",
	Params: params.NewSet(
		&params.Param{Name: "column_list", Type: params.TypeStringList, Required: true,
			Description: "replacement names for every column, in order"},
	),
}

// RenameCols replaces the whole header row.
type RenameCols struct {
	convertor.Base

	columnList []string
}

// NewRenameCols creates a rename_cols convertor.
func NewRenameCols() convertor.Convertor { return &RenameCols{} }

// Meta implements convertor.Convertor.
func (c *RenameCols) Meta() *convertor.Meta { return &renameColsMeta }

// Preproc reads the replacement name list.
func (c *RenameCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	c.columnList, err = ctx.StringList("column_list")
	return err
}

// ProcessHeader emits the replacement header row. The list length must match
// the table width.
func (c *RenameCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	if len(headers) != len(c.columnList) {
		return errs.NewConfigError(
			"the length of \"column_list\" (%d) must be equal to the number of columns (%d)",
			len(c.columnList), len(headers))
	}
	return ctx.Output(c.columnList)
}
