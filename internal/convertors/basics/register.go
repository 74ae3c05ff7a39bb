package basics

import "github.com/NII-CPS-Center/tablelinker-lib/internal/registry"

func init() {
	registry.Register("calc", NewCalc)
	registry.Register("concat_col", NewConcatCol)
	registry.Register("concat_cols", NewConcatCols)
	registry.Register("concat_title", NewConcatTitle)
	registry.Register("delete_col", NewDeleteCol)
	registry.Register("delete_cols", NewDeleteCols)
	registry.Register("generate_pk", NewGeneratePk)
	registry.Register("insert_col", NewInsertCol)
	registry.Register("insert_cols", NewInsertCols)
	registry.Register("mapping_cols", NewMappingCols)
	registry.Register("move_col", NewMoveCol)
	registry.Register("rename_col", NewRenameCol)
	registry.Register("rename_cols", NewRenameCols)
	registry.Register("reorder_cols", NewReorderCols)
	registry.Register("round", NewRound)
	registry.Register("select_row_contains", NewSelectRowContains)
	registry.Register("select_row_match", NewSelectRowMatch)
	registry.Register("select_row_pattern", NewSelectRowPattern)
	registry.Register("split_col", NewSplitCol)
	registry.Register("split_row", NewSplitRow)
	registry.Register("to_hankaku", NewToHankaku)
	registry.Register("to_zenkaku", NewToZenkaku)
	registry.Register("truncate", NewTruncate)
	registry.Register("update_col", NewUpdateCol)
	registry.Register("update_col_contains", NewUpdateColContains)
	registry.Register("update_col_match", NewUpdateColMatch)
	registry.Register("update_col_pattern", NewUpdateColPattern)
}
