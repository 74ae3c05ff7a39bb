package extras

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/mapping"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var autoMappingColsMeta = convertor.Meta{
	Key:         "auto_mapping_cols",
	Name:        "自動カラムマッピング",
	Description: "カラムを指定したリストに自動マッピングします。",
	Params: params.NewSet(
		&params.Param{Name: "column_list", Type: params.TypeStringList, Required: true,
			Description: "column names the table is mapped onto"},
		&params.Param{Name: "keep_colname", Type: params.TypeBool, Default: false,
			Description: "whether renamed columns keep the source name after a slash"},
		&params.Param{Name: "threshold", Type: params.TypeInt, Default: 40,
			Validators:  []params.Validator{params.IntRange(0, 100)},
			Description: "similarity percentage below which a column stays unmapped"},
	),
}

// AutoMappingCols rewrites the table onto a target column list, matching
// source columns by header similarity. Unmatched targets become empty
// columns; source columns below the threshold are dropped.
type AutoMappingCols struct {
	convertor.Base

	// mapping holds one source index per output column, -1 for empty.
	mapping    []int
	newHeaders []string
}

// NewAutoMappingCols creates an auto_mapping_cols convertor.
func NewAutoMappingCols() convertor.Convertor { return &AutoMappingCols{} }

// Meta implements convertor.Convertor.
func (c *AutoMappingCols) Meta() *convertor.Meta { return &autoMappingColsMeta }

// Preproc computes the column assignment against the live headers.
func (c *AutoMappingCols) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	columnList, err := ctx.StringList("column_list")
	if err != nil {
		return err
	}
	keepColname, err := ctx.Bool("keep_colname")
	if err != nil {
		return err
	}
	threshold, err := ctx.Int("threshold")
	if err != nil {
		return err
	}

	headers := c.HeaderRow()
	pair := mapping.NewPair(columnList, headers, nil)

	c.mapping = c.mapping[:0]
	c.newHeaders = c.newHeaders[:0]
	for _, m := range pair.Mapping() {
		if m.Template == nil {
			// sources with no target are dropped
			continue
		}
		if m.Source == nil || m.Score*100 < float64(threshold) {
			c.mapping = append(c.mapping, -1)
			c.newHeaders = append(c.newHeaders, *m.Template)
			continue
		}
		idx := indexOf(headers, *m.Source)
		c.mapping = append(c.mapping, idx)
		if *m.Template == *m.Source || !keepColname {
			c.newHeaders = append(c.newHeaders, *m.Template)
		} else {
			c.newHeaders = append(c.newHeaders, *m.Template+" / "+*m.Source)
		}
	}
	return nil
}

func indexOf(items []string, item string) int {
	for i, s := range items {
		if s == item {
			return i
		}
	}
	return -1
}

// ProcessHeader emits the mapped column names.
func (c *AutoMappingCols) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(c.newHeaders)
}

// ProcessRecord emits the record rebuilt through the assignment.
func (c *AutoMappingCols) ProcessRecord(record []string, ctx *convertor.Context) error {
	out := make([]string, 0, len(c.mapping))
	for _, idx := range c.mapping {
		if idx < 0 || idx >= len(record) {
			out = append(out, "")
		} else {
			out = append(out, record[idx])
		}
	}
	return ctx.Output(out)
}
