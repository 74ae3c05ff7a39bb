package basics

import (
	"regexp"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

func selectRowParams() *params.Set {
	return params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column the condition is evaluated against"},
		&params.Param{Name: "query", Type: params.TypeString, Required: true,
			Description: "condition value"},
	)
}

var selectRowMatchMeta = convertor.Meta{
	Key:         "select_row_match",
	Name:        "行選択フィルター（一致）",
	Description: "指定された列の値が文字列と一致する行を選択します。",
	Params:      selectRowParams(),
}

// SelectRowMatch keeps rows whose cell equals the query exactly.
type SelectRowMatch struct {
	selectRowBase
}

// NewSelectRowMatch creates a select_row_match convertor.
func NewSelectRowMatch() convertor.Convertor {
	c := &SelectRowMatch{}
	c.keep = func(value string) bool { return value == c.query }
	return c
}

// Meta implements convertor.Convertor.
func (c *SelectRowMatch) Meta() *convertor.Meta { return &selectRowMatchMeta }

var selectRowContainsMeta = convertor.Meta{
	Key:         "select_row_contains",
	Name:        "行選択フィルター（部分文字列）",
	Description: "指定された文字列が含まれる行を選択します。",
	Params:      selectRowParams(),
}

// SelectRowContains keeps rows whose cell contains the query.
type SelectRowContains struct {
	selectRowBase
}

// NewSelectRowContains creates a select_row_contains convertor.
func NewSelectRowContains() convertor.Convertor {
	c := &SelectRowContains{}
	c.keep = func(value string) bool { return strings.Contains(value, c.query) }
	return c
}

// Meta implements convertor.Convertor.
func (c *SelectRowContains) Meta() *convertor.Meta { return &selectRowContainsMeta }

var selectRowPatternMeta = convertor.Meta{
	Key:         "select_row_pattern",
	Name:        "行選択フィルター（正規表現）",
	Description: "指定された列が指定した正規表現と一致する行を選択します。",
	Params:      selectRowParams(),
}

// SelectRowPattern keeps rows whose cell matches a regular expression.
// The pattern is anchored at the start of the value.
type SelectRowPattern struct {
	selectRowBase

	pattern *regexp.Regexp
}

// NewSelectRowPattern creates a select_row_pattern convertor.
func NewSelectRowPattern() convertor.Convertor {
	c := &SelectRowPattern{}
	c.keep = func(value string) bool {
		loc := c.pattern.FindStringIndex(value)
		return loc != nil && loc[0] == 0
	}
	return c
}

// Meta implements convertor.Convertor.
func (c *SelectRowPattern) Meta() *convertor.Meta { return &selectRowPatternMeta }

// Preproc compiles the pattern on top of the shared resolution.
func (c *SelectRowPattern) Preproc(ctx *convertor.Context) error {
	if err := c.selectRowBase.Preproc(ctx); err != nil {
		return err
	}
	pattern, err := regexp.Compile(c.query)
	if err != nil {
		return errs.WrapConfigError(err, "parameter \"query\"")
	}
	c.pattern = pattern
	return nil
}

// selectRowBase resolves the shared column and query parameters and drops
// records failing the keep predicate.
type selectRowBase struct {
	convertor.Base

	inputColIdx int
	query       string
	keep        func(value string) bool
}

func (c *selectRowBase) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	c.query, err = ctx.String("query")
	return err
}

func (c *selectRowBase) ProcessRecord(record []string, ctx *convertor.Context) error {
	if c.keep(record[c.inputColIdx]) {
		return ctx.Output(record)
	}
	return nil
}
