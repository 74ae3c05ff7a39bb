package basics

import (
	"regexp"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var updateColMeta = convertor.Meta{
	Key:         "update_col",
	Name:        "列の値を変更（無条件）",
	Description: "指定された列の値を変更します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to update"},
		&params.Param{Name: "new", Type: params.TypeString, Required: true,
			Description: "replacement value"},
	),
}

// UpdateCol overwrites every cell of a column with a constant value.
type UpdateCol struct {
	convertor.Base

	inputColIdx int
	newValue    string
}

// NewUpdateCol creates an update_col convertor.
func NewUpdateCol() convertor.Convertor { return &UpdateCol{} }

// Meta implements convertor.Convertor.
func (c *UpdateCol) Meta() *convertor.Meta { return &updateColMeta }

// Preproc resolves the target column and replacement value.
func (c *UpdateCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	c.newValue, err = ctx.String("new")
	return err
}

// ProcessRecord replaces the cell unconditionally.
func (c *UpdateCol) ProcessRecord(record []string, ctx *convertor.Context) error {
	out := make([]string, len(record))
	copy(out, record)
	out[c.inputColIdx] = c.newValue
	return ctx.Output(out)
}

func updateQueryParams() *params.Set {
	return params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to update"},
		&params.Param{Name: "query", Type: params.TypeString, Required: true,
			Description: "value or pattern to look for"},
		&params.Param{Name: "new", Type: params.TypeString, Required: true,
			Description: "replacement value"},
	)
}

var updateColMatchMeta = convertor.Meta{
	Key:         "update_col_match",
	Name:        "列の値を変更（完全一致）",
	Description: "指定された列の値が文字列と完全一致する場合に変更します。",
	Params:      updateQueryParams(),
}

// UpdateColMatch replaces cells equal to the query.
type UpdateColMatch struct {
	updateQueryBase
}

// NewUpdateColMatch creates an update_col_match convertor.
func NewUpdateColMatch() convertor.Convertor {
	c := &UpdateColMatch{}
	c.update = func(value string) string {
		if value == c.query {
			return c.newValue
		}
		return value
	}
	return c
}

// Meta implements convertor.Convertor.
func (c *UpdateColMatch) Meta() *convertor.Meta { return &updateColMatchMeta }

var updateColContainsMeta = convertor.Meta{
	Key:         "update_col_contains",
	Name:        "列の値を変更（部分一致）",
	Description: "指定された列の値が文字列と部分一致する場合に変更します。",
	Params:      updateQueryParams(),
}

// UpdateColContains replaces each occurrence of the query inside a cell.
type UpdateColContains struct {
	updateQueryBase
}

// NewUpdateColContains creates an update_col_contains convertor.
func NewUpdateColContains() convertor.Convertor {
	c := &UpdateColContains{}
	c.update = func(value string) string {
		return strings.ReplaceAll(value, c.query, c.newValue)
	}
	return c
}

// Meta implements convertor.Convertor.
func (c *UpdateColContains) Meta() *convertor.Meta { return &updateColContainsMeta }

var updateColPatternMeta = convertor.Meta{
	Key:         "update_col_pattern",
	Name:        "列の値を変更（正規表現）",
	Description: "指定された列の値が指定した正規表現と一致する場合に変更します。",
	Params:      updateQueryParams(),
}

// UpdateColPattern rewrites each match of a regular expression inside a
// cell. The replacement may reference capture groups with $1, $2 and so on.
type UpdateColPattern struct {
	updateQueryBase

	pattern *regexp.Regexp
}

// NewUpdateColPattern creates an update_col_pattern convertor.
func NewUpdateColPattern() convertor.Convertor {
	c := &UpdateColPattern{}
	c.update = func(value string) string {
		return c.pattern.ReplaceAllString(value, c.newValue)
	}
	return c
}

// Meta implements convertor.Convertor.
func (c *UpdateColPattern) Meta() *convertor.Meta { return &updateColPatternMeta }

// Preproc compiles the pattern on top of the shared resolution.
func (c *UpdateColPattern) Preproc(ctx *convertor.Context) error {
	if err := c.updateQueryBase.Preproc(ctx); err != nil {
		return err
	}
	pattern, err := regexp.Compile(c.query)
	if err != nil {
		return errs.WrapConfigError(err, "parameter \"query\"")
	}
	c.pattern = pattern
	return nil
}

// updateQueryBase resolves the shared parameters and applies the update
// function to the target cell.
type updateQueryBase struct {
	convertor.Base

	inputColIdx int
	query       string
	newValue    string
	update      func(value string) string
}

func (c *updateQueryBase) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	if c.query, err = ctx.String("query"); err != nil {
		return err
	}
	c.newValue, err = ctx.String("new")
	return err
}

func (c *updateQueryBase) ProcessRecord(record []string, ctx *convertor.Context) error {
	out := make([]string, len(record))
	copy(out, record)
	out[c.inputColIdx] = c.update(out[c.inputColIdx])
	return ctx.Output(out)
}
