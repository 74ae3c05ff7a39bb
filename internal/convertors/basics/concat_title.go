package basics

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var concatTitleMeta = convertor.Meta{
	Key:         "concat_title",
	Name:        "タイトル結合",
	Description: "指定した行数の列見出しを結合して新しいタイトルを生成します。",
	Params: params.NewSet(
		&params.Param{Name: "title_from", Type: params.TypeInt, Default: 0,
			Description: "row number the title block starts at"},
		&params.Param{Name: "title_lines", Type: params.TypeInt, Default: 0,
			Description: "number of rows in the title block"},
		&params.Param{Name: "data_from", Type: params.TypeString, Default: "",
			Description: "row number of the first data row, or a string contained in it"},
		&params.Param{Name: "empty_value", Type: params.TypeString, Default: "",
			Description: "placeholder for empty title cells"},
		&params.Param{Name: "separator", Type: params.TypeString, Default: "/",
			Description: "string joining the stacked title parts"},
		&params.Param{Name: "hierarchical_heading", Type: params.TypeBool, Default: false,
			Description: "whether empty title cells inherit from the column to the left"},
	),
}

var reSingleDigit = regexp.MustCompile(`^\d$`)

// ConcatTitle collapses a multi-row title block into a single header row by
// joining the stacked cells of each column.
type ConcatTitle struct {
	convertor.Base

	titleFrom    int
	titleLines   int
	dataFrom     string
	emptyValue   string
	separator    string
	hierarchical bool
}

// NewConcatTitle creates a concat_title convertor.
func NewConcatTitle() convertor.Convertor { return &ConcatTitle{} }

// Meta implements convertor.Convertor.
func (c *ConcatTitle) Meta() *convertor.Meta { return &concatTitleMeta }

// Preproc resolves the title block bounds. When only a data_from marker is
// given, the block height is found by scanning the leading rows for it.
func (c *ConcatTitle) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.titleFrom, err = ctx.Int("title_from"); err != nil {
		return err
	}
	if c.titleLines, err = ctx.Int("title_lines"); err != nil {
		return err
	}
	if c.dataFrom, err = ctx.String("data_from"); err != nil {
		return err
	}
	if c.emptyValue, err = ctx.String("empty_value"); err != nil {
		return err
	}
	if c.separator, err = ctx.String("separator"); err != nil {
		return err
	}
	if c.hierarchical, err = ctx.Bool("hierarchical_heading"); err != nil {
		return err
	}

	switch {
	case c.titleLines == 0 && c.dataFrom == "":
		return errs.NewConfigError("either \"title_lines\" or \"data_from\" must be given")
	case c.titleLines > 0:
		// explicit block height
	case reSingleDigit.MatchString(c.dataFrom):
		n, _ := strconv.Atoi(c.dataFrom)
		c.titleLines = n - c.titleFrom
	default:
		if err := c.scanForDataRow(ctx); err != nil {
			return err
		}
	}
	if c.titleLines == 0 {
		return errs.NewConfigError("no row containing %q found", c.dataFrom)
	}
	return nil
}

// scanForDataRow looks for the data_from marker in the first rows after the
// title start and derives the block height from its position.
func (c *ConcatTitle) scanForDataRow(ctx *convertor.Context) error {
	if err := ctx.Reset(); err != nil {
		return err
	}
	row, err := ctx.Next()
	if err != nil {
		return errs.WrapIOError(err, "scanning for data row")
	}
	for i := 0; i < c.titleFrom; i++ {
		if row, err = ctx.Next(); err != nil {
			return errs.WrapIOError(err, "scanning for data row")
		}
	}
	for i := 0; i < 10; i++ {
		for _, cell := range row {
			if strings.Contains(cell, c.dataFrom) {
				c.titleLines = i
				break
			}
		}
		if c.titleLines > 0 {
			return nil
		}
		row, err = ctx.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errs.WrapIOError(err, "scanning for data row")
		}
	}
	return nil
}

// ProcessHeader consumes the whole title block and emits the joined header
// row. Rows before the block are skipped; the record loop then continues
// from the first data row.
func (c *ConcatTitle) ProcessHeader(headers []string, ctx *convertor.Context) error {
	var err error
	for i := 0; i < c.titleFrom; i++ {
		if headers, err = ctx.Next(); err != nil {
			return errs.WrapIOError(err, "reading title block")
		}
	}

	stacked := make([][]string, len(headers))
	for lineno := 0; lineno < c.titleLines; lineno++ {
		for i, value := range headers {
			if i >= len(stacked) {
				break
			}
			value = strings.ReplaceAll(value, "\n", "")
			if value != "" {
				if c.hierarchical && i > 0 && strings.Join(stacked[i], "") == "" {
					prev := stacked[i-1]
					if len(prev) > 0 {
						stacked[i] = append([]string{}, prev[:len(prev)-1]...)
					}
				}
				stacked[i] = append(stacked[i], value)
			} else {
				stacked[i] = append(stacked[i], "")
			}
		}
		if lineno < c.titleLines-1 {
			if headers, err = ctx.Next(); err != nil {
				return errs.WrapIOError(err, "reading title block")
			}
		}
	}

	out := make([]string, len(stacked))
	for i, values := range stacked {
		var parts []string
		for _, v := range values {
			if v == "" {
				v = c.emptyValue
			}
			if v != "" {
				parts = append(parts, v)
			}
		}
		out[i] = strings.Join(parts, c.separator)
	}
	return ctx.Output(out)
}
