package basics

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var truncateMeta = convertor.Meta{
	Key:         "truncate",
	Name:        "文字列を切り詰める",
	Description: "文字列を指定された文字数で切り取ります。",
	Params: convertor.IOParams(
		&params.Param{Name: "length", Type: params.TypeInt, Default: 10,
			Validators:  []params.Validator{params.IntRange(1, 1<<31 - 1)},
			Description: "maximum number of characters to keep"},
		&params.Param{Name: "ellipsis", Type: params.TypeString, Default: "…",
			Description: "marker appended to truncated values"},
	),
}

// Truncate caps cell values at a character count, appending an ellipsis to
// values that were cut. Lengths count characters, not bytes.
type Truncate struct {
	convertor.InputOutput

	length   int
	ellipsis string
}

// NewTruncate creates a truncate convertor.
func NewTruncate() convertor.Convertor {
	c := &Truncate{}
	c.Value = c.truncate
	return c
}

// Meta implements convertor.Convertor.
func (c *Truncate) Meta() *convertor.Meta { return &truncateMeta }

// Preproc resolves the length and ellipsis on top of the shared parameters.
func (c *Truncate) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.length, err = ctx.Int("length"); err != nil {
		return err
	}
	c.ellipsis, err = ctx.String("ellipsis")
	return err
}

func (c *Truncate) truncate(record []string, ctx *convertor.Context) (string, error) {
	value := record[c.InputColIdx]
	runes := []rune(value)
	if len(runes) > c.length {
		return string(runes[:c.length]) + c.ellipsis, nil
	}
	return value, nil
}
