package basics

import (
	"math"
	"strconv"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var roundMeta = convertor.Meta{
	Key:         "round",
	Name:        "数値を丸める",
	Description: "数値の小数部を指定した桁数で丸めます。",
	Params: convertor.IOParams(
		&params.Param{Name: "ndigits", Type: params.TypeInt, Default: 0,
			Validators:  []params.Validator{params.IntRange(0, 10)},
			Description: "number of decimal digits to keep"},
	),
}

// Round rounds numeric cells to a fixed number of decimal digits.
// Non-numeric cells pass through unchanged. Ties round to even.
type Round struct {
	convertor.InputOutput

	ndigits int
}

// NewRound creates a round convertor.
func NewRound() convertor.Convertor {
	c := &Round{}
	c.Value = c.roundValue
	return c
}

// Meta implements convertor.Convertor.
func (c *Round) Meta() *convertor.Meta { return &roundMeta }

// Preproc resolves the digit count on top of the shared parameters.
func (c *Round) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	c.ndigits, err = ctx.Int("ndigits")
	return err
}

func (c *Round) roundValue(record []string, ctx *convertor.Context) (string, error) {
	value := record[c.InputColIdx]
	f, err := params.EvalNumber(value)
	if err != nil {
		return value, nil
	}
	if c.ndigits <= 0 {
		return strconv.FormatInt(int64(math.RoundToEven(f)), 10), nil
	}
	shift := math.Pow(10, float64(c.ndigits))
	return strconv.FormatFloat(math.RoundToEven(f*shift)/shift, 'g', -1, 64), nil
}
