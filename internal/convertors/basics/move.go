package basics

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var moveColMeta = convertor.Meta{
	Key:         "move_col",
	Name:        "列移動",
	Description: "列を指定した位置に移動します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx", Type: params.TypeAttribute, Required: true,
			Description: "column to move"},
		&params.Param{Name: "output_col_idx", Type: params.TypeOutputAttribute,
			Description: "destination position; omitted means the end"},
	),
}

// MoveCol moves one column to a new position.
type MoveCol struct {
	convertor.Base

	inputColIdx  int
	outputColIdx int
}

// NewMoveCol creates a move_col convertor.
func NewMoveCol() convertor.Convertor { return &MoveCol{} }

// Meta implements convertor.Convertor.
func (c *MoveCol) Meta() *convertor.Meta { return &moveColMeta }

// Preproc resolves the source column and destination. The destination is
// interpreted against the original row, so it shifts left when the source
// column sits before it.
func (c *MoveCol) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.inputColIdx, err = ctx.InputColumn("input_col_idx"); err != nil {
		return err
	}
	if c.outputColIdx, err = ctx.OutputColumn("output_col_idx"); err != nil {
		return err
	}
	if c.outputColIdx < 0 {
		c.outputColIdx = c.NumOfColumns()
	}
	if c.outputColIdx > c.inputColIdx {
		c.outputColIdx--
	}
	return nil
}

// ProcessHeader emits the header row with the column moved.
func (c *MoveCol) ProcessHeader(headers []string, ctx *convertor.Context) error {
	return ctx.Output(moveAt(headers, c.inputColIdx, c.outputColIdx))
}

// ProcessRecord emits the record with the column moved.
func (c *MoveCol) ProcessRecord(record []string, ctx *convertor.Context) error {
	return ctx.Output(moveAt(record, c.inputColIdx, c.outputColIdx))
}

func moveAt(row []string, from, to int) []string {
	out := make([]string, 0, len(row))
	out = append(out, row...)
	if from < 0 || from >= len(out) {
		return out
	}
	value := out[from]
	out = append(out[:from], out[from+1:]...)
	if to < 0 || to > len(out) {
		to = len(out)
	}
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = value
	return out
}
