// Package basics provides the core convertor catalog: column arithmetic,
// concatenation, insertion, deletion, renaming, reordering, row selection,
// value updates, splitting, key generation and width conversion.
//
// Every convertor in this package registers itself under its task-file key
// when the package is imported.
package basics

import (
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var calcMeta = convertor.Meta{
	Key:         "calc",
	Name:        "列演算",
	Description: "２つの列を四則演算します。",
	Params: params.NewSet(
		&params.Param{Name: "input_col_idx1", Type: params.TypeAttribute, Required: true,
			Description: "first operand column"},
		&params.Param{Name: "input_col_idx2", Type: params.TypeAttribute, Required: true,
			Description: "second operand column"},
		&params.Param{Name: "output_col_name", Type: params.TypeString,
			Description: "name of the appended result column"},
		&params.Param{Name: "operator", Type: params.TypeString, Default: "+",
			Validators:  []params.Validator{params.Enum{Values: []string{"+", "-", "*", "/"}}},
			Description: "arithmetic operator"},
		&params.Param{Name: "delete_col", Type: params.TypeBool, Default: false,
			Description: "whether to drop the operand columns"},
		&params.Param{Name: "formula", Type: params.TypeString,
			Description: "expression over the operands a and b, overrides operator"},
	),
}

// Calc appends the result of an arithmetic operation on two columns.
type Calc struct {
	convertor.Base

	attr1, attr2  int
	outputColName string
	operator      string
	deleteCol     bool
	formula       *vm.Program
}

// NewCalc creates a calc convertor.
func NewCalc() convertor.Convertor { return &Calc{} }

// Meta implements convertor.Convertor.
func (c *Calc) Meta() *convertor.Meta { return &calcMeta }

// Preproc resolves the operand columns and the output name.
func (c *Calc) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.attr1, err = ctx.InputColumn("input_col_idx1"); err != nil {
		return err
	}
	if c.attr2, err = ctx.InputColumn("input_col_idx2"); err != nil {
		return err
	}
	if c.outputColName, err = ctx.String("output_col_name"); err != nil {
		return err
	}
	if c.operator, err = ctx.String("operator"); err != nil {
		return err
	}
	if c.deleteCol, err = ctx.Bool("delete_col"); err != nil {
		return err
	}
	if ctx.Has("formula") {
		formula, err := ctx.String("formula")
		if err != nil {
			return err
		}
		if c.formula, err = expr.Compile(formula); err != nil {
			return errs.WrapConfigError(err, "invalid formula %q", formula)
		}
	}
	if !ctx.Has("output_col_name") {
		headers := c.HeaderRow()
		c.outputColName = headers[c.attr1] + "+" + headers[c.attr2]
	}
	return nil
}

// ProcessHeader appends the result column, dropping operands when requested.
func (c *Calc) ProcessHeader(headers []string, ctx *convertor.Context) error {
	out := c.dropOperands(headers)
	return ctx.Output(append(out, c.outputColName))
}

// ProcessRecord computes the arithmetic result and appends it.
// Non-numeric operands produce an empty result cell instead of an error.
func (c *Calc) ProcessRecord(record []string, ctx *convertor.Context) error {
	result := ""
	a, errA := params.EvalNumber(record[c.attr1])
	b, errB := params.EvalNumber(record[c.attr2])
	if errA == nil && errB == nil {
		var v float64
		var err error
		if c.formula != nil {
			v, err = c.evalFormula(a, b)
		} else {
			v, err = applyOperator(a, b, c.operator)
		}
		if err != nil {
			return err
		}
		result = strconv.FormatFloat(v, 'g', -1, 64)
	}
	out := c.dropOperands(record)
	return ctx.Output(append(out, result))
}

func (c *Calc) dropOperands(row []string) []string {
	out := make([]string, 0, len(row)+1)
	out = append(out, row...)
	if !c.deleteCol {
		return out
	}
	lo, hi := c.attr1, c.attr2
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo != hi && hi < len(out) {
		out = append(out[:hi], out[hi+1:]...)
	}
	if lo < len(out) {
		out = append(out[:lo], out[lo+1:]...)
	}
	return out
}

func (c *Calc) evalFormula(a, b float64) (float64, error) {
	output, err := expr.Run(c.formula, map[string]any{"a": a, "b": b})
	if err != nil {
		return 0, errs.NewRecordError("formula evaluation failed: %s", err.Error())
	}
	switch v := output.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, errs.NewRecordError("formula result %v is not numeric", output)
}

func applyOperator(a, b float64, operator string) (float64, error) {
	switch operator {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errs.NewRecordError("division by zero")
		}
		return a / b, nil
	default:
		return 0, errs.NewConfigError("unknown operator %q", operator)
	}
}
