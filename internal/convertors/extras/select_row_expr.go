package extras

import (
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var selectRowExprMeta = convertor.Meta{
	Key:         "select_row_expr",
	Name:        "行選択（式）",
	Description: "条件式が真になる行を選択します。",
	Params: params.NewSet(
		&params.Param{Name: "query", Type: params.TypeString, Required: true,
			Description: "boolean expression over header-named variables"},
	),
}

// SelectRowExpr keeps the rows for which a boolean expression holds. Cell
// values are bound to variables named after their headers; the whole row is
// also available as the string list "row".
type SelectRowExpr struct {
	convertor.Base

	query   string
	program *vm.Program
}

// NewSelectRowExpr creates a select_row_expr convertor.
func NewSelectRowExpr() convertor.Convertor { return &SelectRowExpr{} }

// Meta implements convertor.Convertor.
func (c *SelectRowExpr) Meta() *convertor.Meta { return &selectRowExprMeta }

// Preproc compiles the expression. Missing variables evaluate to nil rather
// than failing, since header sets vary between files.
func (c *SelectRowExpr) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.query, err = ctx.String("query"); err != nil {
		return err
	}
	c.program, err = expr.Compile(c.query, expr.AllowUndefinedVariables())
	if err != nil {
		return errs.WrapConfigError(err, "invalid expression %q", c.query)
	}
	return nil
}

// ProcessRecord emits the record only when the expression is true.
// Evaluation errors skip the row.
func (c *SelectRowExpr) ProcessRecord(record []string, ctx *convertor.Context) error {
	env := map[string]any{"row": record}
	for i, h := range c.HeaderRow() {
		if i < len(record) {
			env[h] = record[i]
		}
	}

	output, err := expr.Run(c.program, env)
	if err != nil {
		logger.Warn("expression evaluation failed",
			slog.String("query", c.query),
			slog.String("error", err.Error()))
		return nil
	}
	if keep, ok := output.(bool); !ok || !keep {
		return nil
	}
	return ctx.Output(record)
}
