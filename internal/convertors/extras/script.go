package extras

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// maxScriptLength caps the script source size.
const maxScriptLength = 100 * 1024

var scriptMeta = convertor.Meta{
	Key:         "script",
	Name:        "スクリプト変換",
	Description: "JavaScript の transform 関数で行を変換します。",
	Params: params.NewSet(
		&params.Param{Name: "script", Type: params.TypeString, Required: true,
			Description: "JavaScript source defining transform(record)"},
	),
}

// Script transforms each row with a user-supplied JavaScript function.
//
// The script must define transform(record), where record is an object keyed
// by header names. Returned values replace the cells of headers present in
// the result object; other cells keep their values. Returning null or
// undefined drops the row.
//
// The goja runtime is sandboxed and not goroutine-safe; each convertor
// instance owns one runtime and the engine drives records sequentially.
type Script struct {
	convertor.Base

	runtime   *goja.Runtime
	transform goja.Callable
}

// NewScript creates a script convertor.
func NewScript() convertor.Convertor { return &Script{} }

// Meta implements convertor.Convertor.
func (c *Script) Meta() *convertor.Meta { return &scriptMeta }

// Preproc compiles the script and resolves the transform function.
func (c *Script) Preproc(ctx *convertor.Context) error {
	if err := c.Base.Preproc(ctx); err != nil {
		return err
	}
	source, err := ctx.String("script")
	if err != nil {
		return err
	}
	if source == "" {
		return errs.NewConfigError("script must not be empty")
	}
	if len(source) > maxScriptLength {
		return errs.NewConfigError("script exceeds maximum length of %d bytes", maxScriptLength)
	}

	vm := goja.New()
	if _, err := vm.RunString(source); err != nil {
		return errs.WrapConfigError(err, "script compilation failed")
	}

	fnValue := vm.Get("transform")
	if fnValue == nil || goja.IsUndefined(fnValue) {
		return errs.NewConfigError("script does not define a transform function")
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return errs.NewConfigError("transform is not a function")
	}

	c.runtime = vm
	c.transform = fn
	return nil
}

// ProcessRecord runs transform over the header-keyed row object.
func (c *Script) ProcessRecord(record []string, ctx *convertor.Context) error {
	headers := c.HeaderRow()
	row := make(map[string]any, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = record[i]
		}
	}

	result, err := c.transform(goja.Undefined(), c.runtime.ToValue(row))
	if err != nil {
		return errs.WrapRecordError(err, "transform failed")
	}
	if goja.IsUndefined(result) || goja.IsNull(result) {
		// null or undefined drops the row
		return nil
	}

	exported, ok := result.Export().(map[string]any)
	if !ok {
		return errs.NewRecordError(
			"transform must return an object, got %T", result.Export())
	}

	out := make([]string, len(record))
	copy(out, record)
	for i, h := range headers {
		if v, present := exported[h]; present && i < len(out) {
			out[i] = cellString(v)
		}
	}
	return ctx.Output(out)
}

// cellString renders a JavaScript value as a cell.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
