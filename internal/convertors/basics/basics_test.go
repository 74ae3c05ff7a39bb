package basics

import (
	"testing"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/collection"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
)

// run drives a convertor over in-memory rows and returns the output rows.
func run(t *testing.T, conv convertor.Convertor, p map[string]any, rows [][]string) ([][]string, error) {
	t.Helper()
	out := collection.NewArrayOutput()
	ctx, err := convertor.NewContext(conv, p, collection.NewArrayInput(rows), out)
	if err != nil {
		return nil, err
	}
	if err := ctx.Open(); err != nil {
		return nil, err
	}
	defer ctx.Close()
	if err := convertor.Run(conv, ctx); err != nil {
		return nil, err
	}
	return out.Rows(), nil
}
