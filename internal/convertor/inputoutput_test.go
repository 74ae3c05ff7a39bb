package convertor

import (
	"reflect"
	"strings"
	"testing"
)

// upperConv reads one column and writes its uppercased value.
type upperConv struct {
	InputOutput
	meta Meta
}

func newUpperConv() *upperConv {
	c := &upperConv{meta: Meta{Key: "upper", Params: IOParams()}}
	c.Value = func(record []string, ctx *Context) (string, error) {
		return strings.ToUpper(record[c.InputColIdx]), nil
	}
	return c
}

func (c *upperConv) Meta() *Meta { return &c.meta }

func TestInputOutputReplaceInPlace(t *testing.T) {
	rows := [][]string{
		{"name", "code"},
		{"tokyo", "13"},
	}

	got, err := runOver(t, newUpperConv(), map[string]any{"input_col_idx": "name"}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := [][]string{
		{"name", "code"},
		{"TOKYO", "13"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInputOutputNewColumnAppends(t *testing.T) {
	rows := [][]string{
		{"name", "code"},
		{"tokyo", "13"},
	}

	got, err := runOver(t, newUpperConv(), map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "NAME",
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := [][]string{
		{"name", "code", "NAME"},
		{"tokyo", "13", "TOKYO"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInputOutputExistingNamedColumnReplaced(t *testing.T) {
	rows := [][]string{
		{"name", "upper"},
		{"tokyo", "old"},
	}

	got, err := runOver(t, newUpperConv(), map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "upper",
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// Replaced column moves to the end when no position is given
	want := [][]string{
		{"name", "upper"},
		{"tokyo", "TOKYO"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInputOutputOverwriteFalseKeepsValues(t *testing.T) {
	rows := [][]string{
		{"name", "upper"},
		{"tokyo", "KEPT"},
		{"osaka", ""},
	}

	got, err := runOver(t, newUpperConv(), map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "upper",
		"overwrite":       false,
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got[1][1] != "KEPT" {
		t.Errorf("non-empty cell = %q, want preserved KEPT", got[1][1])
	}
	if got[2][1] != "OSAKA" {
		t.Errorf("empty cell = %q, want computed OSAKA", got[2][1])
	}
}

func TestInputOutputPositionedOutput(t *testing.T) {
	rows := [][]string{
		{"name", "code"},
		{"tokyo", "13"},
	}

	got, err := runOver(t, newUpperConv(), map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "NAME",
		"output_col_idx":  0,
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := [][]string{
		{"NAME", "name", "code"},
		{"TOKYO", "tokyo", "13"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

// splitTwo writes the halves of a dash-separated value into two columns.
type splitTwo struct {
	InputOutputs
	meta Meta
}

func newSplitTwo() *splitTwo {
	c := &splitTwo{meta: Meta{Key: "split_two", Params: IOSParams()}}
	c.Values = func(record []string, ctx *Context) ([]string, error) {
		left, right, _ := strings.Cut(record[c.InputColIdx], "-")
		return []string{left, right}, nil
	}
	return c
}

func (c *splitTwo) Meta() *Meta { return &c.meta }

func TestInputOutputsAppendsNewColumns(t *testing.T) {
	rows := [][]string{
		{"span"},
		{"a-b"},
	}

	got, err := runOver(t, newSplitTwo(), map[string]any{
		"input_col_idx":    "span",
		"output_col_names": []any{"left", "right"},
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	want := [][]string{
		{"span", "left", "right"},
		{"a-b", "a", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInputOutputsKeepNonEmptyWithoutOverwrite(t *testing.T) {
	rows := [][]string{
		{"span", "left", "right"},
		{"a-b", "OLD", ""},
	}

	got, err := runOver(t, newSplitTwo(), map[string]any{
		"input_col_idx":    "span",
		"output_col_names": []any{"left", "right"},
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// Any empty destination triggers recomputation, but the filled cell
	// keeps its old value
	if got[1][1] != "OLD" {
		t.Errorf("filled cell = %q, want OLD", got[1][1])
	}
	if got[1][2] != "b" {
		t.Errorf("empty cell = %q, want computed b", got[1][2])
	}
}

func TestInputOutputsOverwriteRecomputesAll(t *testing.T) {
	rows := [][]string{
		{"span", "left", "right"},
		{"a-b", "OLD", "OLD"},
	}

	got, err := runOver(t, newSplitTwo(), map[string]any{
		"input_col_idx":    "span",
		"output_col_names": []any{"left", "right"},
		"overwrite":        true,
	}, rows)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got[1][1] != "a" || got[1][2] != "b" {
		t.Errorf("row = %v, want recomputed a and b", got[1])
	}
}
