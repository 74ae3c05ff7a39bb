package basics

import (
	"reflect"
	"testing"
)

func TestCalcAdd(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"6", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"a", "b", "a+b"},
		{"6", "2", "8"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestCalcDivideDeleteOperands(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"6", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1":  "a",
		"input_col_idx2":  "b",
		"operator":        "/",
		"output_col_name": "ratio",
		"delete_col":      true,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"ratio"},
		{"3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestCalcDivisionByZeroSkipsRecord(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"6", "0"},
		{"6", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
		"operator":       "/",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the zero-divisor row dropped, got %d rows", len(got))
	}
	if got[1][2] != "3" {
		t.Errorf("result cell = %q, want 3", got[1][2])
	}
}

func TestCalcNonNumericYieldsEmpty(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"x", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][2] != "" {
		t.Errorf("result cell = %q, want empty for non-numeric operand", got[1][2])
	}
}

func TestCalcFormula(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"6", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1":  "a",
		"input_col_idx2":  "b",
		"formula":         "a * 2.0 + b",
		"output_col_name": "result",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][2] != "14" {
		t.Errorf("result cell = %q, want 14", got[1][2])
	}
}

func TestCalcFormulaInvalid(t *testing.T) {
	rows := [][]string{{"a", "b"}}

	_, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
		"formula":        "a +",
	}, rows)
	if err == nil {
		t.Fatal("expected error for a formula that does not compile")
	}
}

func TestCalcFormulaNonNumericResultSkipsRecord(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"6", "2"},
	}

	got, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
		"formula":        `"label"`,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("output = %v, want only the header row", got)
	}
}

func TestCalcRejectsUnknownOperator(t *testing.T) {
	rows := [][]string{{"a", "b"}}

	_, err := run(t, NewCalc(), map[string]any{
		"input_col_idx1": "a",
		"input_col_idx2": "b",
		"operator":       "%",
	}, rows)
	if err == nil {
		t.Fatal("expected error for operator outside the allowed set")
	}
}
