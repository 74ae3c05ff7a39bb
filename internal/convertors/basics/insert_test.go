package basics

import (
	"reflect"
	"testing"
)

func TestInsertCol(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"1", "2"},
	}

	got, err := run(t, NewInsertCol(), map[string]any{
		"output_col_name": "x",
		"output_col_idx":  1,
		"value":           "v",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"a", "x", "b"},
		{"1", "v", "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInsertColDefaultsToEnd(t *testing.T) {
	rows := [][]string{
		{"a"},
		{"1"},
	}

	got, err := run(t, NewInsertCol(), map[string]any{"output_col_name": "x"}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"a", "x"},
		{"1", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInsertColsSingleValueRepeats(t *testing.T) {
	rows := [][]string{
		{"a"},
		{"1"},
	}

	got, err := run(t, NewInsertCols(), map[string]any{
		"output_col_names": []any{"x", "y"},
		"values":           []any{"-"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"a", "x", "y"},
		{"1", "-", "-"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestInsertColsLengthMismatch(t *testing.T) {
	rows := [][]string{{"a"}}

	_, err := run(t, NewInsertCols(), map[string]any{
		"output_col_names": []any{"x", "y"},
		"values":           []any{"1", "2", "3"},
	}, rows)
	if err == nil {
		t.Fatal("expected error when values and names differ in length")
	}
}
