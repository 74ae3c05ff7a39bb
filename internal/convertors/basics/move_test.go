package basics

import (
	"reflect"
	"testing"
)

func TestMoveCol(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}

	got, err := run(t, NewMoveCol(), map[string]any{
		"input_col_idx":  "c",
		"output_col_idx": 0,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"c", "a", "b"},
		{"3", "1", "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestMoveColDefaultsToEnd(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}

	got, err := run(t, NewMoveCol(), map[string]any{"input_col_idx": "a"}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"b", "c", "a"},
		{"2", "3", "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestRenameCol(t *testing.T) {
	rows := [][]string{
		{"name", "population"},
		{"Tokyo", "14000000"},
	}

	got, err := run(t, NewRenameCol(), map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "市区町村名",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"市区町村名", "population"},
		{"Tokyo", "14000000"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestRenameCols(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"1", "2"},
	}

	got, err := run(t, NewRenameCols(), map[string]any{
		"column_list": []any{"x", "y"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"x", "y"},
		{"1", "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestRenameColsLengthMismatch(t *testing.T) {
	rows := [][]string{{"a", "b"}}

	_, err := run(t, NewRenameCols(), map[string]any{"column_list": []any{"x"}}, rows)
	if err == nil {
		t.Fatal("expected error when the name list does not cover every column")
	}
}

func TestReorderCols(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}

	got, err := run(t, NewReorderCols(), map[string]any{
		"column_list": []any{"c", "a"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"c", "a"},
		{"3", "1"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestReorderColsDuplicateEntries(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"1", "2"},
	}

	got, err := run(t, NewReorderCols(), map[string]any{
		"column_list": []any{"a", "a", "b"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"a", "a", "b"},
		{"1", "1", "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestReorderColsUnknownColumn(t *testing.T) {
	rows := [][]string{{"a", "b"}}

	_, err := run(t, NewReorderCols(), map[string]any{
		"column_list": []any{"a", "missing"},
	}, rows)
	if err == nil {
		t.Fatal("expected error for a column absent from the headers")
	}
}
