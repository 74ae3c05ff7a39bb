package extras

import (
	"reflect"
	"testing"
)

func TestAutoMappingCols(t *testing.T) {
	rows := [][]string{
		{"人口", "名称"},
		{"100", "東京"},
	}

	got, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list": []any{"名称", "人口"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"名称", "人口"},
		{"東京", "100"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestAutoMappingColsUnmatchedTargetEmpty(t *testing.T) {
	rows := [][]string{
		{"名称"},
		{"東京"},
	}

	got, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list": []any{"名称", "備考"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"名称", "備考"},
		{"東京", ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestAutoMappingColsThreshold(t *testing.T) {
	rows := [][]string{
		{"abc"},
		{"1"},
	}

	got, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list": []any{"xyz"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	// The only source scores below the threshold, so the target stays empty
	want := [][]string{
		{"xyz"},
		{""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestAutoMappingColsSimilarHeader(t *testing.T) {
	rows := [][]string{
		{"市町村名"},
		{"川崎市"},
	}

	got, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list": []any{"市区町村名"},
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"市区町村名"},
		{"川崎市"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestAutoMappingColsKeepColname(t *testing.T) {
	rows := [][]string{
		{"市町村名"},
		{"川崎市"},
	}

	got, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list":  []any{"市区町村名"},
		"keep_colname": true,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[0][0] != "市区町村名 / 市町村名" {
		t.Errorf("header = %q, want the source name kept after a slash", got[0][0])
	}
}

func TestAutoMappingColsRejectsBadThreshold(t *testing.T) {
	rows := [][]string{{"a"}}

	_, err := run(t, NewAutoMappingCols(), map[string]any{
		"column_list": []any{"a"},
		"threshold":   120,
	}, rows)
	if err == nil {
		t.Fatal("expected error for a threshold above 100")
	}
}
