package basics

import (
	"reflect"
	"testing"
)

func TestRoundToInteger(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"2.5"},
		{"3.5"},
		{"1.2"},
		{"x"},
	}

	got, err := run(t, NewRound(), map[string]any{"input_col_idx": "v"}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	// Ties round to even; non-numeric cells pass through
	want := [][]string{
		{"v"},
		{"2"},
		{"4"},
		{"1"},
		{"x"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestRoundWithDigits(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"2.25"},
	}

	got, err := run(t, NewRound(), map[string]any{
		"input_col_idx": "v",
		"ndigits":       1,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "2.2" {
		t.Errorf("rounded cell = %q, want 2.2", got[1][0])
	}
}

func TestRoundRejectsNegativeDigits(t *testing.T) {
	rows := [][]string{{"v"}}

	_, err := run(t, NewRound(), map[string]any{
		"input_col_idx": "v",
		"ndigits":       -1,
	}, rows)
	if err == nil {
		t.Fatal("expected error for ndigits outside the allowed range")
	}
}

func TestTruncate(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"abcdef"},
		{"ab"},
		{"東京都千代田区"},
	}

	got, err := run(t, NewTruncate(), map[string]any{
		"input_col_idx": "v",
		"length":        3,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	want := [][]string{
		{"v"},
		{"abc…"},
		{"ab"},
		{"東京都…"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("output = %v, want %v", got, want)
	}
}

func TestTruncateCustomEllipsis(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"abcdef"},
	}

	got, err := run(t, NewTruncate(), map[string]any{
		"input_col_idx": "v",
		"length":        2,
		"ellipsis":      "...",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "ab..." {
		t.Errorf("truncated cell = %q, want ab...", got[1][0])
	}
}
