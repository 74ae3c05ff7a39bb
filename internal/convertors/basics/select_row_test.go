package basics

import (
	"testing"
)

var cityRows = [][]string{
	{"name", "pref"},
	{"Tokyo", "東京都"},
	{"Hachioji", "東京都"},
	{"Osaka", "大阪府"},
}

func TestSelectRowMatch(t *testing.T) {
	got, err := run(t, NewSelectRowMatch(), map[string]any{
		"input_col_idx": "name",
		"query":         "Tokyo",
	}, cityRows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 2 || got[1][0] != "Tokyo" {
		t.Errorf("output = %v, want only the exact match kept", got)
	}
}

func TestSelectRowContains(t *testing.T) {
	got, err := run(t, NewSelectRowContains(), map[string]any{
		"input_col_idx": "pref",
		"query":         "東京",
	}, cityRows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	for _, row := range got[1:] {
		if row[1] != "東京都" {
			t.Errorf("kept row %v, want only 東京都 rows", row)
		}
	}
}

func TestSelectRowPatternAnchored(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"Tokyo"},
		{"West Tokyo"},
	}

	got, err := run(t, NewSelectRowPattern(), map[string]any{
		"input_col_idx": "v",
		"query":         "T.k",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	// The match must start at the head of the value
	if len(got) != 2 || got[1][0] != "Tokyo" {
		t.Errorf("output = %v, want only the value matching at position 0", got)
	}
}

func TestSelectRowPatternInvalid(t *testing.T) {
	rows := [][]string{{"v"}}

	_, err := run(t, NewSelectRowPattern(), map[string]any{
		"input_col_idx": "v",
		"query":         "(",
	}, rows)
	if err == nil {
		t.Fatal("expected error for an invalid pattern")
	}
}
