package extras

import (
	"testing"
)

func TestDatetimeExtract(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"2023年1月31日 4時15分30秒"},
	}

	got, err := run(t, NewDatetimeExtract(), map[string]any{"input_col_idx": "v"}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "2023-01-31 04:15:30" {
		t.Errorf("cell = %q, want 2023-01-31 04:15:30", got[1][0])
	}
}

func TestDatetimeExtractDefaultWhenUnderspecified(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"2023年1月31日"},
		{"不明"},
	}

	// The default format prints seconds, which a plain date cannot satisfy
	got, err := run(t, NewDatetimeExtract(), map[string]any{
		"input_col_idx": "v",
		"default":       "N/A",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "N/A" || got[2][0] != "N/A" {
		t.Errorf("cells = %q, %q, want the default written", got[1][0], got[2][0])
	}
}

func TestDatetimeExtractCustomFormat(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"平成3年"},
	}

	got, err := run(t, NewDatetimeExtract(), map[string]any{
		"input_col_idx": "v",
		"format":        "%Y",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "1991" {
		t.Errorf("cell = %q, want 1991", got[1][0])
	}
}

func TestDateExtract(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"発売日は2023年1月31日です"},
	}

	got, err := run(t, NewDateExtract(), map[string]any{
		"input_col_idx":   "v",
		"output_col_name": "date",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[0][1] != "date" {
		t.Errorf("header = %v, want date column appended", got[0])
	}
	if got[1][1] != "2023-01-31" {
		t.Errorf("cell = %q, want 2023-01-31", got[1][1])
	}
}

func TestDateExtractZeroesTimeFields(t *testing.T) {
	rows := [][]string{
		{"v"},
		{"2023年1月31日 4時15分30秒"},
	}

	got, err := run(t, NewDateExtract(), map[string]any{
		"input_col_idx": "v",
		"format":        "%Y-%m-%dT%H:%M:%S",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][0] != "2023-01-31T00:00:00" {
		t.Errorf("cell = %q, want time fields zeroed", got[1][0])
	}
}

func TestDateExtractKeepsFilledCellsByDefault(t *testing.T) {
	rows := [][]string{
		{"v", "date"},
		{"2023年1月31日", "2000-01-01"},
		{"2023年2月19日", ""},
	}

	got, err := run(t, NewDateExtract(), map[string]any{
		"input_col_idx":   "v",
		"output_col_name": "date",
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got[1][1] != "2000-01-01" {
		t.Errorf("filled cell = %q, want preserved", got[1][1])
	}
	if got[2][1] != "2023-02-19" {
		t.Errorf("empty cell = %q, want extracted date", got[2][1])
	}
}
