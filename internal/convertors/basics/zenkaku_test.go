package basics

import (
	"testing"
)

func TestToHankaku(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]any
		in    string
		want  string
	}{
		{"digits and ascii", nil, "１２３ＡＢＣ", "123ABC"},
		{"katakana", nil, "アパート", "ｱﾊﾟｰﾄ"},
		{"mixed", nil, "渋谷１０９ビル", "渋谷109ﾋﾞﾙ"},
		{"digits disabled", map[string]any{"digit": false}, "１２３ＡＢ", "１２３AB"},
		{"kana disabled", map[string]any{"kana": false}, "アパート１", "アパート1"},
		{"ignore chars", map[string]any{"ignore_chars": "１"}, "１２３", "１23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := map[string]any{"input_col_idx": "v"}
			for k, v := range tt.extra {
				p[k] = v
			}
			got, err := run(t, NewToHankaku(), p, [][]string{{"v"}, {tt.in}})
			if err != nil {
				t.Fatalf("run() error: %v", err)
			}
			if got[1][0] != tt.want {
				t.Errorf("to_hankaku(%q) = %q, want %q", tt.in, got[1][0], tt.want)
			}
		})
	}
}

func TestToZenkaku(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"digits and ascii", "123abc", "１２３ａｂｃ"},
		{"half width kana composes", "ｱﾊﾟｰﾄ", "アパート"},
		{"kanji untouched", "東京123", "東京１２３"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, NewToZenkaku(), map[string]any{"input_col_idx": "v"},
				[][]string{{"v"}, {tt.in}})
			if err != nil {
				t.Fatalf("run() error: %v", err)
			}
			if got[1][0] != tt.want {
				t.Errorf("to_zenkaku(%q) = %q, want %q", tt.in, got[1][0], tt.want)
			}
		})
	}
}
