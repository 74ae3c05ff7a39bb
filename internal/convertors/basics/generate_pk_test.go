package basics

import (
	"reflect"
	"strings"
	"testing"
)

func TestGeneratePk(t *testing.T) {
	rows := [][]string{
		{"id"},
		{"東京都千代田区"},
		{"大阪府大阪市"},
	}

	got, err := run(t, NewGeneratePk(), map[string]any{"input_col_idx": "id"}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	key1, key2 := got[1][0], got[2][0]
	if len(key1) != 6 || len(key2) != 6 {
		t.Errorf("key lengths = %d, %d, want 6", len(key1), len(key2))
	}
	if key1 == key2 {
		t.Errorf("distinct seeds produced the same key %q", key1)
	}
	for _, key := range []string{key1, key2} {
		for _, r := range key {
			if !strings.ContainsRune(keyCharset, r) {
				t.Errorf("key %q contains %q outside the charset", key, r)
			}
		}
	}
}

func TestGeneratePkDeterministic(t *testing.T) {
	rows := [][]string{
		{"id"},
		{"seed-value"},
	}
	p := map[string]any{"input_col_idx": "id", "length": 8}

	first, err := run(t, NewGeneratePk(), p, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	second, err := run(t, NewGeneratePk(), p, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different keys: %v vs %v", first, second)
	}
	if len(first[1][0]) != 8 {
		t.Errorf("key length = %d, want 8", len(first[1][0]))
	}
}

func TestGeneratePkDuplicateSeedAborts(t *testing.T) {
	rows := [][]string{
		{"id"},
		{"same"},
		{"same"},
	}

	_, err := run(t, NewGeneratePk(), map[string]any{"input_col_idx": "id"}, rows)
	if err == nil {
		t.Fatal("expected duplicate seed to abort the run")
	}
}

func TestGeneratePkDuplicateSeedSkips(t *testing.T) {
	rows := [][]string{
		{"id"},
		{"same"},
		{"same"},
		{"other"},
	}

	got, err := run(t, NewGeneratePk(), map[string]any{
		"input_col_idx":       "id",
		"error_if_not_unique": false,
		"skip_if_not_unique":  true,
	}, rows)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected the repeated seed dropped, got %d rows", len(got))
	}
}

func TestShortHash(t *testing.T) {
	a := shortHash("alpha", 6)
	b := shortHash("alpha", 6)
	if a != b {
		t.Errorf("shortHash not stable: %q vs %q", a, b)
	}
	if len(a) != 6 {
		t.Errorf("len = %d, want 6", len(a))
	}
	if shortHash("alpha", 12) == shortHash("beta", 12) {
		t.Error("different seeds hashed to the same key")
	}
}
