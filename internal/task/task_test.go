package task

import (
	"strings"
	"testing"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/registry"
)

type noopConvertor struct {
	convertor.Base
	meta convertor.Meta
}

func (c *noopConvertor) Meta() *convertor.Meta { return &c.meta }

// registerNoop registers a stub convertor for the duration of the test.
func registerNoop(t *testing.T, key string) {
	t.Helper()
	registry.Register(key, func() convertor.Convertor {
		return &noopConvertor{meta: convertor.Meta{Key: key, Params: params.NewSet()}}
	})
}

func TestTaskString(t *testing.T) {
	withNote := &Task{Convertor: "delete_col", Note: "drop the id column"}
	if got := withNote.String(); got != "delete_col(drop the id column)" {
		t.Errorf("String() = %q", got)
	}
	bare := &Task{Convertor: "delete_col"}
	if got := bare.String(); got != "delete_col" {
		t.Errorf("String() = %q", got)
	}
}

func TestCreate(t *testing.T) {
	registerNoop(t, "noop_task_test")

	tests := []struct {
		name    string
		raw     map[string]any
		wantErr string
	}{
		{
			name: "valid",
			raw: map[string]any{
				"convertor": "noop_task_test",
				"params":    map[string]any{"x": 1},
				"note":      "n",
			},
		},
		{
			name: "nil params becomes empty map",
			raw:  map[string]any{"convertor": "noop_task_test", "params": nil},
		},
		{
			name:    "unknown key",
			raw:     map[string]any{"convertor": "noop_task_test", "params": nil, "bogus": 1},
			wantErr: "undefined keys",
		},
		{
			name:    "missing convertor",
			raw:     map[string]any{"params": map[string]any{}},
			wantErr: `"convertor" is required`,
		},
		{
			name:    "missing params",
			raw:     map[string]any{"convertor": "noop_task_test"},
			wantErr: `"params" is required`,
		},
		{
			name:    "unregistered convertor",
			raw:     map[string]any{"convertor": "nope_task_test", "params": nil},
			wantErr: "not registered",
		},
		{
			name:    "params not an object",
			raw:     map[string]any{"convertor": "noop_task_test", "params": "x"},
			wantErr: "must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Create(tt.raw)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error: %v", err)
			}
			if task.Params == nil {
				t.Error("expected non-nil params map")
			}
		})
	}
}

func TestFromFiles(t *testing.T) {
	registerNoop(t, "noop_task_test")

	first := writeTaskFile(t, "first.json",
		`{"convertor": "noop_task_test", "params": {"a": 1}, "note": "one"}`)
	second := writeTaskFile(t, "second.yaml",
		"- convertor: noop_task_test\n  params:\n    b: 2\n- convertor: noop_task_test\n  params: null\n")

	tasks, err := FromFiles(first, second)
	if err != nil {
		t.Fatalf("FromFiles() error: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Note != "one" {
		t.Errorf("tasks[0].Note = %q, want 'one'", tasks[0].Note)
	}
	if got, ok := tasks[1].Params["b"]; !ok || got != 2 {
		t.Errorf("tasks[1].Params[b] = %v, want 2", got)
	}
	if tasks[2].Params == nil {
		t.Error("expected empty params map for null params")
	}
}

func TestFromFilesSchemaViolation(t *testing.T) {
	path := writeTaskFile(t, "bad.json", `{"convertor": "x"}`)

	_, err := FromFiles(path)
	if err == nil {
		t.Fatal("expected error for missing params key")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to name the file, got: %v", err)
	}
}

func TestFromFilesParseFailure(t *testing.T) {
	path := writeTaskFile(t, "broken.json", `{"convertor": `)

	_, err := FromFiles(path)
	if err == nil {
		t.Fatal("expected error for broken JSON")
	}
}
