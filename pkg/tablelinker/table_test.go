package tablelinker

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var fixtureCSV = []byte("name,population,area\nTokyo,14000000,2194\nOsaka,8800000,1905\n")

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestHeaders(t *testing.T) {
	headers, err := FromData(fixtureCSV).Headers()
	if err != nil {
		t.Fatalf("Headers() error: %v", err)
	}
	want := []string{"name", "population", "area"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("Headers() = %v, want %v", headers, want)
	}
}

func TestRows(t *testing.T) {
	rows, err := FromData(fixtureCSV).Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(Rows()) = %d, want 3", len(rows))
	}
	if rows[1][0] != "Tokyo" {
		t.Errorf("rows[1][0] = %q, want Tokyo", rows[1][0])
	}
}

func TestConvert(t *testing.T) {
	result, err := FromData(fixtureCSV).Convert("delete_col", map[string]any{
		"input_col_idx": "area",
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}
	defer result.Cleanup()

	headers, err := result.Headers()
	if err != nil {
		t.Fatalf("Headers() error: %v", err)
	}
	want := []string{"name", "population"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
}

func TestConvertUnknownConvertor(t *testing.T) {
	_, err := FromData(fixtureCSV).Convert("no_such_convertor", nil)
	if err == nil {
		t.Fatal("expected error for an unregistered convertor")
	}
	if !strings.Contains(err.Error(), "no_such_convertor") {
		t.Errorf("error = %v, want it to name the convertor", err)
	}
}

func TestConvertCleanupRemovesTempfile(t *testing.T) {
	result, err := FromData(fixtureCSV).Convert("delete_col", map[string]any{
		"input_col_idx": "area",
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	path := result.Path()
	if path == "" {
		t.Fatal("converted table has no backing file")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backing file missing before cleanup: %v", err)
	}

	result.Cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("backing file still present after cleanup: %v", err)
	}
	if result.Path() != "" {
		t.Errorf("Path() = %q after cleanup, want empty", result.Path())
	}
}

func TestConvertTo(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.csv")

	result, err := FromData(fixtureCSV).ConvertTo("rename_col", map[string]any{
		"input_col_idx":   "name",
		"output_col_name": "市区町村名",
	}, output)
	if err != nil {
		t.Fatalf("ConvertTo() error: %v", err)
	}
	if result.Path() != output {
		t.Errorf("Path() = %q, want %q", result.Path(), output)
	}

	headers, err := New(output).Headers()
	if err != nil {
		t.Fatalf("Headers() error: %v", err)
	}
	if headers[0] != "市区町村名" {
		t.Errorf("headers = %v, want renamed first column", headers)
	}
}

func TestConvertToEmptyPath(t *testing.T) {
	if _, err := FromData(fixtureCSV).ConvertTo("delete_col", nil, ""); err == nil {
		t.Fatal("expected error for an empty output path")
	}
}

func TestApply(t *testing.T) {
	tasks := []*Task{
		{Convertor: "delete_col", Params: map[string]any{"input_col_idx": "area"}},
		{Convertor: "select_row_contains", Params: map[string]any{
			"input_col_idx": "name",
			"query":         "Tokyo",
		}},
	}

	result, err := FromData(fixtureCSV).Apply(tasks...)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	defer result.Cleanup()

	rows, err := result.Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	want := [][]string{
		{"name", "population"},
		{"Tokyo", "14000000"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestApplyFailsOnBadTask(t *testing.T) {
	tasks := []*Task{
		{Convertor: "delete_col", Params: map[string]any{"input_col_idx": "missing"}},
	}
	if _, err := FromData(fixtureCSV).Apply(tasks...); err == nil {
		t.Fatal("expected error for an unresolvable column")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.csv")
	if err := FromData(fixtureCSV).Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	rows, err := New(path).Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	if len(rows) != 3 || rows[2][0] != "Osaka" {
		t.Errorf("reloaded rows = %v", rows)
	}
}

func TestWriteLimitsLines(t *testing.T) {
	var buf bytes.Buffer
	if err := FromData(fixtureCSV).Write(&buf, 2); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "name,") {
		t.Errorf("first line = %q, want the header row", lines[0])
	}
}

func TestWriteUnlimited(t *testing.T) {
	var buf bytes.Buffer
	if err := FromData(fixtureCSV).Write(&buf, -1); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("wrote %d lines, want 3", len(lines))
	}
}

func TestMergeReordersColumns(t *testing.T) {
	target := writeCSV(t, "target.csv", "population,name\n1000,Kyoto\n")

	if err := FromData(fixtureCSV).Merge(target); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}

	rows, err := New(target).Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	want := [][]string{
		{"population", "name"},
		{"1000", "Kyoto"},
		{"14000000", "Tokyo"},
		{"8800000", "Osaka"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("merged rows = %v, want %v", rows, want)
	}
}

func TestMergeCreatesMissingTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "fresh.csv")

	if err := FromData(fixtureCSV).Merge(target); err != nil {
		t.Fatalf("Merge() error: %v", err)
	}
	rows, err := New(target).Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("fresh target has %d rows, want the full table", len(rows))
	}
}

func TestMapping(t *testing.T) {
	template := FromData([]byte("人口,名称,備考\n"))
	source := FromData([]byte("名称,人口\n東京,100\n"))

	entries, err := source.Mapping(template, -1)
	if err != nil {
		t.Fatalf("Mapping() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want one per template column", len(entries))
	}
	if entries[0].Key != "人口" || entries[0].Value != "人口" {
		t.Errorf("entries[0] = %+v, want 人口 matched", entries[0])
	}
	if entries[1].Key != "名称" || entries[1].Value != "名称" {
		t.Errorf("entries[1] = %+v, want 名称 matched", entries[1])
	}
	if entries[2].Key != "備考" || entries[2].Value != nil {
		t.Errorf("entries[2] = %+v, want 備考 unmatched", entries[2])
	}
}

func TestMappingThreshold(t *testing.T) {
	entries, err := FromData([]byte("abc\n")).MappingWithHeaders([]string{"xyz"}, 20)
	if err != nil {
		t.Fatalf("MappingWithHeaders() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != nil {
		t.Errorf("entries = %+v, want the dissimilar pair left unmatched", entries)
	}
}

func TestTasksFromFiles(t *testing.T) {
	path := writeCSV(t, "tasks.json",
		`[{"convertor": "delete_col", "params": {"input_col_idx": "area"}},
		  {"convertor": "rename_col", "params": {"input_col_idx": "name", "output_col_name": "x"}}]`)

	tasks, err := TasksFromFiles(path)
	if err != nil {
		t.Fatalf("TasksFromFiles() error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].Convertor != "delete_col" {
		t.Errorf("tasks[0].Convertor = %q, want delete_col", tasks[0].Convertor)
	}
}

func TestConvertorsCatalog(t *testing.T) {
	keys := Convertors()
	if len(keys) == 0 {
		t.Fatal("no convertors registered")
	}
	for _, want := range []string{"calc", "delete_col", "mapping_cols", "to_seireki", "script", "geocode_from_address"} {
		found := false
		for _, key := range keys {
			if key == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("catalog is missing %q", want)
		}
	}
}

func TestConvertorInfos(t *testing.T) {
	infos := ConvertorInfos()
	if len(infos) != len(Convertors()) {
		t.Fatalf("len(infos) = %d, want %d", len(infos), len(Convertors()))
	}
	for _, info := range infos {
		if info.Key == "calc" {
			if info.Name != "列演算" || info.Description == "" {
				t.Errorf("calc info = %+v, want name and description filled", info)
			}
			return
		}
	}
	t.Error("calc not present in the catalog")
}
