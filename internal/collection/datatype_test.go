package collection

import (
	"reflect"
	"testing"
)

func TestTypedInputNormalizesNumbers(t *testing.T) {
	in := NewTypedInput(NewArrayInput([][]string{
		{"code", "ratio", "name"},
		{"007", "1.50", "Tokyo"},
		{"042", "0.25", "Osaka"},
	}))
	if err := in.Open(); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer in.Close()

	want := []ColumnType{TypeInt, TypeFloat, TypeText}
	if !reflect.DeepEqual(in.Types(), want) {
		t.Fatalf("Types() = %v, want %v", in.Types(), want)
	}

	rows := drain(t, in)
	if rows[1][0] != "7" {
		t.Errorf("integer cell = %q, want canonical \"7\"", rows[1][0])
	}
	if rows[1][1] != "1.5" {
		t.Errorf("float cell = %q, want canonical \"1.5\"", rows[1][1])
	}
	if rows[1][2] != "Tokyo" {
		t.Errorf("text cell = %q, want untouched", rows[1][2])
	}
}

func TestTypedInputMixedColumnStaysText(t *testing.T) {
	in := NewTypedInput(NewArrayInput([][]string{
		{"v"},
		{"12"},
		{"n/a"},
	}))
	if err := in.Open(); err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	if in.Types()[0] != TypeText {
		t.Errorf("Types()[0] = %v, want TypeText", in.Types()[0])
	}
	rows := drain(t, in)
	if rows[1][0] != "12" {
		t.Errorf("cell = %q, want unmodified", rows[1][0])
	}
}

func TestTypedInputEmptyCellsIgnored(t *testing.T) {
	in := NewTypedInput(NewArrayInput([][]string{
		{"v"},
		{"5"},
		{""},
	}))
	if err := in.Open(); err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	if in.Types()[0] != TypeInt {
		t.Errorf("Types()[0] = %v, want TypeInt (empty cells ignored)", in.Types()[0])
	}
	rows := drain(t, in)
	if rows[2][0] != "" {
		t.Errorf("empty cell = %q, want kept empty", rows[2][0])
	}
}

func TestTypedInputGroupedDigits(t *testing.T) {
	in := NewTypedInput(NewArrayInput([][]string{
		{"population"},
		{"1,234,567"},
	}))
	if err := in.Open(); err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	rows := drain(t, in)
	if rows[1][0] != "1234567" {
		t.Errorf("grouped digits = %q, want \"1234567\"", rows[1][0])
	}
}

func TestTypedInputHeaderOnly(t *testing.T) {
	in := NewTypedInput(NewArrayInput([][]string{{"a", "b"}}))
	if err := in.Open(); err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer in.Close()
	if rows := drain(t, in); len(rows) != 1 {
		t.Errorf("expected just the header row, got %d rows", len(rows))
	}
}
