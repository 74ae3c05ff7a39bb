package errs

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *EngineError
		want string
	}{
		{
			name: "without original error",
			err:  NewConfigError("bad parameter %q", "input_col_idx"),
			want: `config error: bad parameter "input_col_idx"`,
		},
		{
			name: "with original error",
			err:  WrapIOError(io.ErrUnexpectedEOF, "reading header row"),
			want: "io error: reading header row: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := WrapConfigError(inner, "outer")

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}

	var classified *EngineError
	wrapped := fmt.Errorf("context: %w", err)
	if !errors.As(wrapped, &classified) {
		t.Fatal("expected errors.As to find the EngineError through wrapping")
	}
	if classified.Category != CategoryConfig {
		t.Errorf("expected config category, got %s", classified.Category)
	}
}

func TestGetCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"config error", NewConfigError("x"), CategoryConfig},
		{"record error", NewRecordError("x"), CategoryRecord},
		{"uniqueness error", NewUniquenessError("x"), CategoryUniqueness},
		{"collaborator error", NewCollaboratorError("x"), CategoryCollaborator},
		{"io error", WrapIOError(io.EOF, "x"), CategoryIO},
		{"wrapped engine error", fmt.Errorf("ctx: %w", NewRecordError("x")), CategoryRecord},
		{"plain error", errors.New("x"), CategoryConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCategory(tt.err); got != tt.want {
				t.Errorf("GetCategory() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"config error", NewConfigError("x"), true},
		{"record error", NewRecordError("x"), false},
		{"uniqueness error", NewUniquenessError("x"), true},
		{"collaborator error", NewCollaboratorError("x"), true},
		{"io error", WrapIOError(io.EOF, "x"), true},
		{"skip sentinel", ErrSkipRecord, false},
		{"wrapped skip sentinel", fmt.Errorf("ctx: %w", ErrSkipRecord), false},
		{"plain error", errors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSkippable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"record error", NewRecordError("x"), true},
		{"wrapped record error", WrapRecordError(errors.New("y"), "x"), true},
		{"skip sentinel", ErrSkipRecord, true},
		{"config error", NewConfigError("x"), false},
		{"io error", WrapIOError(io.EOF, "x"), false},
		{"plain error", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSkippable(tt.err); got != tt.want {
				t.Errorf("IsSkippable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageFormatting(t *testing.T) {
	err := NewRecordError("cell %q is not a number at column %d", "abc", 3)
	if !strings.Contains(err.Error(), `cell "abc" is not a number at column 3`) {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
