package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidCount, "count cannot be negative: %d", -1), "INVALID_COUNT: count cannot be negative: -1"},
		{"wrapped", Wrap(ErrCodeInvalidConfig, errors.New("unexpected EOF"), "parse %s", "a.toml"), "INVALID_CONFIG: parse a.toml: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidPath, cause, "read directory")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestCodeHelpers(t *testing.T) {
	nested := fmt.Errorf("serve: %w", New(ErrCodeInvalidPolicy, "unknown width policy %q", "golden"))

	tests := []struct {
		name       string
		err        error
		code       Code
		validation bool
		message    string
	}{
		{"count", New(ErrCodeInvalidCount, "bad count"), ErrCodeInvalidCount, true, "bad count"},
		{"size", New(ErrCodeInvalidSize, "width must be a finite number"), ErrCodeInvalidSize, true, "width must be a finite number"},
		{"fmt wrapped", nested, ErrCodeInvalidPolicy, true, `unknown width policy "golden"`},
		{"config", Wrap(ErrCodeInvalidConfig, errors.New("eof"), "parse"), ErrCodeInvalidConfig, true, "parse"},
		{"not found", New(ErrCodeNotFound, "no such directory"), ErrCodeNotFound, false, "no such directory"},
		{"unsupported", New(ErrCodeUnsupported, "unknown format"), ErrCodeUnsupported, false, "unknown format"},
		{"plain", errors.New("boom"), "", false, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestIsOuterCodeWins(t *testing.T) {
	err := Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer")

	if !Is(err, ErrCodeInvalidConfig) {
		t.Error("Is() should match the outermost code")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is() should not look past the first *Error")
	}
	if Is(nil, ErrCodeInvalidInput) {
		t.Error("Is(nil) should be false")
	}
}
