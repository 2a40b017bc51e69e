package errors

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateElementCount(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxElementCount, false},
		{-1, true},
		{MaxElementCount + 1, true},
	}

	for _, tt := range tests {
		err := ValidateElementCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateElementCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidCount) {
			t.Errorf("ValidateElementCount(%d) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestValidateContainerSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"typical", 900, 600, false},
		{"collapsed", 0, 0, false},
		{"negative width", -1, 600, true},
		{"negative height", 900, -5, true},
		{"nan", math.NaN(), 600, true},
		{"inf", 900, math.Inf(1), true},
		{"huge", MaxContainerDimension + 1, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContainerSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateContainerSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateContainerSize() returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		code  Code
	}{
		{"existing directory", dir, ""},
		{"empty", " ", ErrCodeInvalidPath},
		{"null byte", "a\x00b", ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "missing"), ErrCodeNotFound},
		{"file", file, ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirectory(tt.input)
			if got := GetCode(err); got != tt.code {
				t.Errorf("ValidateDirectory(%q) code = %q, want %q (err %v)", tt.input, got, tt.code, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidCount,
		ErrCodeInvalidSize,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPolicy,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
