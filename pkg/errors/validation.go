package errors

import (
	"math"
	"os"
	"strings"
)

// MaxElementCount bounds the panel count accepted from untrusted input.
const MaxElementCount = 10000

// MaxContainerDimension bounds container sizes accepted from untrusted input.
const MaxContainerDimension = 1 << 20

// ValidateElementCount checks a panel count from a flag or request.
func ValidateElementCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidCount, "count cannot be negative: %d", n)
	}
	if n > MaxElementCount {
		return New(ErrCodeInvalidCount, "count too large (max %d): %d", MaxElementCount, n)
	}
	return nil
}

// ValidateContainerSize checks container dimensions from a flag or request.
// Zero is allowed and means an unmeasured or collapsed container.
func ValidateContainerSize(width, height float64) error {
	for _, v := range []struct {
		name  string
		value float64
	}{{"width", width}, {"height", height}} {
		switch {
		case math.IsNaN(v.value) || math.IsInf(v.value, 0):
			return New(ErrCodeInvalidSize, "%s must be a finite number", v.name)
		case v.value < 0:
			return New(ErrCodeInvalidSize, "%s cannot be negative: %g", v.name, v.value)
		case v.value > MaxContainerDimension:
			return New(ErrCodeInvalidSize, "%s too large (max %d): %g", v.name, MaxContainerDimension, v.value)
		}
	}
	return nil
}

// ValidateDirectory checks that path names an existing directory.
func ValidateDirectory(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "directory cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "directory contains a null byte")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Wrap(ErrCodeNotFound, err, "directory %s does not exist", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "%s is not a directory", path)
	}
	return nil
}
