package layout

import (
	"testing"

	"github.com/matzehuels/stackview/pkg/geom"
)

func TestDefaultWidth(t *testing.T) {
	tests := []struct {
		name                  string
		index, visible, count int
		width                 float64
		want                  float64
	}{
		{"master third", 0, 2, 2, 900, 300},
		{"detail two thirds", 1, 2, 2, 900, 600},
		{"master unfloored", 0, 2, 2, 1000, 1000.0 / 3},
		{"detail unfloored", 1, 2, 2, 1000, 2000.0 / 3},
		{"equal split", 1, 3, 5, 900, 300},
		{"equal split floored", 2, 3, 3, 1000, 333},
		{"single", 0, 1, 1, 800, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultWidth(tt.index, tt.visible, tt.count, tt.width); got != tt.want {
				t.Errorf("DefaultWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinWidthPolicies(t *testing.T) {
	if got := DefaultMinWidth(900); got != 300 {
		t.Errorf("DefaultMinWidth(900) = %v, want 300", got)
	}
	if got := DefaultMinWidth(2000); got != 500 {
		t.Errorf("DefaultMinWidth(2000) = %v, want 500", got)
	}
	if got := MinWidthAtLeast(20)(40); got != 20 {
		t.Errorf("MinWidthAtLeast(20)(40) = %v, want 20", got)
	}
}

func TestMaxVisible(t *testing.T) {
	tests := []struct {
		width float64
		want  int
	}{
		{0, 1},
		{299, 1},
		{400, 1},
		{600, 2},
		{899, 2},
		{900, 3},
		{4000, 3},
	}

	for _, tt := range tests {
		if got := MaxVisible(tt.width, nil); got != tt.want {
			t.Errorf("MaxVisible(%v) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestWidthPolicies(t *testing.T) {
	for _, name := range []string{"default", "equal"} {
		if WidthPolicies[name] == nil {
			t.Errorf("WidthPolicies[%q] missing", name)
		}
	}
}

func TestStyleDeclarations(t *testing.T) {
	l := newLayout(geom.Vec(-300, 0), geom.Vec(300, 600), false)
	got := l.Style.Declarations()

	want := map[string]string{
		"position":  "absolute",
		"top":       "0",
		"left":      "0",
		"width":     "300px",
		"height":    "600px",
		"opacity":   "0.5",
		"transform": "translate3d(-300px, 0px, 0)",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Declarations()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
