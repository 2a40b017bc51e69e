package layout

import "math"

// DefaultMinPanelWidth is the lower bound of the default minimum panel width.
const DefaultMinPanelWidth = 300.0

// MaxPanelsOnScreen is the most panels that ever share the container.
const MaxPanelsOnScreen = 3

// WidthFunc returns the width of the panel at index when visibleCount of
// elementCount panels share a container of the given width.
type WidthFunc func(index, visibleCount, elementCount int, containerWidth float64) float64

// MinWidthFunc returns the minimum width a panel needs before another panel
// can share the container.
type MinWidthFunc func(containerWidth float64) float64

// DefaultWidth splits the container equally among the visible panels. With
// exactly two panels the first gets a third and the second two thirds.
func DefaultWidth(index, visibleCount, elementCount int, containerWidth float64) float64 {
	if elementCount == 2 {
		switch index {
		case 0:
			return containerWidth / 3
		case 1:
			return 2 * containerWidth / 3
		}
	}
	return math.Floor(containerWidth / float64(visibleCount))
}

// EqualWidth splits the container equally among the visible panels.
func EqualWidth(index, visibleCount, elementCount int, containerWidth float64) float64 {
	return containerWidth / float64(visibleCount)
}

// DefaultMinWidth returns max(300, containerWidth/4).
func DefaultMinWidth(containerWidth float64) float64 {
	return math.Max(DefaultMinPanelWidth, containerWidth/4)
}

// MinWidthAtLeast returns a min-width policy of max(floor, containerWidth/4).
// Hosts measuring in units other than pixels (terminal columns) use it to
// pick a sensible floor.
func MinWidthAtLeast(floor float64) MinWidthFunc {
	return func(containerWidth float64) float64 {
		return math.Max(floor, containerWidth/4)
	}
}

// WidthPolicies maps policy names accepted in configuration to strategies.
var WidthPolicies = map[string]WidthFunc{
	"default": DefaultWidth,
	"equal":   EqualWidth,
}

// MaxVisible returns how many panels fit side by side in a container of the
// given width, clamped to 1..MaxPanelsOnScreen.
func MaxVisible(containerWidth float64, minWidth MinWidthFunc) int {
	if minWidth == nil {
		minWidth = DefaultMinWidth
	}
	n := math.Floor(containerWidth / minWidth(containerWidth))
	switch {
	case n < 1 || math.IsNaN(n):
		return 1
	case n > MaxPanelsOnScreen:
		return MaxPanelsOnScreen
	default:
		return int(n)
	}
}
