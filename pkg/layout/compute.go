package layout

import (
	"math"

	"github.com/matzehuels/stackview/pkg/geom"
)

// Params configures a layout computation.
type Params struct {
	// ElementCount is the number of panels in the stack.
	ElementCount int

	// ContainerSize is the measured size of the hosting container.
	ContainerSize geom.Vector2

	// WidthFunc overrides DefaultWidth.
	WidthFunc WidthFunc

	// MinWidthFunc overrides DefaultMinWidth.
	MinWidthFunc MinWidthFunc

	// NoLookahead omits the trailing rectangle predicting the next panel.
	// It has no effect in single-visible mode, which always includes it.
	NoLookahead bool
}

func (p Params) withDefaults() Params {
	if p.WidthFunc == nil {
		p.WidthFunc = DefaultWidth
	}
	if p.MinWidthFunc == nil {
		p.MinWidthFunc = DefaultMinWidth
	}
	if p.ElementCount < 0 {
		p.ElementCount = 0
	}
	return p
}

// Compute returns the layouts for p.ElementCount panels in order, plus the
// lookahead rectangle unless disabled. The result is a pure function of p.
func Compute(p Params) []Layout {
	p = p.withDefaults()

	maxVisible := MaxVisible(p.ContainerSize.X, p.MinWidthFunc)
	if maxVisible == 1 {
		return singleVisible(p.ElementCount, p.ContainerSize)
	}
	if p.NoLookahead {
		return place(panelWidths(p, maxVisible), p.ElementCount, maxVisible, p.ContainerSize)
	}
	return withLookahead(p, maxVisible)
}

// singleVisible stacks full-size panels to the right of each other.
// Inactive panels stay dimmed rather than hidden so they can animate in.
func singleVisible(elementCount int, size geom.Vector2) []Layout {
	layouts := make([]Layout, elementCount+1)
	for i := range layouts {
		offset := geom.Vec(float64(i)*size.X, 0)
		layouts[i] = newLayout(offset, size, i == elementCount-1)
	}
	return layouts
}

// withLookahead appends the width the next panel would have once it exists.
// The prediction is computed without lookahead, bounding the depth to one.
func withLookahead(p Params, maxVisible int) []Layout {
	next := p
	next.ElementCount = p.ElementCount + 1
	predicted := panelWidths(next, maxVisible)

	widths := append(panelWidths(p, maxVisible), predicted[len(predicted)-1])
	return place(widths, p.ElementCount, maxVisible, p.ContainerSize)
}

// panelWidths returns the floored widths of the real panels.
func panelWidths(p Params, maxVisible int) []float64 {
	visible := min(maxVisible, p.ElementCount)
	widths := make([]float64, p.ElementCount)
	for i := range widths {
		widths[i] = math.Floor(p.WidthFunc(i, visible, p.ElementCount, p.ContainerSize.X))
	}
	return widths
}

// place lays widths out contiguously. The first offset is negative enough
// that only the last visible panels fall inside the container.
func place(widths []float64, elementCount, maxVisible int, size geom.Vector2) []Layout {
	if len(widths) == 0 {
		return []Layout{}
	}

	visible := min(maxVisible, elementCount)
	x := -float64(elementCount-visible) * widths[0]

	layouts := make([]Layout, len(widths))
	for i, w := range widths {
		layouts[i] = newLayout(geom.Vec(x, 0), geom.Vec(w, size.Y), i < elementCount)
		x += w
	}
	return layouts
}
