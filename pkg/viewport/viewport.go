// Package viewport computes the translation that keeps the active panel of a
// hierarchy view fully visible.
//
// The viewport is the scrolling surface that holds all panels. Its offset is
// chosen so the trailing edge of the active panel lines up with the trailing
// edge of the container; predecessors remain visible only as far as the
// remaining space allows.
package viewport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/layout"
)

// EaseOut is the timing function used for all transitions.
const EaseOut = "ease-out"

// Offset returns (active.Offset + active.Size) - containerSize for the panel
// at activeIndex. It returns geom.Zero when activeIndex is out of range.
func Offset(layouts []layout.Layout, activeIndex int, containerSize geom.Vector2) geom.Vector2 {
	if activeIndex < 0 || activeIndex >= len(layouts) {
		return geom.Zero
	}
	active := layouts[activeIndex]
	return geom.Subtract(geom.Add(active.Offset, active.Size), containerSize)
}

// Transition describes a timed change of one or more properties.
type Transition struct {
	Properties []string      `json:"properties"`
	Duration   time.Duration `json:"duration"`
	Easing     string        `json:"easing"`
}

// NewTransition returns an ease-out transition over the given properties.
func NewTransition(duration time.Duration, properties ...string) *Transition {
	return &Transition{Properties: properties, Duration: duration, Easing: EaseOut}
}

// String renders the transition as "prop 2000ms ease-out, ...".
func (t *Transition) String() string {
	if t == nil {
		return ""
	}
	parts := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		parts[i] = fmt.Sprintf("%s %dms %s", p, t.Duration.Milliseconds(), t.Easing)
	}
	return strings.Join(parts, ", ")
}

// Transform is the rendered viewport: a translation and an optional
// transition, present only while animating.
type Transform struct {
	Offset     geom.Vector2 `json:"offset"`
	Translate  geom.Vector2 `json:"translate"`
	Transition *Transition  `json:"transition,omitempty"`
}

// Render returns the transform for offset. The viewport moves by the
// negated offset; while animating the move is eased over duration,
// otherwise it applies immediately.
func Render(offset geom.Vector2, animating bool, duration time.Duration) Transform {
	t := Transform{Offset: offset, Translate: offset.Neg()}
	if animating {
		t.Transition = NewTransition(duration, "transform")
	}
	return t
}

// Declarations renders the transform as CSS-like property declarations.
func (t Transform) Declarations() map[string]string {
	d := map[string]string{
		"transform": fmt.Sprintf("translate3d(%s, %s, 0)", px(t.Translate.X), px(t.Translate.Y)),
		"width":     "100%",
		"height":    "100%",
	}
	if t.Transition != nil {
		d["transition"] = t.Transition.String()
	}
	return d
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
