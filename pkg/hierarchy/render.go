package hierarchy

import (
	"github.com/matzehuels/stackview/pkg/geom"
	"github.com/matzehuels/stackview/pkg/layout"
	"github.com/matzehuels/stackview/pkg/viewport"
)

// AnimatedProperties are the panel properties that transition while animating.
var AnimatedProperties = []string{"transform", "opacity", "width", "height"}

// Item is one panel as it should be drawn.
type Item[T any] struct {
	Child  T
	Index  int
	Layout layout.Layout

	// Hidden marks the panel as hidden from assistive technology.
	// Hidden panels may still be drawn dimmed.
	Hidden bool

	// Transition is set only while animating.
	Transition *viewport.Transition

	// PointerEventsDisabled is set while animating.
	PointerEventsDisabled bool
}

// Frame is everything a host needs to draw the view once.
type Frame[T any] struct {
	Phase         Phase
	Count         int
	Measured      bool
	ContainerSize geom.Vector2

	// Layouts includes the lookahead rectangle.
	Layouts  []layout.Layout
	Viewport viewport.Transform
	Items    []Item[T]
}

// Render derives the frame for the current state. Until the container is
// measured, or while no panel is rendered, the frame has no items.
func (c *Controller[T]) Render() Frame[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	animating := c.phase == Animating
	f := Frame[T]{
		Phase:    c.phase,
		Count:    c.renderedCount,
		Viewport: viewport.Render(geom.Zero, animating, c.opts.AnimationDuration),
	}
	if c.containerSize == nil {
		return f
	}
	f.Measured = true
	f.ContainerSize = *c.containerSize
	if c.renderedCount == 0 {
		return f
	}

	f.Layouts = c.layouts(f.ContainerSize)
	offset := viewport.Offset(f.Layouts, c.renderedCount-1, f.ContainerSize)
	f.Viewport = viewport.Render(offset, animating, c.opts.AnimationDuration)

	children := c.children
	if c.snapshot != nil {
		children = c.snapshot
	}
	n := min(len(children), len(f.Layouts))
	f.Items = make([]Item[T], n)
	for i := 0; i < n; i++ {
		l := f.Layouts[i]
		item := Item[T]{
			Child:  children[i],
			Index:  i,
			Layout: l,
			Hidden: !l.Visible,
		}
		if animating {
			item.Transition = viewport.NewTransition(c.opts.AnimationDuration, AnimatedProperties...)
			item.PointerEventsDisabled = true
		}
		f.Items[i] = item
	}
	return f
}

// Active returns the item of the active panel and false if there is none.
func (f Frame[T]) Active() (Item[T], bool) {
	if f.Count == 0 || f.Count > len(f.Items) {
		var zero Item[T]
		return zero, false
	}
	return f.Items[f.Count-1], true
}
