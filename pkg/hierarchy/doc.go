// Package hierarchy drives a stacked hierarchy view: a navigation widget
// showing drill-down panels side by side.
//
// A [Controller] owns the view state. The host supplies the panels (opaque
// values of any type), a [Measurer] reporting the container size, and
// optionally a [ResizeNotifier]. On every state change the controller calls
// [Options.OnChange]; the host then calls [Controller.Render] and draws the
// returned [Frame].
//
// # State machine
//
// The controller is either Idle or Animating:
//
//   - Mount measures the container and subscribes to resize notifications.
//   - A resize notification is debounced, stops any animation and remeasures.
//   - A change in the number of panels enters Animating, restarts the timer
//     that returns to Idle, and applies the new count on the next scheduler
//     tick. The one frame rendered with the old count is what makes a pushed
//     panel slide in from its lookahead position. When panels are removed the
//     previous list is kept as a snapshot until the animation ends so the
//     removed panels can slide out.
//   - Unmount releases the subscription and cancels every pending timer.
//
// Timers come from a [Scheduler]; tests use hierarchytest.Scheduler to advance
// time by hand.
//
//	c := hierarchy.New[Panel](measurer, hierarchy.Options{
//	    AnimationDuration: 300 * time.Millisecond,
//	    OnChange:          func() { program.Send(redrawMsg{}) },
//	})
//	c.SetChildren(panels)
//	c.Mount()
//	defer c.Unmount()
package hierarchy
