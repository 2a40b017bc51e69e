// Package layout computes horizontal panel layouts for a stacked hierarchy
// view.
//
// A hierarchy view shows a stack of panels (drill-down screens) side by side.
// Given the number of panels and the container size, [Compute] returns one
// [Layout] per panel: its offset, size, whether it is visible, and the
// presentation style a renderer applies to it.
//
// # Modes
//
// The number of panels that can share the container is derived from the
// container width and a minimum panel width, clamped to the range 1..3:
//
//   - Single-visible: every panel fills the container. Panels are stacked to
//     the right of each other and only the active (last) panel is visible.
//   - Multi-visible: the last two or three panels share the container.
//     Earlier panels are pushed off-screen to the left.
//
// # Lookahead
//
// Unless [Params.NoLookahead] is set, the result contains one extra trailing
// rectangle predicting where the next pushed panel would appear. Renderers use
// it as the starting position of a panel sliding in, or the end position of a
// panel sliding out. The prediction computes the layout for one more panel
// without lookahead, so it never nests deeper than one level.
//
// # Strategies
//
// Panel widths and the minimum panel width are injectable ([WidthFunc],
// [MinWidthFunc]). Strategies must be pure functions of their arguments.
//
//	layouts := layout.Compute(layout.Params{
//	    ElementCount:  3,
//	    ContainerSize: geom.Vec(900, 600),
//	})
//	// layouts[0..2] are 300 wide at x = 0, 300, 600; layouts[3] is the lookahead.
package layout
