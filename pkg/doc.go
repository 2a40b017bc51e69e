// Package pkg provides the core libraries for Stackview hierarchy views.
//
// # Overview
//
// A hierarchy view shows a navigation stack as a row of panels. Pushing a
// level slides a new panel in from the right; popping slides it back out.
// Only the last few levels fit on screen, so the viewport is shifted so
// that the deepest level stays flush with the right edge.
//
// The pkg directory is organized in layers:
//
//  1. [geom] - 2D offsets and sizes
//  2. [layout] - panel rectangles for a level count and container size
//  3. [viewport] - the offset that keeps a level on screen, and its transform
//  4. [hierarchy] - the push/pop state machine that drives a host
//  5. [server], [cache], [config] - the layout HTTP API and its infrastructure
//
// # Architecture
//
// The data flow for one frame:
//
//	host children + container size
//	         ↓
//	    [hierarchy] Controller (Idle/Animating, snapshot, rendered count)
//	         ↓
//	    [layout] Compute (panel rectangles + lookahead)
//	         ↓
//	    [viewport] Offset + Render (translation and transition)
//	         ↓
//	    hierarchy.Frame, drawn by the host
//
// # Quick Start
//
// Drive a controller from a host that can measure itself:
//
//	import (
//	    "github.com/matzehuels/stackview/pkg/geom"
//	    "github.com/matzehuels/stackview/pkg/hierarchy"
//	)
//
//	size := hierarchy.MeasurerFunc(func() (geom.Vector2, bool) {
//	    return geom.Vec(1200, 800), true
//	})
//	ctrl := hierarchy.New[string](size, hierarchy.Options{
//	    OnChange: func() { redraw() },
//	})
//	ctrl.SetChildren([]string{"root"})
//	ctrl.Mount()
//	defer ctrl.Unmount()
//
//	ctrl.SetChildren([]string{"root", "settings"})
//	frame := ctrl.Render()
//
// Or compute layouts directly:
//
//	layouts := layout.Compute(layout.Params{
//	    ElementCount:  2,
//	    ContainerSize: geom.Vec(1200, 800),
//	})
//
// # Non-goals
//
// The layout package is not a generic layout engine and nothing here
// persists state.
package pkg
