// Package geom provides the two-dimensional vector type shared by the layout,
// viewport and hierarchy packages.
//
// Vectors are used both for offsets (positions relative to the viewport
// origin) and for sizes (width, height). They are immutable values; all
// operations return new vectors.
package geom

import (
	"fmt"
	"math"
)

// Vector2 is an (x, y) pair used for offsets and sizes.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the zero offset.
var Zero = Vector2{}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the component-wise sum a + b.
func Add(a, b Vector2) Vector2 {
	return Vector2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Subtract returns the component-wise difference a - b.
func Subtract(a, b Vector2) Vector2 {
	return Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Neg returns the vector pointing the opposite way. Zero components stay
// positive zero.
func (v Vector2) Neg() Vector2 {
	return Subtract(Zero, v)
}

// Floor rounds both components down to integers.
func (v Vector2) Floor() Vector2 {
	return Vector2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Round rounds both components to the nearest integer.
func (v Vector2) Round() Vector2 {
	return Vector2{X: math.Round(v.X), Y: math.Round(v.Y)}
}

// Lerp interpolates linearly between a (t=0) and b (t=1).
// t is not clamped.
func Lerp(a, b Vector2, t float64) Vector2 {
	return Vector2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// String formats the vector as "(x, y)".
func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
