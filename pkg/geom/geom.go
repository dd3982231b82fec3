// Package geom provides the 2D coordinate types shared by shapes, tools, and surfaces.
//
// Points are canvas pixel coordinates with the origin at the top-left and Y
// increasing downward. [Matrix] is a 2x3 affine transform laid out the same
// way as fogleman/gg's matrix, so transforms tracked here agree with what the
// raster surface applies.
package geom

import "math"

// Point is a position in canvas pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Matrix is a 2D affine transform:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
type Matrix struct {
	XX, YX, XY, YY, X0, Y0 float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{XX: 1, YY: 1}
}

// Translation returns a pure translation.
func Translation(x, y float64) Matrix {
	return Matrix{XX: 1, YY: 1, X0: x, Y0: y}
}

// Scaling returns a pure scale about the origin.
func Scaling(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy}
}

// Rotation returns a rotation about the origin by angle radians.
func Rotation(angle float64) Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	return Matrix{XX: c, YX: s, XY: -s, YY: c}
}

// Multiply returns the transform that applies b first and then m.
func (m Matrix) Multiply(b Matrix) Matrix {
	return Matrix{
		XX: m.XX*b.XX + m.XY*b.YX,
		YX: m.YX*b.XX + m.YY*b.YX,
		XY: m.XX*b.XY + m.XY*b.YY,
		YY: m.YX*b.XY + m.YY*b.YY,
		X0: m.XX*b.X0 + m.XY*b.Y0 + m.X0,
		Y0: m.YX*b.X0 + m.YY*b.Y0 + m.Y0,
	}
}

// Translate returns m with a local translation applied before it.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Translation(x, y))
}

// Scale returns m with a local scale applied before it.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Scaling(sx, sy))
}

// Rotate returns m with a local rotation applied before it.
func (m Matrix) Rotate(angle float64) Matrix {
	return m.Multiply(Rotation(angle))
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.XX*p.X + m.XY*p.Y + m.X0,
		Y: m.YX*p.X + m.YY*p.Y + m.Y0,
	}
}

// ScaleFactor returns the length a unit vector along X has after the transform.
// For the uniform scales and rotations used by the editor it is the scale.
func (m Matrix) ScaleFactor() float64 {
	return math.Hypot(m.XX, m.YX)
}

// Angle returns the rotation the transform applies to the X axis, in radians.
func (m Matrix) Angle() float64 {
	return math.Atan2(m.YX, m.XX)
}
