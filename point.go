package ribbon

import "github.com/gogpu/ribbon/tessellate"

// Point is a curve point in builder space.
type Point = tessellate.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}
