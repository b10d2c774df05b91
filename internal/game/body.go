package game

import "math"

// Point is a position on the playfield.
type Point struct {
	X, Y float64
}

// Body is the kinematic state shared by projectiles and particles.
type Body struct {
	X, Y   float64
	VX, VY float64
}

// Integrate advances b by one tick under gravity g using semi-implicit Euler:
// velocity first, then position with the new velocity.
func Integrate(b Body, g float64) Body {
	b.VY += g
	b.X += b.VX
	b.Y += b.VY
	return b
}

// Finite reports whether every component is a real number. A body that is not
// finite can never recover through integration.
func (b Body) Finite() bool {
	for _, v := range [4]float64{b.X, b.Y, b.VX, b.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (b Body) Pos() Point { return Point{X: b.X, Y: b.Y} }
