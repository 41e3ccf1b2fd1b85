package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// Light is a directional light plus an ambient term used to shade leaf fills.
// Colour channels are in 0..255 and act on a white leaf material.
type Light struct {
	Direction r3.Vec // Direction the light travels in
	Diffuse   [3]float64
	Ambient   [3]float64
}

// DefaultLight returns the green-tinted light the field is drawn under.
func DefaultLight() Light {
	return Light{
		Direction: r3.Vec{X: 0.25, Y: 0.5, Z: -0.5},
		Diffuse:   [3]float64{20, 200, 20},
		Ambient:   [3]float64{92, 169, 4},
	}
}

// Normal returns a leaf's face normal after tilting it by rot.X about the
// X axis and then rot.Y about the Y axis. An untilted leaf faces +Z.
func Normal(rot r3.Vec) r3.Vec {
	sx, cx := math.Sincos(rot.X)
	sy, cy := math.Sincos(rot.Y)
	return r3.Vec{X: cx * sy, Y: -sx, Z: cx * cy}
}

// Shade returns the lit fill colour for a leaf with the given rotation.
// Leaves are two-sided, so either face catches the light.
func (l Light) Shade(rot r3.Vec, alpha uint8) rl.Color {
	lambert := math.Abs(r3.Dot(r3.Unit(l.Direction), Normal(rot)))
	ch := func(i int) uint8 {
		return uint8(math.Min(255, l.Ambient[i]+l.Diffuse[i]*lambert))
	}
	return rl.Color{R: ch(0), G: ch(1), B: ch(2), A: alpha}
}
