package systems

import (
	"github.com/pthm-cable/leaves/components"
)

// Bounds represents the viewport rectangle in pixels.
type Bounds struct {
	Width, Height float64
}

// Step advances every leaf by one tick: Euler integration, then reflection.
// There is no delta time; motion is tied to the tick cadence.
func (f *Field) Step() {
	query := f.leafFilter.Query()
	for query.Next() {
		pos, vel, rot, spin, leaf := query.Get()

		pos.X += vel.X
		pos.Y += vel.Y
		pos.Z += vel.Z
		rot.X += spin.X
		rot.Y += spin.Y
		rot.Z += spin.Z

		f.reflect(pos, vel, leaf)
	}
}

// reflect flips velocity components whose position lies outside the bounds.
// Positions are not clamped and may overshoot by up to one tick of travel.
func (f *Field) reflect(pos *components.Position, vel *components.Velocity, leaf *components.Leaf) {
	margin := 0.0
	if f.settings.HalfSizeEdges {
		margin = leaf.HalfSize()
	}

	if outside(pos.X, margin, f.bounds.Width-margin) {
		vel.X = -vel.X
	}
	if outside(pos.Y, margin, f.bounds.Height-margin) {
		vel.Y = -vel.Y
	}
	if outside(pos.Z, -f.settings.Depth, f.settings.Depth) {
		vel.Z = -vel.Z
	}
}

// outside reports whether v lies outside [lo, hi].
func outside(v, lo, hi float64) bool {
	return v < lo || v > hi
}
