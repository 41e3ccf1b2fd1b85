package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/leaves/components"
)

// ApplyPointForce pushes every leaf away from target using the field's radius and gain.
func (f *Field) ApplyPointForce(target r3.Vec) {
	query := f.leafFilter.Query()
	for query.Next() {
		pos, vel, _, spin, _ := query.Get()
		f.pushLeaf(pos, vel, spin, target)
	}
}

// pushLeaf applies the repulsion to one leaf.
//
// Inside the radius the strength falls off linearly from 1 at the target to 0 at the
// radius; velocity gains strength*gain along the planar direction away from the target
// and spin is boosted by up to MaxSpinBoost. Velocity is never clamped, so leaves held
// near the pointer keep accelerating.
//
// Outside the radius the spin is resampled every tick.
func (f *Field) pushLeaf(pos *components.Position, vel *components.Velocity, spin *components.Spin, target r3.Vec) {
	s := f.settings
	dx := pos.X - target.X
	dy := pos.Y - target.Y
	dist := math.Hypot(dx, dy)

	if dist >= s.InfluenceRadius {
		spin.Vec = r3.Vec{
			X: f.uniform(s.SpinReset),
			Y: f.uniform(s.SpinReset),
			Z: f.uniform(s.SpinReset),
		}
		return
	}

	strength := ForceStrength(dist, s.InfluenceRadius)
	dir := repelDirection(dx, dy, dist, vel.Vec)
	vel.Vec = r3.Add(vel.Vec, r3.Scale(strength*s.Gain, dir))
	spin.Vec = r3.Scale(1+(s.MaxSpinBoost-1)*strength, spin.Vec)
}

// ForceStrength returns the linear falloff: 1 at distance 0, 0 at and beyond radius.
func ForceStrength(dist, radius float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	return 1 - dist/radius
}

// repelDirection returns the planar unit vector away from the target.
// A leaf exactly on the target is pushed along its own planar heading, or +X at rest.
func repelDirection(dx, dy, dist float64, vel r3.Vec) r3.Vec {
	if dist > 0 {
		return r3.Vec{X: dx / dist, Y: dy / dist}
	}
	if h := math.Hypot(vel.X, vel.Y); h > 0 {
		return r3.Vec{X: vel.X / h, Y: vel.Y / h}
	}
	return r3.Vec{X: 1}
}

// uniform samples from [-r, r].
func (f *Field) uniform(r float64) float64 {
	return (f.rng.Float64()*2 - 1) * r
}
