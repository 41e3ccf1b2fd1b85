// Package systems contains the leaf field and the per-tick systems that move it.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/leaves/components"
)

// LeafState is a read-only copy of one leaf's components.
type LeafState struct {
	Position r3.Vec
	Velocity r3.Vec
	Rotation r3.Vec
	Spin     r3.Vec
	Size     float64
}

// Canvas receives draw calls for the field.
type Canvas interface {
	// DrawLeaf draws one leaf at pos, rotated about the view axis by rot.Z.
	DrawLeaf(pos, rot r3.Vec, size float64)
	// DrawInfluence draws the influence ring around the tracked pointer.
	DrawInfluence(center r3.Vec, radius float64)
}

// Field owns an ordered collection of leaf entities.
// Order matters for grid layout and rendering; stepping is order independent.
type Field struct {
	world *ecs.World
	rng   *rand.Rand

	leafMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Spin,
		components.Leaf,
	]
	leafFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Spin,
		components.Leaf,
	]

	// Collection order; the tail is truncated on shrink.
	order []ecs.Entity

	settings Settings
	bounds   Bounds
}

// NewField creates a field of settings.Count leaves spread over bounds.
func NewField(world *ecs.World, settings Settings, bounds Bounds, rng *rand.Rand) *Field {
	f := &Field{
		world:    world,
		rng:      rng,
		settings: settings,
		bounds:   bounds,
		leafMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Spin,
			components.Leaf,
		](world),
		leafFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Spin,
			components.Leaf,
		](world),
	}
	f.Resize(settings.Count)
	return f
}

// Len returns the number of leaves.
func (f *Field) Len() int {
	return len(f.order)
}

// Settings returns a copy of the current settings.
func (f *Field) Settings() Settings {
	return f.settings
}

// Bounds returns the viewport rectangle leaves bounce within.
func (f *Field) Bounds() Bounds {
	return f.bounds
}

// SetBounds rescales the bounding rectangle. Leaves are not moved.
func (f *Field) SetBounds(b Bounds) {
	f.bounds = b
}

// Resize appends fresh leaves or truncates the tail so Len() == n.
// Negative n is treated as zero.
func (f *Field) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for len(f.order) < n {
		f.order = append(f.order, f.spawnLeaf())
	}
	for len(f.order) > n {
		last := len(f.order) - 1
		f.world.RemoveEntity(f.order[last])
		f.order = f.order[:last]
	}
	f.settings.Count = n
}

// spawnLeaf creates a leaf with the current size and speed.
func (f *Field) spawnLeaf() ecs.Entity {
	pos := components.Position{Vec: r3.Vec{
		X: f.rng.Float64() * f.bounds.Width,
		Y: f.rng.Float64() * f.bounds.Height,
		Z: (f.rng.Float64()*2 - 1) * f.settings.Depth,
	}}
	vel := components.Velocity{Vec: r3.Scale(f.settings.Speed, randomUnit(f.rng))}
	rot := components.Rotation{Vec: r3.Scale(2*math.Pi, randomUnit(f.rng))}
	spin := components.Spin{Vec: r3.Scale(f.settings.InitialSpin, randomUnit(f.rng))}
	leaf := components.Leaf{Size: f.settings.Size}

	return f.leafMapper.NewEntity(&pos, &vel, &rot, &spin, &leaf)
}

// SetSize overwrites every leaf's size.
func (f *Field) SetSize(size float64) {
	f.settings.Size = size
	query := f.leafFilter.Query()
	for query.Next() {
		_, _, _, _, leaf := query.Get()
		leaf.Size = size
	}
}

// SetSpeed rescales every leaf's velocity to the given magnitude, keeping direction.
// Leaves at rest stay at rest.
func (f *Field) SetSpeed(speed float64) {
	f.settings.Speed = speed
	query := f.leafFilter.Query()
	for query.Next() {
		_, vel, _, _, _ := query.Get()
		vel.Vec = withMagnitude(vel.Vec, speed)
	}
}

// SetInfluenceRadius sets the pointer force radius.
func (f *Field) SetInfluenceRadius(r float64) {
	f.settings.InfluenceRadius = r
}

// SetDrawInfluence toggles the influence ring overlay.
func (f *Field) SetDrawInfluence(on bool) {
	f.settings.DrawInfluence = on
}

// Leaf returns a copy of the i-th leaf in collection order.
func (f *Field) Leaf(i int) LeafState {
	pos, vel, rot, spin, leaf := f.leafMapper.Get(f.order[i])
	return LeafState{
		Position: pos.Vec,
		Velocity: vel.Vec,
		Rotation: rot.Vec,
		Spin:     spin.Vec,
		Size:     leaf.Size,
	}
}

// Leaves returns copies of all leaves in collection order.
func (f *Field) Leaves() []LeafState {
	out := make([]LeafState, len(f.order))
	for i := range f.order {
		out[i] = f.Leaf(i)
	}
	return out
}

// Speeds returns every leaf's speed, for telemetry.
func (f *Field) Speeds() []float64 {
	speeds := make([]float64, 0, len(f.order))
	query := f.leafFilter.Query()
	for query.Next() {
		_, vel, _, _, _ := query.Get()
		speeds = append(speeds, r3.Norm(vel.Vec))
	}
	return speeds
}

// Render draws every leaf in collection order.
func (f *Field) Render(c Canvas) {
	for _, e := range f.order {
		pos, _, rot, _, leaf := f.leafMapper.Get(e)
		c.DrawLeaf(pos.Vec, rot.Vec, leaf.Size)
	}
}

// randomUnit returns a vector uniformly distributed on the unit sphere.
func randomUnit(rng *rand.Rand) r3.Vec {
	angle := rng.Float64() * 2 * math.Pi
	z := rng.Float64()*2 - 1
	r := math.Sqrt(1 - z*z)
	return r3.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle), Z: z}
}

// withMagnitude rescales v to length m. Zero vectors are returned unchanged.
func withMagnitude(v r3.Vec, m float64) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	return r3.Scale(m/n, v)
}
