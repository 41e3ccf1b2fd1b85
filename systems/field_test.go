package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

var testBounds = Bounds{Width: 800, Height: 600}

func newTestField(t *testing.T, n int) *Field {
	t.Helper()
	s := DefaultSettings()
	s.Count = n
	return NewField(ecs.NewWorld(), s, testBounds, rand.New(rand.NewSource(7)))
}

// place overwrites the i-th leaf's position and velocity.
func place(f *Field, i int, pos, vel r3.Vec) {
	p, v, _, _, _ := f.leafMapper.Get(f.order[i])
	p.Vec = pos
	v.Vec = vel
}

func setSpin(f *Field, i int, spin r3.Vec) {
	_, _, _, s, _ := f.leafMapper.Get(f.order[i])
	s.Vec = spin
}

func TestNewField_SpawnsWithinBounds(t *testing.T) {
	f := newTestField(t, 200)
	if f.Len() != 200 {
		t.Fatalf("expected 200 leaves, got %d", f.Len())
	}

	for i, l := range f.Leaves() {
		if l.Position.X < 0 || l.Position.X > testBounds.Width ||
			l.Position.Y < 0 || l.Position.Y > testBounds.Height {
			t.Errorf("leaf %d spawned outside viewport: %+v", i, l.Position)
		}
		if math.Abs(l.Position.Z) > f.settings.Depth {
			t.Errorf("leaf %d spawned outside depth band: z=%f", i, l.Position.Z)
		}
		if math.Abs(r3.Norm(l.Velocity)-f.settings.Speed) > 1e-6 {
			t.Errorf("leaf %d speed %f, expected %f", i, r3.Norm(l.Velocity), f.settings.Speed)
		}
		if l.Size != f.settings.Size {
			t.Errorf("leaf %d size %f, expected %f", i, l.Size, f.settings.Size)
		}
	}
}

func TestNewField_Empty(t *testing.T) {
	f := newTestField(t, 0)
	if f.Len() != 0 {
		t.Errorf("expected empty field, got %d", f.Len())
	}
	f.Step()
	f.LayoutGrid()
	f.ApplyPointForce(r3.Vec{X: 10, Y: 10})
}

func TestResize_ExactLengthAndIdempotent(t *testing.T) {
	f := newTestField(t, 5)
	for _, n := range []int{0, 1, 9, 50, 3, 3, 100, 0} {
		f.Resize(n)
		if f.Len() != n {
			t.Fatalf("Resize(%d): got %d leaves", n, f.Len())
		}
		before := f.Leaves()
		f.Resize(n)
		after := f.Leaves()
		if len(after) != n {
			t.Fatalf("second Resize(%d): got %d leaves", n, len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("Resize(%d) twice changed leaf %d", n, i)
			}
		}
		if f.Settings().Count != n {
			t.Errorf("settings count %d, expected %d", f.Settings().Count, n)
		}
	}
}

func TestResize_NegativeIsEmpty(t *testing.T) {
	f := newTestField(t, 4)
	f.Resize(-3)
	if f.Len() != 0 {
		t.Errorf("expected 0 leaves, got %d", f.Len())
	}
}

func TestResize_GrowKeepsExisting(t *testing.T) {
	f := newTestField(t, 4)
	original := f.Leaves()

	f.Resize(10)
	if f.Len() != 10 {
		t.Fatalf("expected 10 leaves, got %d", f.Len())
	}

	grown := f.Leaves()
	for i := 0; i < 4; i++ {
		if grown[i] != original[i] {
			t.Errorf("leaf %d changed on grow", i)
		}
	}
	for i := 4; i < 10; i++ {
		p := grown[i].Position
		if p.X < 0 || p.X > testBounds.Width || p.Y < 0 || p.Y > testBounds.Height {
			t.Errorf("new leaf %d outside viewport: %+v", i, p)
		}
	}
}

func TestResize_ShrinkTruncatesTail(t *testing.T) {
	f := newTestField(t, 6)
	original := f.Leaves()

	f.Resize(2)
	kept := f.Leaves()
	for i := range kept {
		if kept[i] != original[i] {
			t.Errorf("leaf %d changed on shrink", i)
		}
	}
}

func TestResize_UsesCurrentSizeAndSpeed(t *testing.T) {
	f := newTestField(t, 1)
	f.SetSize(30)
	f.SetSpeed(3)
	f.Resize(3)

	for i, l := range f.Leaves() {
		if l.Size != 30 {
			t.Errorf("leaf %d size %f, expected 30", i, l.Size)
		}
		if math.Abs(r3.Norm(l.Velocity)-3) > 1e-6 {
			t.Errorf("leaf %d speed %f, expected 3", i, r3.Norm(l.Velocity))
		}
	}
}

func TestSetSize_Broadcasts(t *testing.T) {
	f := newTestField(t, 10)
	f.SetSize(12)
	for i, l := range f.Leaves() {
		if l.Size != 12 {
			t.Errorf("leaf %d size %f, expected 12", i, l.Size)
		}
	}
}

func TestSetSpeed_PreservesDirection(t *testing.T) {
	f := newTestField(t, 3)
	place(f, 0, r3.Vec{X: 100, Y: 100}, r3.Vec{X: 3, Y: -4, Z: 0})
	place(f, 1, r3.Vec{X: 100, Y: 100}, r3.Vec{})
	place(f, 2, r3.Vec{X: 100, Y: 100}, r3.Vec{X: 0.1, Y: 0.2, Z: -0.3})

	before := f.Leaves()
	f.SetSpeed(2.5)
	after := f.Leaves()

	for _, i := range []int{0, 2} {
		if got := r3.Norm(after[i].Velocity); math.Abs(got-2.5) > 1e-9 {
			t.Errorf("leaf %d speed %f, expected 2.5", i, got)
		}
		u0 := r3.Unit(before[i].Velocity)
		u1 := r3.Unit(after[i].Velocity)
		if r3.Norm(r3.Sub(u0, u1)) > 1e-9 {
			t.Errorf("leaf %d direction changed: %+v -> %+v", i, u0, u1)
		}
	}

	if after[1].Velocity != (r3.Vec{}) {
		t.Errorf("resting leaf should stay at rest, got %+v", after[1].Velocity)
	}
}

func TestStep_Integrates(t *testing.T) {
	f := newTestField(t, 1)
	place(f, 0, r3.Vec{X: 400, Y: 300, Z: 0}, r3.Vec{X: 1, Y: -2, Z: 0.5})
	setSpin(f, 0, r3.Vec{X: 0.1, Y: 0.2, Z: 0.3})
	rot0 := f.Leaf(0).Rotation

	f.Step()

	l := f.Leaf(0)
	want := r3.Vec{X: 401, Y: 298, Z: 0.5}
	if r3.Norm(r3.Sub(l.Position, want)) > eps {
		t.Errorf("expected position %+v, got %+v", want, l.Position)
	}
	wantRot := r3.Add(rot0, r3.Vec{X: 0.1, Y: 0.2, Z: 0.3})
	if r3.Norm(r3.Sub(l.Rotation, wantRot)) > eps {
		t.Errorf("expected rotation %+v, got %+v", wantRot, l.Rotation)
	}
}

func TestStep_ReflectsOutsideBounds(t *testing.T) {
	f := newTestField(t, 1)
	half := f.settings.Size / 2

	tests := []struct {
		name    string
		pos     r3.Vec
		vel     r3.Vec
		flipped [3]bool
	}{
		{"inside", r3.Vec{X: 400, Y: 300}, r3.Vec{X: 1, Y: 1, Z: 1}, [3]bool{false, false, false}},
		{"past right", r3.Vec{X: testBounds.Width - half, Y: 300}, r3.Vec{X: 1}, [3]bool{true, false, false}},
		{"past left", r3.Vec{X: half, Y: 300}, r3.Vec{X: -1}, [3]bool{true, false, false}},
		{"past bottom", r3.Vec{X: 400, Y: testBounds.Height - half}, r3.Vec{Y: 2}, [3]bool{false, true, false}},
		{"past top", r3.Vec{X: 400, Y: half}, r3.Vec{Y: -2}, [3]bool{false, true, false}},
		{"past depth", r3.Vec{X: 400, Y: 300, Z: 49.5}, r3.Vec{Z: 1}, [3]bool{false, false, true}},
		{"below depth", r3.Vec{X: 400, Y: 300, Z: -49.5}, r3.Vec{Z: -1}, [3]bool{false, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place(f, 0, tt.pos, tt.vel)
			f.Step()
			got := f.Leaf(0).Velocity
			check := func(axis string, before, after float64, flipped bool) {
				want := before
				if flipped {
					want = -before
				}
				if after != want {
					t.Errorf("%s velocity %f, expected %f", axis, after, want)
				}
			}
			check("x", tt.vel.X, got.X, tt.flipped[0])
			check("y", tt.vel.Y, got.Y, tt.flipped[1])
			check("z", tt.vel.Z, got.Z, tt.flipped[2])
		})
	}
}

func TestStep_ReflectsWithoutClamping(t *testing.T) {
	f := newTestField(t, 1)
	place(f, 0, r3.Vec{X: testBounds.Width - 40, Y: 300}, r3.Vec{X: 5})

	f.Step()

	l := f.Leaf(0)
	if l.Position.X != testBounds.Width-35 {
		t.Errorf("position should overshoot to %f, got %f", testBounds.Width-35, l.Position.X)
	}
	if l.Velocity.X != -5 {
		t.Errorf("expected reflected velocity -5, got %f", l.Velocity.X)
	}
}

func TestStep_NoMarginEdges(t *testing.T) {
	s := DefaultSettings()
	s.Count = 1
	s.HalfSizeEdges = false
	f := NewField(ecs.NewWorld(), s, testBounds, rand.New(rand.NewSource(1)))
	place(f, 0, r3.Vec{X: 10, Y: 300}, r3.Vec{X: -1})

	f.Step()
	if f.Leaf(0).Velocity.X != -1 {
		t.Errorf("leaf inside [0, width] should not reflect, got vx=%f", f.Leaf(0).Velocity.X)
	}
}

func TestSetBounds_DoesNotMoveLeaves(t *testing.T) {
	f := newTestField(t, 5)
	before := f.Leaves()
	f.SetBounds(Bounds{Width: 100, Height: 100})
	after := f.Leaves()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("leaf %d changed on bounds change", i)
		}
	}
	if f.Bounds().Width != 100 {
		t.Errorf("expected width 100, got %f", f.Bounds().Width)
	}
}

func TestSpeeds(t *testing.T) {
	f := newTestField(t, 3)
	place(f, 0, r3.Vec{}, r3.Vec{X: 3, Y: 4})
	place(f, 1, r3.Vec{}, r3.Vec{})
	place(f, 2, r3.Vec{}, r3.Vec{Z: 2})

	speeds := f.Speeds()
	if len(speeds) != 3 {
		t.Fatalf("expected 3 speeds, got %d", len(speeds))
	}
	var sum float64
	for _, s := range speeds {
		sum += s
	}
	if math.Abs(sum-7) > eps {
		t.Errorf("expected speeds summing to 7, got %f", sum)
	}
}

type recordingCanvas struct {
	leaves []r3.Vec
	sizes  []float64
	rings  int
}

func (c *recordingCanvas) DrawLeaf(pos, rot r3.Vec, size float64) {
	c.leaves = append(c.leaves, pos)
	c.sizes = append(c.sizes, size)
}

func (c *recordingCanvas) DrawInfluence(center r3.Vec, radius float64) {
	c.rings++
}

func TestRender_CollectionOrder(t *testing.T) {
	f := newTestField(t, 5)
	for i := 0; i < 5; i++ {
		place(f, i, r3.Vec{X: float64(i * 10), Y: 1}, r3.Vec{})
	}

	c := &recordingCanvas{}
	f.Render(c)

	if len(c.leaves) != 5 {
		t.Fatalf("expected 5 draw calls, got %d", len(c.leaves))
	}
	for i, p := range c.leaves {
		if p.X != float64(i*10) {
			t.Errorf("draw %d at x=%f, expected %d", i, p.X, i*10)
		}
	}
	if c.rings != 0 {
		t.Errorf("field render should not draw the influence ring")
	}
}
