package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestGridSize(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 10: 3, 16: 4, 99: 9, 100: 10}
	for n, want := range tests {
		if got := GridSize(n); got != want {
			t.Errorf("GridSize(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestLayoutGrid_PerfectSquare(t *testing.T) {
	f := newTestField(t, 16)
	before := f.Leaves()

	f.LayoutGrid()

	xs := map[float64]int{}
	ys := map[float64]int{}
	spacing := math.Min(testBounds.Width, testBounds.Height) / 4
	for i, l := range f.Leaves() {
		row, col := i/4, i%4
		wantX := (float64(col) + 0.5) * spacing
		wantY := (float64(row) + 0.5) * spacing
		if math.Abs(l.Position.X-wantX) > eps || math.Abs(l.Position.Y-wantY) > eps {
			t.Errorf("leaf %d at (%f, %f), want (%f, %f)", i, l.Position.X, l.Position.Y, wantX, wantY)
		}
		xs[l.Position.X]++
		ys[l.Position.Y]++

		if l.Velocity != before[i].Velocity || l.Rotation != before[i].Rotation {
			t.Errorf("leaf %d velocity or rotation changed by layout", i)
		}
		if l.Position.Z != before[i].Position.Z {
			t.Errorf("leaf %d depth changed by layout", i)
		}
	}

	if len(xs) != 4 || len(ys) != 4 {
		t.Errorf("expected 4 distinct columns and rows, got %d and %d", len(xs), len(ys))
	}
}

func TestLayoutGrid_RemainderKeepsPositions(t *testing.T) {
	for _, n := range []int{2, 5, 10, 17, 50} {
		f := newTestField(t, n)
		before := f.Leaves()

		f.LayoutGrid()

		g := GridSize(n)
		kept := 0
		for i, l := range f.Leaves() {
			if l.Position == before[i].Position {
				kept++
				if i < g*g {
					t.Errorf("n=%d: gridded leaf %d kept its position", n, i)
				}
			}
		}
		if kept != n-g*g {
			t.Errorf("n=%d: %d leaves kept positions, want %d", n, kept, n-g*g)
		}
	}
}

func TestLayoutGrid_UsesShorterSide(t *testing.T) {
	f := newTestField(t, 4)
	f.SetBounds(Bounds{Width: 200, Height: 1000})

	f.LayoutGrid()

	last := f.Leaf(3).Position
	want := r3.Vec{X: 150, Y: 150, Z: last.Z}
	if last != want {
		t.Errorf("expected last grid cell at %+v, got %+v", want, last)
	}
}
