package systems

import "math"

// GridSize returns the side of the largest square grid that fits n leaves.
func GridSize(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(math.Sqrt(float64(n))))
}

// LayoutGrid snaps the first GridSize(n)^2 leaves onto an evenly spaced square grid,
// row-major in collection order. Velocity, rotation and z are left untouched.
// Leaves past the square (when n is not a perfect square) keep their positions.
func (f *Field) LayoutGrid() {
	g := GridSize(len(f.order))
	if g == 0 {
		return
	}
	spacing := math.Min(f.bounds.Width, f.bounds.Height) / float64(g)

	for i := 0; i < g*g; i++ {
		row, col := i/g, i%g
		pos, _, _, _, _ := f.leafMapper.Get(f.order[i])
		pos.X = (float64(col) + 0.5) * spacing
		pos.Y = (float64(row) + 0.5) * spacing
	}
}
