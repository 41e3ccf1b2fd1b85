package components

// Leaf holds per-leaf shape data.
// Size is overwritten on every leaf when the field size changes.
type Leaf struct {
	Size float64
}

// HalfSize returns half the leaf size, the edge inset and tip offset.
func (l Leaf) HalfSize() float64 {
	return l.Size / 2
}
