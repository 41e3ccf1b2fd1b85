// Package components defines ECS components for the leaf field.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position represents a leaf's position in viewport space.
// X and Y are pixels, Z is the depth band offset.
type Position struct {
	r3.Vec
}

// Velocity represents a leaf's displacement per tick.
type Velocity struct {
	r3.Vec
}

// Rotation represents a leaf's accumulated rotation (radians per axis).
type Rotation struct {
	r3.Vec
}

// Spin represents a leaf's rotation velocity (radians per tick per axis).
type Spin struct {
	r3.Vec
}
