// Package viewport describes the screen rectangle the leaf field lives in and maps
// tracker coordinates onto it.
package viewport

import "gonum.org/v1/gonum/spatial/r3"

// Landmark depth mapping: z' = (z + depthOffset) * depthScale + depthBase.
const (
	depthOffset = 2.0
	depthScale  = 20.0
	depthBase   = 100.0
)

// Viewport is the visible rectangle in screen pixels.
type Viewport struct {
	Width, Height float64

	// Mirror flips landmark X; the camera image is shown mirrored.
	Mirror bool
}

// New creates a mirrored viewport of the given size.
func New(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, Mirror: true}
}

// Resize updates the viewport dimensions. Returns true if they changed.
func (v *Viewport) Resize(width, height float64) bool {
	if width == v.Width && height == v.Height {
		return false
	}
	v.Width = width
	v.Height = height
	return true
}

// MapLandmark converts a normalised landmark into viewport coordinates.
func (v *Viewport) MapLandmark(x, y, z float64) r3.Vec {
	if v.Mirror {
		x = 1 - x
	}
	return r3.Vec{
		X: x * v.Width,
		Y: y * v.Height,
		Z: (z+depthOffset)*depthScale + depthBase,
	}
}

// Contains reports whether a point lies inside the rectangle.
func (v *Viewport) Contains(x, y float64) bool {
	return x >= 0 && x <= v.Width && y >= 0 && y <= v.Height
}
