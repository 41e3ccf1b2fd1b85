package renderer

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// LeafShape is a leaf's geometry in its local frame, tip pointing up (-Y).
type LeafShape struct {
	// Outline runs from the tip down the right edge to the base and back up the left.
	Outline []r2.Vec
	// Spine runs tip to base; Veins fan up from the centre.
	Spine [2]r2.Vec
	Veins [2][2]r2.Vec
}

// NewLeafShape builds a teardrop of the given size from two mirrored cubic curves.
// segments is the number of samples per curve.
func NewLeafShape(size float64, segments int) LeafShape {
	if segments < 1 {
		segments = 1
	}
	half := size / 2
	quarter := size / 4
	third := size / 3
	sixth := size / 6

	tip := r2.Vec{X: 0, Y: -half}
	base := r2.Vec{X: 0, Y: half}

	right := cubicPoints(tip, r2.Vec{X: quarter, Y: -third}, r2.Vec{X: half, Y: quarter}, base, segments)
	left := cubicPoints(base, r2.Vec{X: -half, Y: quarter}, r2.Vec{X: -quarter, Y: -third}, tip, segments)

	// Both curves share their end points; drop the duplicates.
	outline := make([]r2.Vec, 0, 2*segments)
	outline = append(outline, right...)
	outline = append(outline, left[1:len(left)-1]...)

	return LeafShape{
		Outline: outline,
		Spine:   [2]r2.Vec{tip, base},
		Veins: [2][2]r2.Vec{
			{{X: 0, Y: 0}, {X: quarter, Y: -sixth}},
			{{X: 0, Y: 0}, {X: -quarter, Y: -sixth}},
		},
	}
}

// cubicPoints samples a cubic Bézier at segments+1 evenly spaced parameters.
func cubicPoints(p0, p1, p2, p3 r2.Vec, segments int) []r2.Vec {
	pts := make([]r2.Vec, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = cubicAt(p0, p1, p2, p3, float64(i)/float64(segments))
	}
	return pts
}

// cubicAt evaluates a cubic Bézier at t.
func cubicAt(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return r2.Vec{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}

// Transform rotates a local point by angle and scales it, then moves it to origin.
func Transform(p r2.Vec, angle, scale float64, origin r2.Vec) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{
		X: origin.X + (p.X*cos-p.Y*sin)*scale,
		Y: origin.Y + (p.X*sin+p.Y*cos)*scale,
	}
}

// Projection approximates a perspective camera looking down -Z at the viewport,
// so leaves with positive depth appear larger and further from the centre.
type Projection struct {
	Width, Height float64
	// Distance from the camera to the z=0 plane.
	Distance float64
}

// NewProjection places the camera so the z=0 plane fills the viewport with a
// 60 degree vertical field of view.
func NewProjection(width, height float64) Projection {
	return Projection{
		Width:    width,
		Height:   height,
		Distance: (height / 2) / math.Tan(math.Pi/6),
	}
}

// Project returns the screen position and scale for a point.
func (p Projection) Project(pos r3.Vec) (r2.Vec, float64) {
	depth := p.Distance - pos.Z
	if depth < 1 {
		depth = 1
	}
	scale := p.Distance / depth
	cx, cy := p.Width/2, p.Height/2
	return r2.Vec{
		X: cx + (pos.X-cx)*scale,
		Y: cy + (pos.Y-cy)*scale,
	}, scale
}
