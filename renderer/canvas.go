package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Leaf stroke and ring colours. The fill is shaded per leaf by the canvas light.
var (
	LeafOutline = rl.Color{R: 50, G: 50, B: 50, A: 255}
	LeafVein    = rl.Color{R: 120, G: 50, B: 50, A: 255}
	RingColor   = rl.Color{R: 255, G: 255, B: 255, A: 150}
)

// curveSegments is the number of samples per leaf edge.
const curveSegments = 10

// leafAlpha is the fill opacity.
const leafAlpha = 230

// LeafCanvas draws the leaf field with raylib.
// Shapes are cached per size since every leaf usually shares one size.
type LeafCanvas struct {
	projection Projection
	light      Light
	shapes     map[float64]LeafShape

	// Scratch buffers reused across draw calls.
	outline []rl.Vector2
	fan     []rl.Vector2
}

// NewLeafCanvas creates a canvas for a viewport of the given size.
func NewLeafCanvas(width, height float64) *LeafCanvas {
	return &LeafCanvas{
		projection: NewProjection(width, height),
		light:      DefaultLight(),
		shapes:     make(map[float64]LeafShape),
	}
}

// Resize updates the projection for a new viewport size.
func (c *LeafCanvas) Resize(width, height float64) {
	c.projection = NewProjection(width, height)
}

func (c *LeafCanvas) shape(size float64) LeafShape {
	s, ok := c.shapes[size]
	if !ok {
		// Size changes come from a slider; keep the cache from growing without bound.
		if len(c.shapes) > 16 {
			clear(c.shapes)
		}
		s = NewLeafShape(size, curveSegments)
		c.shapes[size] = s
	}
	return s
}

// DrawLeaf draws one leaf: filled teardrop, outline, spine and two veins.
// The outline turns with rot.Z; rot.X and rot.Y only tilt the shading.
func (c *LeafCanvas) DrawLeaf(pos, rot r3.Vec, size float64) {
	shape := c.shape(size)
	origin, scale := c.projection.Project(pos)
	angle := rot.Z

	c.outline = c.outline[:0]
	for _, p := range shape.Outline {
		c.outline = append(c.outline, toRL(Transform(p, angle, scale, origin)))
	}

	// Triangle fans need counter-clockwise winding on screen; the outline is clockwise.
	c.fan = c.fan[:0]
	c.fan = append(c.fan, toRL(origin))
	for i := len(c.outline) - 1; i >= 0; i-- {
		c.fan = append(c.fan, c.outline[i])
	}
	c.fan = append(c.fan, c.outline[len(c.outline)-1])
	rl.DrawTriangleFan(c.fan, c.light.Shade(rot, leafAlpha))

	c.outline = append(c.outline, c.outline[0])
	rl.DrawLineStrip(c.outline, LeafOutline)

	spine0 := toRL(Transform(shape.Spine[0], angle, scale, origin))
	spine1 := toRL(Transform(shape.Spine[1], angle, scale, origin))
	rl.DrawLineV(spine0, spine1, LeafVein)
	for _, v := range shape.Veins {
		rl.DrawLineV(
			toRL(Transform(v[0], angle, scale, origin)),
			toRL(Transform(v[1], angle, scale, origin)),
			LeafVein,
		)
	}
}

// DrawInfluence draws the influence ring around the pointer in the z=0 plane.
// The drawn diameter equals radius; the force itself reaches the full radius.
func (c *LeafCanvas) DrawInfluence(center r3.Vec, radius float64) {
	rl.DrawCircleLines(int32(center.X), int32(center.Y), float32(radius/2), RingColor)
}

func toRL(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
