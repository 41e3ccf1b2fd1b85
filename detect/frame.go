package detect

import "gonum.org/v1/gonum/spatial/r3"

// Landmark is a tracker landmark in normalised image coordinates.
// X and Y are in [0, 1] of the camera image; Z is relative depth.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is one detection cycle's result.
// Landmark is nil when no hand was found. HasGesture is false when the
// recogniser returned no category at all, which is distinct from a "None" label.
type Frame struct {
	Landmark   *Landmark
	Gesture    Gesture
	Score      float64
	HasGesture bool
}

// Mapper converts landmarks into viewport coordinates.
type Mapper interface {
	MapLandmark(x, y, z float64) r3.Vec
}

// Pointer returns the mapped fingertip position, or false when the frame has none.
func (f Frame) Pointer(m Mapper) (r3.Vec, bool) {
	if f.Landmark == nil {
		return r3.Vec{}, false
	}
	return m.MapLandmark(f.Landmark.X, f.Landmark.Y, f.Landmark.Z), true
}
