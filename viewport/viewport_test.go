package viewport

import (
	"math"
	"testing"
)

func TestMapLandmarkMirrors(t *testing.T) {
	v := New(1280, 720)

	tests := []struct {
		x, y, z    float64
		wx, wy, wz float64
	}{
		{0, 0, 0, 1280, 0, 140},
		{1, 1, 0, 0, 720, 140},
		{0.25, 0.5, -0.1, 960, 360, 138},
	}

	for _, tt := range tests {
		p := v.MapLandmark(tt.x, tt.y, tt.z)
		if math.Abs(p.X-tt.wx) > 1e-9 || math.Abs(p.Y-tt.wy) > 1e-9 || math.Abs(p.Z-tt.wz) > 1e-9 {
			t.Errorf("MapLandmark(%g, %g, %g) = %+v, want (%g, %g, %g)", tt.x, tt.y, tt.z, p, tt.wx, tt.wy, tt.wz)
		}
	}
}

func TestMapLandmarkUnmirrored(t *testing.T) {
	v := New(100, 100)
	v.Mirror = false

	if p := v.MapLandmark(0.2, 0.3, 0); p.X != 20 || p.Y != 30 {
		t.Errorf("expected (20, 30), got %+v", p)
	}
}

func TestResize(t *testing.T) {
	v := New(800, 600)
	if v.Resize(800, 600) {
		t.Error("same size should report no change")
	}
	if !v.Resize(1024, 768) {
		t.Error("new size should report change")
	}
	if v.Width != 1024 || v.Height != 768 {
		t.Errorf("expected 1024x768, got %fx%f", v.Width, v.Height)
	}

	// Landmarks map onto the new size
	if p := v.MapLandmark(1, 1, 0); p.X != 0 || p.Y != 768 {
		t.Errorf("unexpected mapping after resize: %+v", p)
	}
}

func TestContains(t *testing.T) {
	v := New(100, 50)
	if !v.Contains(0, 0) || !v.Contains(100, 50) || !v.Contains(50, 25) {
		t.Error("expected edges and interior inside")
	}
	if v.Contains(-1, 10) || v.Contains(10, 51) {
		t.Error("expected points outside")
	}
}
