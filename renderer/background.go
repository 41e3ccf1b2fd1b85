package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer fills the viewport with a translucent turquoise wash.
type BackgroundRenderer struct {
	screenW, screenH int32
	top, bottom      rl.Color
}

// NewBackgroundRenderer creates a background renderer with a vertical gradient
// from the base colour to a darker shade.
func NewBackgroundRenderer(screenW, screenH int32, baseR, baseG, baseB uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: screenW,
		screenH: screenH,
		top:     rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
		bottom:  rl.Color{R: baseR / 2, G: baseG / 2, B: baseB / 2, A: 255},
	}
}

// Resize updates the fill rectangle.
func (b *BackgroundRenderer) Resize(w, h float32) {
	b.screenW = int32(w)
	b.screenH = int32(h)
}

// Draw fills the viewport.
func (b *BackgroundRenderer) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.screenW, b.screenH, b.top, b.bottom)
}
