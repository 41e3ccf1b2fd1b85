package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Leaves        int
	Tick          int32
	FPS           int32
	Paused        bool
	PointerSource string
	Gesture       string
	MaxSpeed      float64
	TickTime      time.Duration
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the heads-up display in the top-right corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	const width = 220
	x := data.ScreenWidth - width - 10
	y := int32(10)

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	y = h.renderer.DrawLabelValue(x, y, "Leaves", fmt.Sprintf("%d", data.Leaves))
	y = h.renderer.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = h.renderer.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = h.renderer.DrawLabelValue(x, y, "Step", data.TickTime.Round(time.Microsecond).String())
	y = h.renderer.DrawLabelValue(x, y, "Pointer", data.PointerSource)
	y = h.renderer.DrawLabelValue(x, y, "Gesture", data.Gesture)
	y = h.renderer.DrawLabelValue(x, y, "Max speed", fmt.Sprintf("%.2f", data.MaxSpeed))

	if data.Paused {
		rl.DrawText("PAUSED", x, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
