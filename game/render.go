package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/leaves/ui"
)

const controlsLegend = "SPACE pause  G grid  TAB controls  F11 fullscreen"

// Draw renders the current frame. While paused the leaves are not redrawn;
// the last running frame stays on screen.
func (g *Game) Draw() {
	if g.headless {
		return
	}
	if g.state == StateRunning {
		g.drawField()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(g.frame.Texture.Width), Height: -float32(g.frame.Texture.Height)}
	rl.DrawTextureRec(g.frame.Texture, src, rl.Vector2{}, rl.White)

	g.drawUI()
	rl.EndDrawing()
}

// drawField renders the background, leaves and influence ring into the frame texture.
func (g *Game) drawField() {
	g.ensureFrame()

	rl.BeginTextureMode(g.frame)
	rl.ClearBackground(rl.Blank)
	g.background.Draw()

	g.field.Render(g.canvas)

	settings := g.field.Settings()
	if settings.DrawInfluence && g.pointerSource != PointerNone {
		g.canvas.DrawInfluence(g.pointer, settings.InfluenceRadius)
	}
	rl.EndTextureMode()
}

// ensureFrame (re)allocates the frame texture to match the viewport.
func (g *Game) ensureFrame() {
	w, h := int32(g.viewport.Width), int32(g.viewport.Height)
	if g.frame.ID != 0 && g.frame.Texture.Width == w && g.frame.Texture.Height == h {
		return
	}
	if g.frame.ID != 0 {
		rl.UnloadRenderTexture(g.frame)
	}
	g.frame = rl.LoadRenderTexture(w, h)
}

// drawUI draws the controls panel, HUD and key legend.
func (g *Game) drawUI() {
	s := g.field.Settings()
	g.controls.Draw(ui.Values{
		Count:         s.Count,
		Size:          s.Size,
		Speed:         s.Speed,
		Radius:        s.InfluenceRadius,
		DrawInfluence: s.DrawInfluence,
	})

	perf := g.perfCollector.Stats()
	var maxSpeed float64
	for _, v := range g.field.Speeds() {
		maxSpeed = max(maxSpeed, v)
	}

	g.hud.Draw(ui.HUDData{
		Title:         g.cfg.Screen.Title,
		Leaves:        g.field.Len(),
		Tick:          g.tick,
		FPS:           rl.GetFPS(),
		Paused:        g.state == StatePaused,
		PointerSource: g.pointerSource.String(),
		Gesture:       g.gesture.String(),
		MaxSpeed:      maxSpeed,
		TickTime:      perf.AvgTick,
		ScreenWidth:   int32(g.viewport.Width),
		ScreenHeight:  int32(g.viewport.Height),
	})
	g.hud.DrawControls(int32(g.viewport.Width), int32(g.viewport.Height), controlsLegend)
}
