package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window events, keyboard and mouse.
func (g *Game) handleInput() {
	g.handleFocus()
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyG) {
		prev := g.source
		g.source = sourceKey
		g.TriggerGridLayout()
		g.source = prev
	}

	g.handleMouse()
}

// handleFocus maps window focus changes onto the run state.
func (g *Game) handleFocus() {
	focused := rl.IsWindowFocused()
	if focused == g.focused {
		return
	}
	g.focused = focused
	if focused {
		g.FocusGained()
	} else {
		g.FocusLost()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}

// handleMouse tracks the cursor as a fallback pointer. The cursor exerts no
// force while it is outside the window or over the controls panel.
func (g *Game) handleMouse() {
	pos := rl.GetMousePosition()
	active := rl.IsCursorOnScreen() && !g.controls.Contains(pos.X, pos.Y)
	g.SetMouse(float64(pos.X), float64(pos.Y), active)
}
