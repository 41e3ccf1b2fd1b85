// Leaf preview tool - interactive view of one leaf and the pointer force falloff.
//
// Usage: go run ./cmd/leafpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/leaves/renderer"
	"github.com/pthm-cable/leaves/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 420
	panelWidth   = windowWidth - previewSize - 30
	plotHeight   = 220
)

// PreviewParams holds the slider values.
type PreviewParams struct {
	Size   float32
	Angle  float32
	Depth  float32
	Radius float32
	Gain   float32
}

func main() {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Leaf Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PreviewParams{
		Size:   80,
		Angle:  0,
		Depth:  0,
		Radius: 300,
		Gain:   systems.GainGentle,
	}

	canvas := renderer.NewLeafCanvas(previewSize, previewSize)
	center := r3.Vec{X: 10 + previewSize/2, Y: 10 + previewSize/2}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Leaf preview
		rl.DrawRectangle(10, 10, previewSize, previewSize, rl.Color{R: 64, G: 224, B: 208, A: 255})
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		pos := center
		pos.Z = float64(params.Depth)
		canvas.DrawLeaf(pos, r3.Vec{Z: float64(params.Angle)}, float64(params.Size))

		shape := renderer.NewLeafShape(float64(params.Size), 10)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Outline points: %d  Size: %.0f  Depth: %.0f", len(shape.Outline), params.Size, params.Depth), 15, statsY, 16, rl.DarkGray)

		// Falloff plot
		drawFalloff(10, statsY+30, previewSize, plotHeight, float64(params.Radius), float64(params.Gain))

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Leaf Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.Size = slider(panelX, &panelY, "Size", "%.0f", params.Size, 10, 200)
		params.Angle = slider(panelX, &panelY, "Rotation (radians)", "%.2f", params.Angle, -3.14, 3.14)
		params.Depth = slider(panelX, &panelY, "Depth (z)", "%.0f", params.Depth, -50, 50)

		panelY += 10
		rl.DrawText("Force Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		params.Radius = slider(panelX, &panelY, "Influence radius", "%.0f", params.Radius, 1, 600)
		params.Gain = slider(panelX, &panelY, "Gain", "%.1f", params.Gain, 0, systems.GainBurst)

		// Presets
		presets := []struct {
			label string
			gain  float32
		}{
			{"Gentle", systems.GainGentle},
			{"Strong", systems.GainStrong},
			{"Burst", systems.GainBurst},
		}
		bw := float32(panelWidth-20) / float32(len(presets))
		for i, p := range presets {
			r := rl.Rectangle{X: panelX + float32(i)*bw, Y: panelY, Width: bw - 10, Height: 30}
			if gui.Button(r, p.label) {
				params.Gain = p.gain
			}
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider with its value and advances y.
func slider(x float32, y *float32, label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// drawFalloff plots the velocity added per tick against distance to the pointer.
func drawFalloff(x, y, w, h int32, radius, gain float64) {
	rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
	rl.DrawText("velocity added vs distance", x+5, y+5, 14, rl.Gray)

	maxDist := radius * 1.25
	maxGain := float64(systems.GainBurst)
	prev := rl.Vector2{}
	for px := int32(0); px <= w; px++ {
		d := float64(px) / float64(w) * maxDist
		dv := systems.ForceStrength(d, radius) * gain
		p := rl.Vector2{
			X: float32(x + px),
			Y: float32(y+h) - float32(dv/maxGain)*float32(h-25),
		}
		if px > 0 {
			rl.DrawLineV(prev, p, rl.Maroon)
		}
		prev = p
	}

	rx := x + int32(radius/maxDist*float64(w))
	rl.DrawLine(rx, y, rx, y+h, rl.LightGray)
	rl.DrawText(fmt.Sprintf("r=%.0f", radius), rx+4, y+h-18, 14, rl.Gray)
}
