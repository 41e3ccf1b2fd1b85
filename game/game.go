// Package game runs the leaf field: tick loop, pause state, pointer tracking,
// settings mutations and telemetry.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/leaves/config"
	"github.com/pthm-cable/leaves/detect"
	"github.com/pthm-cable/leaves/renderer"
	"github.com/pthm-cable/leaves/systems"
	"github.com/pthm-cable/leaves/telemetry"
	"github.com/pthm-cable/leaves/ui"
	"github.com/pthm-cable/leaves/viewport"
)

// PointerSource identifies where the force pointer came from this tick.
type PointerSource uint8

const (
	PointerNone PointerSource = iota
	PointerMouse
	PointerHand
)

func (p PointerSource) String() string {
	switch p {
	case PointerMouse:
		return "mouse"
	case PointerHand:
		return "hand"
	default:
		return "none"
	}
}

// Game holds the complete program state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	field    *systems.Field
	viewport *viewport.Viewport

	// Detection
	latest     *detect.Latest
	feed       *detect.Feed
	tracker    *detect.Tracker
	hand       r3.Vec
	handAt     time.Time // zero when the last frame had no landmark
	gesture    detect.Gesture
	staleAfter time.Duration

	// Pointer used by the force this tick
	mouse         r3.Vec
	mouseActive   bool
	pointer       r3.Vec
	pointerSource PointerSource

	// Rendering (nil when headless)
	frame      rl.RenderTexture2D // Last running frame, shown while paused
	focused    bool
	canvas     *renderer.LeafCanvas
	background *renderer.BackgroundRenderer
	controls   *ui.ControlsPanel
	hud        *ui.HUD

	// State
	state          State
	tick           int32
	headless       bool
	stepsPerUpdate int
	now            func() time.Time

	// Settings plumbing
	source  string
	display DisplayFunc

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Field.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	width := float64(cfg.Screen.Width)
	height := float64(cfg.Screen.Height)

	world := ecs.NewWorld()
	latest := &detect.Latest{}

	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rand.New(rand.NewSource(seed)),
		seed:           seed,
		viewport:       viewport.New(width, height),
		latest:         latest,
		feed:           detect.NewFeed(latest, cfg.Detection.ReadLimit),
		tracker:        detect.NewTracker(cfg.Derived.Trigger, cfg.Gesture.MinScore),
		staleAfter:     time.Duration(cfg.Detection.StaleAfter * float64(time.Second)),
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		now:            time.Now,
		source:         sourceAPI,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow, cfg.Derived.TickDuration),
		collector:      telemetry.NewCollector(statsWindow, cfg.Derived.TickSeconds),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}

	g.field = systems.NewField(world, fieldSettings(cfg), systems.Bounds{Width: width, Height: height}, g.rng)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("output disabled", "error", err)
	} else if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
		g.outputManager = om
		slog.Info("writing telemetry", "dir", om.Dir())
	}

	if !g.headless {
		g.canvas = renderer.NewLeafCanvas(width, height)
		g.background = renderer.NewBackgroundRenderer(int32(width), int32(height), 64, 224, 208)
		g.controls = ui.NewControlsPanel(10, 10, 240, ui.Ranges{
			MaxCount:  cfg.Controls.MaxCount,
			MinSize:   cfg.Controls.MinSize,
			MaxSize:   cfg.Controls.MaxSize,
			MaxSpeed:  cfg.Controls.MaxSpeed,
			MaxRadius: cfg.Controls.MaxRadius,
		})
		g.controls.SetVisible(cfg.Controls.Visible)
		g.controls.Bind(g.panelBindings())
		g.hud = ui.NewHUD()
		g.focused = true
		g.SetDisplay(g.controls.Show)
	}

	slog.Info("field created",
		"seed", seed,
		"leaves", g.field.Len(),
		"width", width,
		"height", height,
		"headless", g.headless,
	)

	return g
}

// Update handles input and advances the field by one tick.
func (g *Game) Update() {
	if !g.headless {
		g.handleInput()
	}
	g.advance()
}

// UpdateHeadless advances the field without touching the window.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.advance()
	}
}

// advance applies queued controls and, unless paused, runs one tick:
// detection, step, then the pointer force.
func (g *Game) advance() {
	if g.state == StatePaused {
		g.drainControls()
		return
	}

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseControls)
	g.drainControls()

	g.perfCollector.StartPhase(telemetry.PhaseDetection)
	if frame, at, ok := g.latest.Take(); ok {
		g.OnDetection(frame, at)
	}
	g.updatePointer(g.now())

	g.perfCollector.StartPhase(telemetry.PhaseStep)
	g.field.Step()

	g.perfCollector.StartPhase(telemetry.PhaseForce)
	if g.pointerSource != PointerNone {
		g.field.ApplyPointForce(g.pointer)
		g.collector.RecordForce(g.pointerSource == PointerHand)
	}

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// OnDetection consumes one detection frame. A landmark moves the hand pointer,
// a missing one withdraws it, and a fresh trigger gesture lays the field out
// as a grid.
func (g *Game) OnDetection(f detect.Frame, at time.Time) {
	if p, ok := f.Pointer(g.viewport); ok {
		g.hand = p
		g.handAt = at
	} else {
		g.handAt = time.Time{}
	}

	// Frames without a recognised category leave the tracker's previous label
	// alone, so a hand dropping out for a frame does not re-arm the trigger.
	g.gesture = detect.GestureNone
	if !f.HasGesture {
		return
	}
	g.gesture = f.Gesture
	if g.tracker.Observe(f.Gesture, f.Score) {
		slog.Info("gesture", "gesture", f.Gesture.String(), "score", f.Score, "tick", g.tick)
		g.layoutGrid(sourceGesture)
	}
}

// updatePointer picks the force pointer: a recent hand landmark, else the
// mouse, else none.
func (g *Game) updatePointer(now time.Time) {
	switch {
	case !g.handAt.IsZero() && now.Sub(g.handAt) <= g.staleAfter:
		g.pointer = g.hand
		g.pointerSource = PointerHand
	case g.mouseActive:
		g.pointer = g.mouse
		g.pointerSource = PointerMouse
	default:
		g.pointerSource = PointerNone
	}
}

// SetMouse sets the cursor pointer. Inactive cursors, and cursors outside the
// viewport, exert no force.
func (g *Game) SetMouse(x, y float64, active bool) {
	g.mouse = r3.Vec{X: x, Y: y}
	g.mouseActive = active && g.viewport.Contains(x, y)
}

// drainControls applies every queued feed control.
func (g *Game) drainControls() {
	for {
		select {
		case c := <-g.feed.Controls():
			if err := g.ApplyControl(c.Key, c.Value); err != nil {
				slog.Warn("control rejected", "key", c.Key, "value", c.Value, "error", err)
				g.recordEvent(telemetry.NewFeedErrorEvent(g.tick, err))
			}
		default:
			return
		}
	}
}

// layoutGrid snaps the field into a grid and records what asked for it.
func (g *Game) layoutGrid(source string) {
	g.field.LayoutGrid()
	g.collector.RecordGridLayout()
	g.recordEvent(telemetry.NewGridLayoutEvent(g.tick, source))
}

// Resize rescales the field's bounding rectangle. Leaves are not moved.
func (g *Game) Resize(width, height float64) {
	if !g.viewport.Resize(width, height) {
		return
	}
	g.field.SetBounds(systems.Bounds{Width: width, Height: height})
	if g.canvas != nil {
		g.canvas.Resize(width, height)
	}
	if g.background != nil {
		g.background.Resize(float32(width), float32(height))
	}
	slog.Info("resized", "width", width, "height", height)
}

// Feed returns the detection feed, for serving over HTTP.
func (g *Game) Feed() *detect.Feed {
	return g.feed
}

// Field returns the leaf field.
func (g *Game) Field() *systems.Field {
	return g.field
}

// Pointer returns the force pointer and its source for the last tick.
func (g *Game) Pointer() (r3.Vec, PointerSource) {
	return g.pointer, g.pointerSource
}

// Tick returns the number of ticks run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.frame.ID != 0 {
		rl.UnloadRenderTexture(g.frame)
		g.frame = rl.RenderTexture2D{}
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
}
