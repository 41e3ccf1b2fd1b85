package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/pthm-cable/leaves/telemetry"
	"github.com/pthm-cable/leaves/ui"
)

// ErrInvalidSetting is returned when a settings value is rejected.
var ErrInvalidSetting = errors.New("invalid setting")

// DisplayFunc receives the display string of every accepted setting change.
type DisplayFunc func(s ui.Setting, value string)

// Control sources recorded on telemetry events.
const (
	sourceAPI     = "api"
	sourcePanel   = "panel"
	sourceFeed    = "feed"
	sourceKey     = "key"
	sourceGesture = "gesture"
)

// SetDisplay registers the display collaborator. The current values are echoed
// immediately.
func (g *Game) SetDisplay(fn DisplayFunc) {
	g.display = fn
	s := g.field.Settings()
	g.echo(ui.SettingCount, formatCount(s.Count))
	g.echo(ui.SettingSize, formatFloat(s.Size))
	g.echo(ui.SettingSpeed, formatFloat(s.Speed))
	g.echo(ui.SettingRadius, formatFloat(s.InfluenceRadius))
	g.echo(ui.SettingDrawInfluence, strconv.FormatBool(s.DrawInfluence))
}

// SetAgentCount grows or truncates the field to n leaves.
func (g *Game) SetAgentCount(n int) error {
	if n < 0 {
		return invalid(ui.SettingCount, n, "must be >= 0")
	}
	g.field.Resize(n)
	g.accepted(ui.SettingCount, formatCount(n))
	return nil
}

// SetAgentSize sets every leaf's size.
func (g *Game) SetAgentSize(size float64) error {
	if !finite(size) || size <= 0 {
		return invalid(ui.SettingSize, size, "must be > 0")
	}
	g.field.SetSize(size)
	g.accepted(ui.SettingSize, formatFloat(size))
	return nil
}

// SetAgentSpeed rescales every leaf's velocity to speed.
func (g *Game) SetAgentSpeed(speed float64) error {
	if !finite(speed) || speed < 0 {
		return invalid(ui.SettingSpeed, speed, "must be >= 0")
	}
	g.field.SetSpeed(speed)
	g.accepted(ui.SettingSpeed, formatFloat(speed))
	return nil
}

// SetInfluenceRadius sets the pointer force radius.
func (g *Game) SetInfluenceRadius(r float64) error {
	if !finite(r) || r < 0 {
		return invalid(ui.SettingRadius, r, "must be >= 0")
	}
	g.field.SetInfluenceRadius(r)
	g.accepted(ui.SettingRadius, formatFloat(r))
	return nil
}

// SetDrawInfluence toggles the influence ring.
func (g *Game) SetDrawInfluence(on bool) {
	g.field.SetDrawInfluence(on)
	g.accepted(ui.SettingDrawInfluence, strconv.FormatBool(on))
}

// TriggerGridLayout snaps the field into a grid.
func (g *Game) TriggerGridLayout() {
	g.layoutGrid(g.source)
}

// ApplyControl parses and applies a raw key/value settings mutation.
// Values that fail to parse or are out of range wrap ErrInvalidSetting.
func (g *Game) ApplyControl(key, value string) error {
	setting, err := ui.ParseSetting(key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	prev := g.source
	g.source = sourceFeed
	defer func() { g.source = prev }()

	switch setting {
	case ui.SettingCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(setting, value, "not an integer")
		}
		return g.SetAgentCount(n)
	case ui.SettingSize, ui.SettingSpeed, ui.SettingRadius:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(setting, value, "not a number")
		}
		switch setting {
		case ui.SettingSize:
			return g.SetAgentSize(v)
		case ui.SettingSpeed:
			return g.SetAgentSpeed(v)
		default:
			return g.SetInfluenceRadius(v)
		}
	case ui.SettingDrawInfluence:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(setting, value, "not a boolean")
		}
		g.SetDrawInfluence(on)
	case ui.SettingGrid:
		g.TriggerGridLayout()
	}
	return nil
}

// panelBindings routes controls panel changes through the setters.
func (g *Game) panelBindings() ui.Bindings {
	fromPanel := func(fn func() error) {
		prev := g.source
		g.source = sourcePanel
		defer func() { g.source = prev }()
		if err := fn(); err != nil {
			// Slider ranges come from config; a rejection means the ranges are wrong
			slog.Warn("panel value rejected", "error", err)
		}
	}
	return ui.Bindings{
		OnCount:  func(n int) { fromPanel(func() error { return g.SetAgentCount(n) }) },
		OnSize:   func(v float64) { fromPanel(func() error { return g.SetAgentSize(v) }) },
		OnSpeed:  func(v float64) { fromPanel(func() error { return g.SetAgentSpeed(v) }) },
		OnRadius: func(v float64) { fromPanel(func() error { return g.SetInfluenceRadius(v) }) },
		OnDrawInfluence: func(on bool) {
			fromPanel(func() error { g.SetDrawInfluence(on); return nil })
		},
		OnGrid: func() { fromPanel(func() error { g.TriggerGridLayout(); return nil }) },
	}
}

// accepted echoes a change and records it.
func (g *Game) accepted(s ui.Setting, display string) {
	g.echo(s, display)
	g.collector.RecordControl()
	g.recordEvent(telemetry.NewControlEvent(g.tick, g.source, s.String(), display))
}

func (g *Game) echo(s ui.Setting, display string) {
	if g.display != nil {
		g.display(s, display)
	}
}

func invalid(s ui.Setting, value any, reason string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidSetting, s, value, reason)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
