package ui

import (
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ranges bound the controls panel sliders.
type Ranges struct {
	MaxCount  int
	MinSize   float64
	MaxSize   float64
	MaxSpeed  float64
	MaxRadius float64
}

// ControlsPanel renders the sliders, checkbox and grid button for the field.
// Changes are reported through Bindings; the game echoes accepted values back
// through Show.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
	ranges   Ranges
	bindings Bindings
	shown    [settingCount]string
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, ranges Ranges) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		ranges:   ranges,
	}
}

// Bind sets the change handlers.
func (c *ControlsPanel) Bind(b Bindings) {
	c.bindings = b
}

// Show records the display string for a setting.
func (c *ControlsPanel) Show(s Setting, value string) {
	if s < settingCount {
		c.shown[s] = value
	}
}

// Shown returns the last display string for a setting.
func (c *ControlsPanel) Shown(s Setting) string {
	if s < settingCount {
		return c.shown[s]
	}
	return ""
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height)
}

// Draw renders the panel for the current values and dispatches any changes.
// Returns the Y position below the panel.
func (c *ControlsPanel) Draw(current Values) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	row := r.Theme.LineHeight + r.Theme.SliderHeight + 6
	c.height = padding*2 + r.Theme.LineHeight + 4 + row*4 + r.Theme.LineHeight*2 + 8

	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + padding
	y := r.DrawSectionHeader(x, c.y+padding, "Leaves")
	inner := c.width - padding*2

	count := c.slider(x, &y, inner, SettingCount, float64(current.Count), 0, float64(c.ranges.MaxCount))
	size := c.slider(x, &y, inner, SettingSize, current.Size, c.ranges.MinSize, c.ranges.MaxSize)
	speed := c.slider(x, &y, inner, SettingSpeed, current.Speed, 0, c.ranges.MaxSpeed)
	radius := c.slider(x, &y, inner, SettingRadius, current.Radius, 0, c.ranges.MaxRadius)
	next := fromSliders(current, count, size, speed, radius)

	box := rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14}
	next.DrawInfluence = gui.CheckBox(box, SettingDrawInfluence.Label(), current.DrawInfluence)
	y += r.Theme.LineHeight + 4

	button := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: float32(r.Theme.LineHeight + 4)}
	grid := gui.Button(button, "Grid")

	c.bindings.dispatch(current, next, grid)

	return c.y + c.height
}

// slider draws a labelled slider row and advances y.
func (c *ControlsPanel) slider(x int32, y *int32, width int32, s Setting, value, lo, hi float64) float32 {
	r := c.renderer
	r.DrawLabelValue(x, *y, s.Label(), c.shown[s])
	*y += r.Theme.LineHeight

	lo, hi = sliderRange(value, lo, hi)
	bounds := rl.Rectangle{X: float32(x), Y: float32(*y), Width: float32(width), Height: float32(r.Theme.SliderHeight)}
	v := gui.SliderBar(bounds, "", "", float32(value), float32(lo), float32(hi))
	*y += r.Theme.SliderHeight + 6
	return v
}

// sliderRange widens [lo, hi] to include value. raygui clamps the value into the
// slider range every frame, so a value set through the feed or config outside
// the configured range would otherwise come back as a change.
func sliderRange(value, lo, hi float64) (float64, float64) {
	return math.Min(lo, value), math.Max(hi, value)
}

// fromSliders converts raw slider positions into control values.
// Size and radius move in whole pixels, speed in hundredths.
func fromSliders(current Values, count, size, speed, radius float32) Values {
	next := current
	next.Count = int(math.Round(float64(count)))
	next.Size = snap(current.Size, float64(size), 1)
	next.Speed = snap(current.Speed, float64(speed), 100)
	next.Radius = snap(current.Radius, float64(radius), 1)
	return next
}

// snap rounds a slider value to 1/steps. Values that only differ from current
// through float32 precision are reported unchanged.
func snap(current, v, steps float64) float64 {
	r := math.Round(v*steps) / steps
	if r == math.Round(current*steps)/steps {
		return current
	}
	return r
}
