package ui

import "fmt"

// Setting names one user-adjustable field parameter.
type Setting uint8

const (
	SettingCount Setting = iota
	SettingSize
	SettingSpeed
	SettingRadius
	SettingDrawInfluence
	SettingGrid
	settingCount
)

var settingKeys = [...]string{
	SettingCount:         "count",
	SettingSize:          "size",
	SettingSpeed:         "speed",
	SettingRadius:        "radius",
	SettingDrawInfluence: "influence",
	SettingGrid:          "grid",
}

var settingLabels = [...]string{
	SettingCount:         "Leaf count",
	SettingSize:          "Size",
	SettingSpeed:         "Speed",
	SettingRadius:        "Influence radius",
	SettingDrawInfluence: "Draw influence",
	SettingGrid:          "Grid",
}

// ParseSetting maps a control key such as "count" to a Setting.
func ParseSetting(key string) (Setting, error) {
	for i, k := range settingKeys {
		if k == key {
			return Setting(i), nil
		}
	}
	return 0, fmt.Errorf("unknown setting %q", key)
}

// String returns the control key.
func (s Setting) String() string {
	if s < settingCount {
		return settingKeys[s]
	}
	return fmt.Sprintf("setting(%d)", s)
}

// Label returns the display label.
func (s Setting) Label() string {
	if s < settingCount {
		return settingLabels[s]
	}
	return s.String()
}

// Values are the control values shown by the panel.
type Values struct {
	Count         int
	Size          float64
	Speed         float64
	Radius        float64
	DrawInfluence bool
}

// Bindings are the handlers invoked when a control changes.
// Nil handlers are skipped.
type Bindings struct {
	OnCount         func(int)
	OnSize          func(float64)
	OnSpeed         func(float64)
	OnRadius        func(float64)
	OnDrawInfluence func(bool)
	OnGrid          func()
}

// dispatch invokes the handler of every value that differs between prev and next.
func (b Bindings) dispatch(prev, next Values, grid bool) {
	if next.Count != prev.Count && b.OnCount != nil {
		b.OnCount(next.Count)
	}
	if next.Size != prev.Size && b.OnSize != nil {
		b.OnSize(next.Size)
	}
	if next.Speed != prev.Speed && b.OnSpeed != nil {
		b.OnSpeed(next.Speed)
	}
	if next.Radius != prev.Radius && b.OnRadius != nil {
		b.OnRadius(next.Radius)
	}
	if next.DrawInfluence != prev.DrawInfluence && b.OnDrawInfluence != nil {
		b.OnDrawInfluence(next.DrawInfluence)
	}
	if grid && b.OnGrid != nil {
		b.OnGrid()
	}
}
