package systems

// Gain presets for the pointer force.
const (
	GainGentle = 2.0  // Reference sketch
	GainStrong = 4.0  // Earlier revision
	GainBurst  = 10.0 // Multi-factor revision
)

// Settings holds the leaf field parameters.
// The field mutates its copy only through its own setters.
type Settings struct {
	Count           int
	Size            float64
	Speed           float64
	InfluenceRadius float64
	Gain            float64 // Velocity added at zero distance from the pointer
	Depth           float64 // z band is [-Depth, +Depth]
	HalfSizeEdges   bool    // Inset x/y bounds by half the leaf size
	InitialSpin     float64 // Spin magnitude at spawn
	SpinReset       float64 // Spin resamples in [-SpinReset, SpinReset] outside the radius
	MaxSpinBoost    float64 // Spin multiplier at zero distance
	DrawInfluence   bool
}

// DefaultSettings returns the reference sketch parameters.
func DefaultSettings() Settings {
	return Settings{
		Count:           100,
		Size:            80,
		Speed:           1,
		InfluenceRadius: 300,
		Gain:            GainGentle,
		Depth:           50,
		HalfSizeEdges:   true,
		InitialSpin:     0.05,
		SpinReset:       0.005,
		MaxSpinBoost:    10,
		DrawInfluence:   true,
	}
}
