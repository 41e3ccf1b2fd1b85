package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed stage of a field tick.
type Phase uint8

// Phases in the order a tick runs them.
const (
	PhaseControls Phase = iota
	PhaseDetection
	PhaseStep
	PhaseForce
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	PhaseControls:  "controls",
	PhaseDetection: "detection",
	PhaseStep:      "step",
	PhaseForce:     "force",
	PhaseTelemetry: "telemetry",
}

func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// tickTiming is the measured cost of one tick.
type tickTiming struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector times ticks against a per-tick budget over a ring of recent ticks.
// It is driven from the simulation goroutine only.
type PerfCollector struct {
	budget time.Duration
	ring   []tickTiming
	next   int
	filled int

	// Overruns since the last Flush; the ring may be shorter than a stats window.
	overruns int

	current    tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	timing     bool

	now func() time.Time
}

// NewPerfCollector keeps the last window ticks. budget is the wall time one tick
// may take at the target rate; zero disables overrun counting.
func NewPerfCollector(window int, budget time.Duration) *PerfCollector {
	if window < 1 {
		window = 30
	}
	return &PerfCollector{
		budget: budget,
		ring:   make([]tickTiming, window),
		now:    time.Now,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.current = tickTiming{}
	p.timing = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.timing = true
}

// EndTick closes the running phase and stores the tick.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.timing = false
	p.current.total = now.Sub(p.tickStart)
	if p.budget > 0 && p.current.total > p.budget {
		p.overruns++
	}

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.timing && p.phase < phaseCount {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats summarises the ticks currently held by a PerfCollector.
type PerfStats struct {
	Ticks    int
	AvgTick  time.Duration
	P95Tick  time.Duration
	MaxTick  time.Duration
	Budget   time.Duration
	Overruns int // Ticks over Budget since the last Flush

	// Share of the summed tick time spent in each phase, 0..100.
	PhasePct [phaseCount]float64
}

// Stats summarises the ring.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Ticks: p.filled, Budget: p.budget, Overruns: p.overruns}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	var sum time.Duration
	var phases [phaseCount]time.Duration
	for i, t := range p.ring[:p.filled] {
		totals[i] = float64(t.total)
		sum += t.total
		s.MaxTick = max(s.MaxTick, t.total)
		for ph, d := range t.phases {
			phases[ph] += d
		}
	}

	s.AvgTick = sum / time.Duration(p.filled)
	sort.Float64s(totals)
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.LinInterp, totals, nil))

	if sum > 0 {
		for ph, d := range phases {
			s.PhasePct[ph] = float64(d) / float64(sum) * 100
		}
	}
	return s
}

// Flush returns Stats and restarts the overrun count for the next stats window.
func (p *PerfCollector) Flush() PerfStats {
	s := p.Stats()
	p.overruns = 0
	return s
}

// Headroom is the share of the budget left over by the average tick.
// It is negative when ticks run over budget on average.
func (s PerfStats) Headroom() float64 {
	if s.Budget <= 0 {
		return 0
	}
	return 1 - float64(s.AvgTick)/float64(s.Budget)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("overruns", s.Overruns),
		slog.Float64("headroom", s.Headroom()),
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the summary.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	BudgetUS     int64   `csv:"budget_us"`
	Overruns     int     `csv:"overruns"`
	ControlsPct  float64 `csv:"controls_pct"`
	DetectionPct float64 `csv:"detection_pct"`
	StepPct      float64 `csv:"step_pct"`
	ForcePct     float64 `csv:"force_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for perf.csv.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		BudgetUS:     s.Budget.Microseconds(),
		Overruns:     s.Overruns,
		ControlsPct:  s.PhasePct[PhaseControls],
		DetectionPct: s.PhasePct[PhaseDetection],
		StepPct:      s.PhasePct[PhaseStep],
		ForcePct:     s.PhasePct[PhaseForce],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
