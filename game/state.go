package game

import "log/slog"

// State is the field's run state.
type State uint8

const (
	StateRunning State = iota
	StatePaused
)

func (s State) String() string {
	if s == StatePaused {
		return "paused"
	}
	return "running"
}

// State returns the current run state.
func (g *Game) State() State {
	return g.state
}

// FocusGained resumes ticking.
func (g *Game) FocusGained() {
	g.setState(StateRunning)
}

// FocusLost suspends ticking. Settings changes still apply while paused.
func (g *Game) FocusLost() {
	g.setState(StatePaused)
}

// TogglePause flips between running and paused.
func (g *Game) TogglePause() {
	if g.state == StatePaused {
		g.setState(StateRunning)
	} else {
		g.setState(StatePaused)
	}
}

func (g *Game) setState(s State) {
	if g.state == s {
		return
	}
	g.state = s
	slog.Info("state", "state", s.String(), "tick", g.tick)
}
