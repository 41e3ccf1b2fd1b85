package detect

// Tracker turns per-frame gesture labels into one-shot triggers.
type Tracker struct {
	trigger  Gesture
	minScore float64
	previous Gesture
}

// NewTracker creates a tracker that fires on trigger when the score exceeds minScore.
func NewTracker(trigger Gesture, minScore float64) *Tracker {
	return &Tracker{trigger: trigger, minScore: minScore}
}

// Observe records this frame's gesture and reports whether it fires the trigger.
// It fires only when the gesture changed since the previous frame, so holding the
// gesture fires once. The previous label is updated regardless of score.
func (t *Tracker) Observe(g Gesture, score float64) bool {
	previous := t.previous
	t.previous = g
	if g == GestureNone || g != t.trigger {
		return false
	}
	return score > t.minScore && g != previous
}
