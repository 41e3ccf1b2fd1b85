package detect

import (
	"sync"
	"time"
)

// Latest holds the most recent frame. Writers overwrite; nothing is queued.
type Latest struct {
	mu      sync.Mutex
	frame   Frame
	at      time.Time
	fresh   bool
	dropped uint64
}

// Store overwrites the held frame.
func (l *Latest) Store(f Frame, at time.Time) {
	l.mu.Lock()
	if l.fresh {
		l.dropped++
	}
	l.frame = f
	l.at = at
	l.fresh = true
	l.mu.Unlock()
}

// Take returns the held frame if it has not been taken since the last Store.
func (l *Latest) Take() (Frame, time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fresh {
		return Frame{}, time.Time{}, false
	}
	l.fresh = false
	return l.frame, l.at, true
}

// Dropped returns how many frames were overwritten before being taken.
func (l *Latest) Dropped() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}
