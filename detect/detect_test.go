package detect

import (
	"errors"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseGesture(t *testing.T) {
	tests := []struct {
		label string
		want  Gesture
	}{
		{"Thumb_Up", GestureThumbUp},
		{"Thumb_Down", GestureThumbDown},
		{"Open_Palm", GestureOpenPalm},
		{"None", GestureNone},
		{"", GestureNone},
		{"thumb_up", GestureNone},
		{"Wave", GestureNone},
	}
	for _, tt := range tests {
		if got := ParseGesture(tt.label); got != tt.want {
			t.Errorf("ParseGesture(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestGestureStringRoundtrip(t *testing.T) {
	for g := GestureNone; g <= GestureILoveYou; g++ {
		if got := ParseGesture(g.String()); got != g {
			t.Errorf("ParseGesture(%q) = %v, want %v", g.String(), got, g)
		}
	}
	if Gesture(200).String() != "None" {
		t.Errorf("out of range gesture should print None")
	}
}

func TestTracker_EdgeTriggered(t *testing.T) {
	tr := NewTracker(GestureThumbUp, 0.65)

	steps := []struct {
		g     Gesture
		score float64
		want  bool
	}{
		{GestureNone, 0, false},
		{GestureThumbUp, 0.9, true},  // new gesture
		{GestureThumbUp, 0.95, false}, // held
		{GestureOpenPalm, 0.9, false},
		{GestureThumbUp, 0.6, false}, // below threshold
		{GestureThumbUp, 0.8, false}, // label did not change from previous frame
		{GestureNone, 0, false},
		{GestureThumbUp, 0.65, false}, // threshold is exclusive
		{GestureClosedFist, 0.9, false},
		{GestureThumbUp, 0.66, true},
	}

	for i, s := range steps {
		if got := tr.Observe(s.g, s.score); got != s.want {
			t.Errorf("step %d (%v, %.2f): got %v, want %v", i, s.g, s.score, got, s.want)
		}
	}
}

func TestLatest_LastWriteWins(t *testing.T) {
	var l Latest

	if _, _, ok := l.Take(); ok {
		t.Fatal("empty slot should have nothing to take")
	}

	now := time.Unix(100, 0)
	l.Store(Frame{Score: 0.1}, now)
	l.Store(Frame{Score: 0.2}, now.Add(time.Millisecond))
	l.Store(Frame{Score: 0.3}, now.Add(2*time.Millisecond))

	f, at, ok := l.Take()
	if !ok {
		t.Fatal("expected a frame")
	}
	if f.Score != 0.3 {
		t.Errorf("expected newest frame, got score %f", f.Score)
	}
	if !at.Equal(now.Add(2 * time.Millisecond)) {
		t.Errorf("unexpected timestamp %v", at)
	}
	if l.Dropped() != 2 {
		t.Errorf("expected 2 dropped frames, got %d", l.Dropped())
	}

	if _, _, ok := l.Take(); ok {
		t.Error("frame should be taken only once")
	}
}

type scaleMapper struct{ w, h float64 }

func (m scaleMapper) MapLandmark(x, y, z float64) r3.Vec {
	return r3.Vec{X: x * m.w, Y: y * m.h, Z: z}
}

func TestFramePointer(t *testing.T) {
	m := scaleMapper{w: 100, h: 50}

	if _, ok := (Frame{}).Pointer(m); ok {
		t.Error("frame without landmark should have no pointer")
	}

	p, ok := Frame{Landmark: &Landmark{X: 0.5, Y: 0.5, Z: -0.1}}.Pointer(m)
	if !ok {
		t.Fatal("expected pointer")
	}
	if p != (r3.Vec{X: 50, Y: 25, Z: -0.1}) {
		t.Errorf("unexpected pointer %+v", p)
	}
}

func TestFeedHandle(t *testing.T) {
	var l Latest
	f := NewFeed(&l, 0)
	f.now = func() time.Time { return time.Unix(5, 0) }

	err := f.Handle([]byte(`{"type":"detection","landmark":{"x":0.25,"y":0.5,"z":-0.05},"gesture":"Thumb_Up","score":0.9}`))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	frame, at, ok := l.Take()
	if !ok {
		t.Fatal("expected stored frame")
	}
	if frame.Landmark == nil || frame.Landmark.X != 0.25 {
		t.Errorf("unexpected landmark %+v", frame.Landmark)
	}
	if frame.Gesture != GestureThumbUp || frame.Score != 0.9 || !frame.HasGesture {
		t.Errorf("unexpected gesture %v score %f", frame.Gesture, frame.Score)
	}
	if !at.Equal(time.Unix(5, 0)) {
		t.Errorf("unexpected timestamp %v", at)
	}

	if err := f.Handle([]byte(`{"type":"detection","landmark":null}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	frame, _, _ = l.Take()
	if frame.Landmark != nil {
		t.Error("expected nil landmark")
	}
	if frame.HasGesture {
		t.Error("message without a gesture label should report no gesture")
	}

	if err := f.Handle([]byte(`{"type":"detection","gesture":"None"}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	frame, _, _ = l.Take()
	if !frame.HasGesture || frame.Gesture != GestureNone {
		t.Errorf("explicit None label should be a reported gesture, got %+v", frame)
	}

	if err := f.Handle([]byte(`{"type":"control","key":"count","value":"12"}`)); err != nil {
		t.Fatalf("Handle control: %v", err)
	}
	select {
	case c := <-f.Controls():
		if c.Key != "count" || c.Value != "12" {
			t.Errorf("unexpected control %+v", c)
		}
	default:
		t.Error("expected queued control")
	}
}

func TestFeedHandle_Errors(t *testing.T) {
	var l Latest
	f := NewFeed(&l, 0)

	if err := f.Handle([]byte(`{not json`)); err == nil {
		t.Error("expected decode error")
	}
	err := f.Handle([]byte(`{"type":"teleport"}`))
	if !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("expected ErrUnknownMessage, got %v", err)
	}
	if _, _, ok := l.Take(); ok {
		t.Error("failed messages should not store frames")
	}
}

func TestFeedHandle_ControlQueueFull(t *testing.T) {
	var l Latest
	f := NewFeed(&l, 0)
	for i := 0; i < cap(f.controls)+5; i++ {
		if err := f.Handle([]byte(`{"type":"control","key":"grid"}`)); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	if len(f.controls) != cap(f.controls) {
		t.Errorf("expected full queue, got %d", len(f.controls))
	}
}
