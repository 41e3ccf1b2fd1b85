package detect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Message types accepted on the feed.
const (
	MessageDetection = "detection"
	MessageControl   = "control"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
)

// Message is the JSON wire format of one feed message.
type Message struct {
	Type     string    `json:"type"`
	Landmark *Landmark `json:"landmark,omitempty"`
	Gesture  string    `json:"gesture,omitempty"`
	Score    float64   `json:"score,omitempty"`
	Key      string    `json:"key,omitempty"`
	Value    string    `json:"value,omitempty"`
}

// Control is a raw settings mutation received from the feed.
// Values are validated by the consumer.
type Control struct {
	Key   string
	Value string
}

// ErrUnknownMessage is returned for messages with an unrecognised type.
var ErrUnknownMessage = errors.New("unknown message type")

// Feed is a websocket endpoint the hand tracker pushes frames to.
// Detection frames overwrite the Latest slot; control messages are queued for the
// simulation goroutine and dropped when the queue is full.
type Feed struct {
	latest    *Latest
	controls  chan Control
	upgrader  websocket.Upgrader
	readLimit int64
	now       func() time.Time
}

// NewFeed creates a feed writing into latest.
func NewFeed(latest *Latest, readLimit int64) *Feed {
	return &Feed{
		latest:   latest,
		controls: make(chan Control, 64),
		upgrader: websocket.Upgrader{
			// The tracker page is served from a local file or dev server.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		readLimit: readLimit,
		now:       time.Now,
	}
}

// Controls returns the queue of received control messages.
func (f *Feed) Controls() <-chan Control {
	return f.controls
}

// Handle decodes and dispatches one message.
func (f *Feed) Handle(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}

	switch msg.Type {
	case MessageDetection:
		f.latest.Store(Frame{
			Landmark:   msg.Landmark,
			Gesture:    ParseGesture(msg.Gesture),
			Score:      msg.Score,
			HasGesture: msg.Gesture != "",
		}, f.now())
	case MessageControl:
		select {
		case f.controls <- Control{Key: msg.Key, Value: msg.Value}:
		default:
			slog.Warn("control queue full, dropping", "key", msg.Key)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// ServeHTTP upgrades the connection and reads messages until it closes.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("feed upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("tracker connected", "remote", r.RemoteAddr)

	if f.readLimit > 0 {
		conn.SetReadLimit(f.readLimit)
	}
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("tracker read failed", "error", err)
			}
			break
		}
		// A read counts as liveness too.
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := f.Handle(data); err != nil {
			slog.Warn("skipping feed message", "error", err)
		}
	}

	slog.Info("tracker disconnected", "remote", r.RemoteAddr)
}

// pingLoop keeps the connection alive until done is closed or a ping fails.
func pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// ListenAndServe serves the feed at addr/path until ctx is cancelled.
func (f *Feed) ListenAndServe(ctx context.Context, addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, f)
	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	slog.Info("detection feed listening", "addr", addr, "path", path)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("detection feed: %w", err)
	}
}
