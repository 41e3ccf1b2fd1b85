package detect

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestFeedServesWebsocket(t *testing.T) {
	var l Latest
	feed := NewFeed(&l, 1<<16)
	srv := httptest.NewServer(feed)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msgs := []string{
		`{"type":"detection","landmark":{"x":0.1,"y":0.2,"z":0},"gesture":"Open_Palm","score":0.7}`,
		`garbage`,
		`{"type":"detection","landmark":{"x":0.9,"y":0.8,"z":0},"gesture":"Thumb_Up","score":0.8}`,
	}
	for _, m := range msgs {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	// The server reads asynchronously; wait for the newest frame.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f, _, ok := l.Take(); ok && f.Gesture == GestureThumbUp {
			if f.Landmark.X != 0.9 {
				t.Errorf("unexpected landmark %+v", f.Landmark)
			}
			return
		} else if ok {
			// An older frame was taken before the newest arrived; keep polling.
			continue
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for detection frame")
}
