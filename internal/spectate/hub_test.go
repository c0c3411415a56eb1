package spectate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/tomz197/spacepong/internal/logging"
	"github.com/tomz197/spacepong/internal/loop"
)

var _ loop.Frontend[loop.Frame] = (*Hub[loop.Frame])(nil)

type snapshot struct {
	Tick  int    `json:"tick"`
	Label string `json:"label"`
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, err := websocket.Dial(url, "", srv.URL)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func receive(t *testing.T, ws *websocket.Conn) snapshot {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var s snapshot
	if err := websocket.JSON.Receive(ws, &s); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	return s
}

func TestViewerReceivesFrames(t *testing.T) {
	h := NewHub[snapshot](logging.Discard())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	h.Publish(snapshot{Tick: 1, Label: "first"})
	ws := dial(t, srv)

	if s := receive(t, ws); s.Tick != 1 || s.Label != "first" {
		t.Errorf("first frame = %+v", s)
	}
	if h.Viewers() != 1 {
		t.Errorf("Viewers() = %d", h.Viewers())
	}

	if err := h.Present(snapshot{Tick: 2}); err != nil {
		t.Fatal(err)
	}
	if s := receive(t, ws); s.Tick != 2 {
		t.Errorf("second frame = %+v", s)
	}
}

func TestViewerLeaves(t *testing.T) {
	h := NewHub[snapshot](logging.Discard())
	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	h.Publish(snapshot{Tick: 1})
	ws := dial(t, srv)
	receive(t, ws)
	ws.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("closed viewer still registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSlowViewerDoesNotBlock(t *testing.T) {
	h := NewHub[snapshot](logging.Discard())
	v := h.add()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			h.Publish(snapshot{Tick: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a viewer that never reads")
	}
	if len(v.notify) != 1 {
		t.Errorf("pending notices = %d, want 1", len(v.notify))
	}
	if f, ok := h.Latest(); !ok || f.Tick != 999 {
		t.Errorf("Latest() = %+v, %v", f, ok)
	}
}

func TestHeadlessFrontend(t *testing.T) {
	h := NewHub[snapshot](nil)
	if _, ok := h.Latest(); ok {
		t.Error("Latest() before any publish")
	}
	in, err := h.Poll()
	if err != nil || len(in.Pressed) != 0 || in.Held != 0 {
		t.Errorf("Poll() = %+v, %v", in, err)
	}
}
