// Package spectate streams game frames to read-only websocket viewers.
package spectate

import (
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"

	"github.com/tomz197/spacepong/internal/input"
)

// Hub keeps the latest published frame and pushes it to every connected
// viewer as JSON. A viewer that has not finished receiving the previous
// frame skips the ones published meanwhile.
//
// Hub is also a headless loop.Frontend: it never reports input and
// publishes every presented frame.
type Hub[F any] struct {
	latest atomic.Pointer[F]
	log    *logrus.Entry

	mu      sync.Mutex
	viewers map[*viewer]struct{}
	nextID  int
}

type viewer struct {
	id     int
	notify chan struct{} // Capacity one: a pending notice covers any newer frame
}

// NewHub creates a hub with no viewers.
func NewHub[F any](log *logrus.Entry) *Hub[F] {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Hub[F]{
		log:     log,
		viewers: make(map[*viewer]struct{}),
	}
}

// Publish replaces the latest frame and wakes the viewers.
func (h *Hub[F]) Publish(f F) {
	h.latest.Store(&f)

	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		select {
		case v.notify <- struct{}{}:
		default:
		}
	}
}

// Latest returns the most recent frame, if any was published.
func (h *Hub[F]) Latest() (F, bool) {
	p := h.latest.Load()
	if p == nil {
		var zero F
		return zero, false
	}
	return *p, true
}

// Viewers returns the number of connected viewers.
func (h *Hub[F]) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Poll reports no input.
func (h *Hub[F]) Poll() (input.Frame, error) {
	return input.Frame{}, nil
}

// Present publishes f.
func (h *Hub[F]) Present(f F) error {
	h.Publish(f)
	return nil
}

// Handler returns the websocket endpoint viewers connect to.
func (h *Hub[F]) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *Hub[F]) serve(ws *websocket.Conn) {
	defer ws.Close()

	v := h.add()
	defer h.remove(v)
	log := h.log.WithField("viewer", v.id)
	log.WithField("remote", ws.Request().RemoteAddr).Info("viewer connected")

	// Viewers only listen; a read returning means the connection is gone.
	gone := make(chan struct{})
	go func() {
		io.Copy(io.Discard, ws)
		close(gone)
	}()

	if f, ok := h.Latest(); ok {
		if err := websocket.JSON.Send(ws, f); err != nil {
			log.WithError(err).Debug("send failed")
			return
		}
	}
	for {
		select {
		case <-gone:
			log.Info("viewer disconnected")
			return
		case <-v.notify:
			f, _ := h.Latest()
			if err := websocket.JSON.Send(ws, f); err != nil {
				log.WithError(err).Debug("send failed")
				return
			}
		}
	}
}

func (h *Hub[F]) add() *viewer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	v := &viewer{id: h.nextID, notify: make(chan struct{}, 1)}
	h.viewers[v] = struct{}{}
	return v
}

func (h *Hub[F]) remove(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.viewers, v)
}
