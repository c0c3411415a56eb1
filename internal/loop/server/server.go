// Package server keeps track of the game sessions of a multi-session host
// such as the SSH server. Every session runs its own match; the lobby gives
// them a shared high-score board and a way to be told about shutdown.
package server

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tomz197/spacepong/internal/highscore"
)

// EventType identifies the type of session event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the lobby to a session.
type Event struct {
	Type EventType
}

// Session is one connected player.
type Session struct {
	ID     int
	User   string
	Joined time.Time
	Events chan Event // Buffered; the lobby never blocks on it
}

// Lobby registers sessions. It is safe for concurrent use.
type Lobby struct {
	mu       sync.RWMutex
	sessions map[int]*Session
	nextID   int
	board    *highscore.Board
	log      *logrus.Entry
}

// NewLobby creates an empty lobby whose sessions record to board.
func NewLobby(board *highscore.Board, log *logrus.Entry) *Lobby {
	if board == nil {
		board = highscore.NewBoard(highscore.DefaultLimit)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Lobby{
		sessions: make(map[int]*Session),
		nextID:   1,
		board:    board,
		log:      log,
	}
}

// Board returns the shared high-score board.
func (l *Lobby) Board() *highscore.Board {
	return l.board
}

// Join registers a new session for user.
func (l *Lobby) Join(user string) *Session {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := &Session{
		ID:     l.nextID,
		User:   user,
		Joined: time.Now(),
		Events: make(chan Event, 4),
	}
	l.nextID++
	l.sessions[s.ID] = s

	l.log.WithFields(logrus.Fields{
		"session": s.ID,
		"user":    user,
		"active":  len(l.sessions),
	}).Info("session joined")
	return s
}

// Leave unregisters a session. Unknown IDs are ignored.
func (l *Lobby) Leave(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sessions[id]
	if !ok {
		return
	}
	delete(l.sessions, id)

	l.log.WithFields(logrus.Fields{
		"session":  id,
		"user":     s.User,
		"duration": time.Since(s.Joined).Round(time.Second).String(),
		"active":   len(l.sessions),
	}).Info("session left")
}

// Count returns the number of connected sessions.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Shutdown notifies every session that the server is going down and waits
// for them to leave, up to timeout.
func (l *Lobby) Shutdown(timeout time.Duration) {
	l.mu.RLock()
	for _, s := range l.sessions {
		select {
		case s.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	l.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Count() == 0 {
			return
		}
		select {
		case <-deadline:
			l.log.WithField("remaining", l.Count()).Warn("shutdown timed out")
			return
		case <-ticker.C:
		}
	}
}
