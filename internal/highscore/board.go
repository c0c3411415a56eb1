// Package highscore keeps the best finished matches of the running process.
// Results live in memory only.
package highscore

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the number of results shown on the high-score screen.
const DefaultLimit = 5

// Result is one finished match.
type Result struct {
	MatchID    uuid.UUID `json:"match_id"`
	Winner     string    `json:"winner"`
	Left       int       `json:"left"`
	Right      int       `json:"right"`
	Opponent   string    `json:"opponent"`
	Difficulty string    `json:"difficulty"`
	At         time.Time `json:"at"`
}

// Margin returns the absolute score difference.
func (r Result) Margin() int {
	if r.Left > r.Right {
		return r.Left - r.Right
	}
	return r.Right - r.Left
}

// Board holds the top results. It is safe for concurrent use; SSH sessions
// share one board.
type Board struct {
	mu      sync.Mutex
	limit   int
	results []Result
}

// NewBoard creates a board keeping at most limit results.
func NewBoard(limit int) *Board {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Board{limit: limit}
}

// Record adds a result, keeping the board ordered by margin and then by
// recency, and drops whatever falls off the end.
func (b *Board) Record(r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.results = append(b.results, r)
	slices.SortStableFunc(b.results, func(x, y Result) int {
		if d := y.Margin() - x.Margin(); d != 0 {
			return d
		}
		return y.At.Compare(x.At)
	})
	if len(b.results) > b.limit {
		b.results = b.results[:b.limit]
	}
}

// Top returns a copy of the ranked results.
func (b *Board) Top() []Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.results)
}

// Save writes the ranked results to w as a JSON array.
func (b *Board) Save(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(b.Top()); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}

// Load replaces the board with the JSON array read from r, re-ranking and
// trimming it to the board's limit.
func (b *Board) Load(r io.Reader) error {
	var results []Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return fmt.Errorf("load high scores: %w", err)
	}

	b.mu.Lock()
	b.results = nil
	b.mu.Unlock()
	for _, res := range results {
		b.Record(res)
	}
	return nil
}
