package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// Board adapts a Store to the leaderboard used by one session. Storage
// errors are logged and swallowed: a failed write loses that run, the
// game carries on.
type Board struct {
	store     *Store
	capacity  int
	sessionID string
	logger    *log.Logger
}

// NewBoard returns a session view onto the shared store. logger may be nil.
func NewBoard(store *Store, capacity int, sessionID string, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Board{store: store, capacity: capacity, sessionID: sessionID, logger: logger}
}

// Submit stores the run and drops whatever falls past capacity.
func (b *Board) Submit(e leaderboard.Entry) {
	id, err := b.store.SaveResult(b.sessionID, e)
	if err != nil {
		b.logger.Warn("leaderboard submit failed", "session", b.sessionID, "err", err)
		return
	}
	if err := b.store.Trim(b.capacity); err != nil {
		b.logger.Warn("leaderboard trim failed", "err", err)
	}
	b.logger.Info("score submitted", "session", b.sessionID, "id", id, "name", e.Name, "score", e.Score)
}

// List returns the shared top entries.
func (b *Board) List() []leaderboard.Entry {
	if b.capacity <= 0 {
		return nil
	}
	results, err := b.store.Top(b.capacity)
	if err != nil {
		b.logger.Warn("leaderboard read failed", "err", err)
		return nil
	}
	entries := make([]leaderboard.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.Entry)
	}
	return entries
}
