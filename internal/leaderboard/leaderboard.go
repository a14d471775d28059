// Package leaderboard keeps the bounded, ranked list of session results.
package leaderboard

import (
	"slices"
)

// Entry is one finished run.
type Entry struct {
	Name  string
	Score int
	Speed float64 // Cells per second at death
	Time  float64 // Seconds survived
}

// Less reports whether a ranks above b: higher score first, then the
// shorter survival time.
func Less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Time < b.Time
}

func compare(a, b Entry) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// Board is an in-memory leaderboard holding at most Capacity entries.
// Board is not safe for concurrent use.
type Board struct {
	capacity int
	entries  []Entry
}

// New creates an empty board. A non-positive capacity keeps nothing.
func New(capacity int) *Board {
	return &Board{capacity: max(capacity, 0)}
}

// Submit inserts e, re-ranks and drops whatever falls past capacity.
// Entries with equal score and time keep their submission order.
func (b *Board) Submit(e Entry) {
	b.entries = append(b.entries, e)
	slices.SortStableFunc(b.entries, compare)
	if len(b.entries) > b.capacity {
		b.entries = b.entries[:b.capacity]
	}
}

// List returns the ranked entries. The slice is a copy.
func (b *Board) List() []Entry {
	return slices.Clone(b.entries)
}

// Len returns the number of entries held.
func (b *Board) Len() int {
	return len(b.entries)
}

// Capacity returns the maximum number of entries.
func (b *Board) Capacity() int {
	return b.capacity
}
