// Package trophy evaluates one-time achievements against simulation stats.
package trophy

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ID identifies a trophy, e.g. "FIRST_BITE".
type ID string

// Definition is a single threshold rule.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Metric      config.Metric
	Threshold   float64
}

// Definitions converts trophy configuration into rules, keeping order.
func Definitions(cfgs []config.TrophyConfig) []Definition {
	defs := make([]Definition, 0, len(cfgs))
	for _, c := range cfgs {
		defs = append(defs, Definition{
			ID:          ID(c.ID),
			Name:        c.Name,
			Description: c.Description,
			Metric:      c.Metric,
			Threshold:   c.Threshold,
		})
	}
	return defs
}

// Satisfied reports whether the stats meet the rule's threshold.
func (d Definition) Satisfied(st snake.Stats) bool {
	switch d.Metric {
	case config.MetricScore:
		return float64(st.Score) >= d.Threshold
	case config.MetricSpeed:
		return st.Speed >= d.Threshold
	case config.MetricLength:
		return float64(st.Length) >= d.Threshold
	case config.MetricSurvival:
		return st.Lifetime >= d.Threshold
	default:
		return false
	}
}

// Set records which trophies are unlocked. Flags only ever go from false
// to true. The zero value is ready to use.
type Set struct {
	unlocked map[ID]bool
}

// NewSet returns an empty set.
func NewSet() Set {
	return Set{unlocked: make(map[ID]bool)}
}

// Unlocked reports whether id has been unlocked.
func (s Set) Unlocked(id ID) bool {
	return s.unlocked[id]
}

// Unlock marks id unlocked and returns the updated set plus true if
// this call flipped it. The receiver is not modified.
func (s Set) Unlock(id ID) (Set, bool) {
	if s.unlocked[id] {
		return s, false
	}
	next := make(map[ID]bool, len(s.unlocked)+1)
	for k, v := range s.unlocked {
		next[k] = v
	}
	next[id] = true
	return Set{unlocked: next}, true
}

// Count returns how many trophies are unlocked.
func (s Set) Count() int {
	return len(s.unlocked)
}

// Evaluate returns the IDs of rules satisfied by st that are not yet in
// set, in definition order. It does not modify set.
func Evaluate(defs []Definition, set Set, st snake.Stats) []ID {
	var fresh []ID
	for _, d := range defs {
		if set.Unlocked(d.ID) || !d.Satisfied(st) {
			continue
		}
		fresh = append(fresh, d.ID)
	}
	return fresh
}

// Lookup returns the definition with the given id.
func Lookup(defs []Definition, id ID) (Definition, bool) {
	for _, d := range defs {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
