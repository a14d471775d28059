package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot captures the observable simulation state for rendering and
// determinism testing.
type Snapshot struct {
	Steps        uint64
	Body         []core.Point // Head first
	Food         core.Point
	HasFood      bool
	Dir          core.Direction
	PendingTurns int
	Score        int
	Eaten        int
	Speed        float64
	Lifetime     float64
	Alive        bool
	Paused       bool
}

// Snapshot returns a copy of the current state. The returned value shares
// no memory with the simulation.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Steps:        s.steps,
		Body:         s.Body(),
		Food:         s.food,
		HasFood:      s.hasFood,
		Dir:          s.dir,
		PendingTurns: len(s.turns),
		Score:        s.score,
		Eaten:        s.eaten,
		Speed:        s.speed,
		Lifetime:     s.lifetime,
		Alive:        s.alive,
		Paused:       s.paused,
	}
}

// DebugState returns a string representation of the simulation state.
func (s *Simulation) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Steps: %d, Score: %d, Speed: %.2f\n", s.steps, s.score, s.speed)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s, Queued: %d\n", len(s.body), s.dir, len(s.turns))
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", s.body[0].X, s.body[0].Y, s.food.X, s.food.Y)
	fmt.Fprintf(&b, "Alive: %v, Paused: %v, Lifetime: %.2fs\n", s.alive, s.paused, s.lifetime)
	return b.String()
}
