// Package snake implements the fixed-timestep snake simulation: movement,
// turn queuing, growth, collision detection and speed scaling.
//
// A Simulation is owned by exactly one caller and is not safe for
// concurrent use. Death is terminal; create a new Simulation to play again.
package snake

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Settings holds the static tuning a Simulation is created with.
type Settings struct {
	Width, Height  int
	StartLength    int
	StartSpeed     float64 // Cells per second
	SpeedIncrement float64
	SpeedCeiling   float64
	TurnQueueCap   int
	Wrap           bool // false = wall mode
}

// SettingsFrom extracts simulation settings from the application config.
func SettingsFrom(cfg config.Config) Settings {
	return Settings{
		Width:          cfg.Grid.Width,
		Height:         cfg.Grid.Height,
		StartLength:    cfg.Snake.StartLength,
		StartSpeed:     cfg.Snake.StartSpeed,
		SpeedIncrement: cfg.Snake.SpeedIncrement,
		SpeedCeiling:   cfg.Snake.SpeedCeiling,
		TurnQueueCap:   cfg.Snake.TurnQueueCap,
		Wrap:           cfg.Wrap(),
	}
}

// Event is something that happened during a logic step.
type Event int

const (
	EventTurn  Event = iota // A queued turn changed the direction
	EventEat                // Food was consumed
	EventDeath              // The snake hit a wall or itself
)

func (e Event) String() string {
	switch e {
	case EventTurn:
		return "turn"
	case EventEat:
		return "eat"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Stats is the subset of simulation state trophies are judged on.
type Stats struct {
	Score    int
	Speed    float64
	Length   int
	Lifetime float64 // Seconds alive, excluding paused time
	Eaten    int
}

// Simulation is one run of the game from spawn to death.
type Simulation struct {
	settings Settings
	rng      *rand.Rand

	body     []core.Point // Head at index 0
	occupied map[core.Point]struct{}
	dir      core.Direction
	turns    []core.Direction // FIFO, at most settings.TurnQueueCap long

	food    core.Point
	hasFood bool // false only when the body fills the whole grid

	score    int
	speed    float64
	eaten    int
	alive    bool
	paused   bool
	accum    float64 // Unspent time carried to the next Advance
	lifetime float64
	steps    uint64
}

// New spawns a snake of StartLength cells with its head at the grid centre,
// body trailing to the left, facing right, and places the first food.
func New(s Settings, rng *rand.Rand) *Simulation {
	sim := &Simulation{
		settings: s,
		rng:      rng,
		occupied: make(map[core.Point]struct{}, s.StartLength*2),
		dir:      core.DirRight,
		speed:    s.StartSpeed,
		alive:    true,
	}

	sx, sy := s.Width/2, s.Height/2
	for i := 0; i < s.StartLength; i++ {
		p := core.Pt(sx-i, sy)
		sim.body = append(sim.body, p)
		sim.occupied[p] = struct{}{}
	}

	sim.spawnFood()
	return sim
}

// Queue appends a direction to the turn queue. The turn takes effect on a
// later logic step, never immediately. Returns false if the queue is full
// or the snake is dead.
func (s *Simulation) Queue(d core.Direction) bool {
	if !s.alive || len(s.turns) >= s.settings.TurnQueueCap {
		return false
	}
	s.turns = append(s.turns, d)
	return true
}

// TogglePause flips the pause flag. While paused Advance does nothing.
func (s *Simulation) TogglePause() {
	s.paused = !s.paused
}

// SetPaused sets the pause flag.
func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

// interval is the wall time one logic step takes at the current speed.
func (s *Simulation) interval() float64 {
	return 1.0 / max(1.0, s.speed)
}

// Advance adds dt seconds to the accumulator and performs as many logic
// steps as fit. onStep, if non-nil, is called after every step that leaves
// the snake alive, with the updated stats. Events from all steps are
// returned in order.
func (s *Simulation) Advance(dt float64, onStep func(Stats)) []Event {
	if !s.alive || s.paused || dt <= 0 {
		return nil
	}

	s.lifetime += dt
	s.accum += dt

	var events []Event
	for s.alive && s.accum >= s.interval() {
		s.accum -= s.interval()
		events = s.step(events)
		if s.alive && onStep != nil {
			onStep(s.Stats())
		}
	}
	return events
}

// step performs exactly one discrete move.
func (s *Simulation) step(events []Event) []Event {
	s.steps++

	// At most one queued turn is consumed per step, applied or not.
	if len(s.turns) > 0 {
		next := s.turns[0]
		s.turns = s.turns[1:]
		if !next.IsOpposite(s.dir) && next != s.dir {
			s.dir = next
			events = append(events, EventTurn)
		}
	}

	head := s.body[0].Add(s.dir)
	if s.settings.Wrap {
		head = head.Wrap(s.settings.Width, s.settings.Height)
	} else if !head.In(s.settings.Width, s.settings.Height) {
		s.alive = false
		return append(events, EventDeath)
	}

	// The tail still counts: it has not moved yet.
	if _, hit := s.occupied[head]; hit {
		s.alive = false
		return append(events, EventDeath)
	}

	s.body = slices.Insert(s.body, 0, head)
	s.occupied[head] = struct{}{}

	if s.hasFood && head == s.food {
		s.score++
		s.eaten++
		s.speed = min(s.settings.SpeedCeiling, s.speed+s.settings.SpeedIncrement)
		s.spawnFood()
		return append(events, EventEat)
	}

	tail := s.body[len(s.body)-1]
	s.body = s.body[:len(s.body)-1]
	delete(s.occupied, tail)
	return events
}

// spawnFood places food on a uniformly random free cell by rejection
// sampling. Terminates with probability 1 while at least one cell is free;
// expected draws are cells/(cells-len(body)), small for the grids in use.
func (s *Simulation) spawnFood() {
	cells := s.settings.Width * s.settings.Height
	if len(s.body) >= cells {
		s.hasFood = false
		return
	}

	for {
		p := core.Pt(s.rng.Intn(s.settings.Width), s.rng.Intn(s.settings.Height))
		if _, taken := s.occupied[p]; !taken {
			s.food = p
			s.hasFood = true
			return
		}
	}
}

// Body returns a copy of the snake cells, head first.
func (s *Simulation) Body() []core.Point {
	return slices.Clone(s.body)
}

// Head returns the head cell.
func (s *Simulation) Head() core.Point {
	return s.body[0]
}

// Len returns the body length.
func (s *Simulation) Len() int {
	return len(s.body)
}

// Occupies reports whether p is a body cell.
func (s *Simulation) Occupies(p core.Point) bool {
	_, ok := s.occupied[p]
	return ok
}

// Food returns the food cell. ok is false when the grid is full.
func (s *Simulation) Food() (p core.Point, ok bool) {
	return s.food, s.hasFood
}

// Direction returns the current heading.
func (s *Simulation) Direction() core.Direction {
	return s.dir
}

// PendingTurns returns the number of queued turns.
func (s *Simulation) PendingTurns() int {
	return len(s.turns)
}

// Score returns the number of points scored.
func (s *Simulation) Score() int {
	return s.score
}

// Speed returns the current speed in cells per second.
func (s *Simulation) Speed() float64 {
	return s.speed
}

// Lifetime returns the seconds spent alive and unpaused.
func (s *Simulation) Lifetime() float64 {
	return s.lifetime
}

// Alive reports whether the snake is still alive.
func (s *Simulation) Alive() bool {
	return s.alive
}

// Paused reports whether the simulation is paused.
func (s *Simulation) Paused() bool {
	return s.paused
}

// Stats returns the trophy-relevant counters.
func (s *Simulation) Stats() Stats {
	return Stats{
		Score:    s.score,
		Speed:    s.speed,
		Length:   len(s.body),
		Lifetime: s.lifetime,
		Eaten:    s.eaten,
	}
}

// Settings returns the settings the simulation was created with.
func (s *Simulation) Settings() Settings {
	return s.settings
}
