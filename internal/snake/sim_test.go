package snake

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// step is one logic tick at the default start speed of 8 cells/s.
const step = 0.125

func testSettings() Settings {
	return SettingsFrom(config.Default())
}

func newTestSim(t *testing.T, seed int64) *Simulation {
	t.Helper()
	return New(testSettings(), rand.New(rand.NewSource(seed)))
}

// placeBody replaces the snake with the given cells (head first) and heading.
func placeBody(s *Simulation, dir core.Direction, cells ...core.Point) {
	s.body = append([]core.Point(nil), cells...)
	s.occupied = make(map[core.Point]struct{}, len(cells))
	for _, p := range cells {
		s.occupied[p] = struct{}{}
	}
	s.dir = dir
}

func TestInitialLayout(t *testing.T) {
	s := newTestSim(t, 1)

	want := []core.Point{core.Pt(16, 12), core.Pt(15, 12), core.Pt(14, 12), core.Pt(13, 12)}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("Body() = %v, expected %v", got, want)
	}
	if s.Direction() != core.DirRight {
		t.Errorf("Direction() = %v, expected right", s.Direction())
	}
	food, ok := s.Food()
	if !ok {
		t.Fatal("initial food missing")
	}
	if s.Occupies(food) {
		t.Errorf("initial food %v spawned on the snake", food)
	}
	if s.Speed() != 8 || s.Score() != 0 || !s.Alive() || s.Paused() {
		t.Errorf("unexpected initial state: %s", s.DebugState())
	}
}

func TestStepMovesRight(t *testing.T) {
	s := newTestSim(t, 2)
	s.food = core.Pt(0, 0)
	before := s.Body()

	s.Advance(step, nil)

	after := s.Body()
	if len(after) != len(before) {
		t.Fatalf("length changed from %d to %d without food", len(before), len(after))
	}
	for i := range before {
		want := core.Pt(before[i].X+1, before[i].Y)
		if after[i] != want {
			t.Errorf("segment %d = %v, expected %v", i, after[i], want)
		}
	}
}

func TestEatGrows(t *testing.T) {
	s := newTestSim(t, 3)
	s.food = core.Pt(17, 12)

	events := s.Advance(step, nil)

	if s.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", s.Score())
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, expected 5", s.Len())
	}
	if got, want := s.Speed(), 8.2; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Speed() = %v, expected %v", got, want)
	}
	food, ok := s.Food()
	if !ok || s.Occupies(food) {
		t.Errorf("new food %v (ok=%v) must be off the body", food, ok)
	}
	if !reflect.DeepEqual(events, []Event{EventEat}) {
		t.Errorf("events = %v, expected [eat]", events)
	}
}

func TestSpeedCeiling(t *testing.T) {
	s := newTestSim(t, 4)
	s.speed = 17.9

	s.food = s.Head().Add(core.DirRight)
	events := s.Advance(s.interval(), nil)

	if !reflect.DeepEqual(events, []Event{EventEat}) {
		t.Fatalf("events = %v, expected [eat]", events)
	}
	if s.Speed() != s.Settings().SpeedCeiling {
		t.Errorf("Speed() = %v, expected clamp at %v", s.Speed(), s.Settings().SpeedCeiling)
	}
}

func TestSpeedCeilingAfterManyMeals(t *testing.T) {
	s := newTestSim(t, 4)
	ceiling := s.Settings().SpeedCeiling

	for i := 0; i < 200 && s.Alive(); i++ {
		s.food = s.Head().Add(s.Direction())
		if !s.food.In(s.Settings().Width, s.Settings().Height) {
			placeBody(s, core.DirRight, core.Pt(1, 5))
			s.food = core.Pt(2, 5)
		}
		s.Advance(s.interval(), nil)
		if s.Speed() > ceiling {
			t.Fatalf("Speed() = %v after %d meals, exceeds ceiling %v", s.Speed(), i+1, ceiling)
		}
	}
	if s.Speed() != ceiling {
		t.Errorf("Speed() = %v, expected ceiling %v", s.Speed(), ceiling)
	}
}

func TestWallDeath(t *testing.T) {
	s := newTestSim(t, 5)
	placeBody(s, core.DirRight, core.Pt(31, 5), core.Pt(30, 5), core.Pt(29, 5), core.Pt(28, 5))
	s.food = core.Pt(0, 0)

	events := s.Advance(step, nil)

	if s.Alive() {
		t.Fatal("snake should die leaving the grid in wall mode")
	}
	if !reflect.DeepEqual(events, []Event{EventDeath}) {
		t.Errorf("events = %v, expected [death]", events)
	}

	frozen := s.Snapshot()
	for _i := 0; _i < 10; _i++ {
		s.Advance(step, nil)
	}
	if !reflect.DeepEqual(frozen, s.Snapshot()) {
		t.Error("dead simulation changed after further Advance calls")
	}
	if s.Queue(core.DirUp) {
		t.Error("Queue() should refuse turns once dead")
	}
}

func TestWrapMode(t *testing.T) {
	settings := testSettings()
	settings.Wrap = true
	s := New(settings, rand.New(rand.NewSource(6)))
	placeBody(s, core.DirRight, core.Pt(31, 5), core.Pt(30, 5), core.Pt(29, 5), core.Pt(28, 5))
	s.food = core.Pt(10, 10)

	s.Advance(step, nil)

	if !s.Alive() {
		t.Fatal("snake should survive the edge in wrap mode")
	}
	if s.Head() != core.Pt(0, 5) {
		t.Errorf("Head() = %v, expected (0, 5)", s.Head())
	}

	placeBody(s, core.DirUp, core.Pt(3, 0), core.Pt(3, 1), core.Pt(3, 2), core.Pt(3, 3))
	s.Advance(step, nil)
	if s.Head() != core.Pt(3, 23) {
		t.Errorf("Head() = %v, expected (3, 23)", s.Head())
	}
}

func TestNoInstantReversal(t *testing.T) {
	s := newTestSim(t, 7)
	s.food = core.Pt(0, 0)
	head := s.Head()

	if !s.Queue(core.DirLeft) {
		t.Fatal("Queue() refused a turn on an empty queue")
	}
	events := s.Advance(step, nil)

	if s.Direction() != core.DirRight {
		t.Errorf("Direction() = %v, reversal should be discarded", s.Direction())
	}
	if s.Head() != head.Add(core.DirRight) {
		t.Errorf("Head() = %v, expected the snake to keep moving right", s.Head())
	}
	if s.PendingTurns() != 0 {
		t.Errorf("PendingTurns() = %d, discarded turn should still be consumed", s.PendingTurns())
	}
	if len(events) != 0 {
		t.Errorf("events = %v, expected none", events)
	}
}

func TestTurnQueueOnePerStep(t *testing.T) {
	s := newTestSim(t, 8)
	s.food = core.Pt(0, 0)

	s.Queue(core.DirUp)
	s.Queue(core.DirLeft)

	// Queuing has no immediate effect.
	if s.Direction() != core.DirRight {
		t.Fatalf("Direction() = %v before any step, expected right", s.Direction())
	}

	s.Advance(step, nil)
	if s.Direction() != core.DirUp {
		t.Errorf("after step 1 Direction() = %v, expected up", s.Direction())
	}
	if s.PendingTurns() != 1 {
		t.Errorf("after step 1 PendingTurns() = %d, expected 1", s.PendingTurns())
	}

	s.Advance(step, nil)
	if s.Direction() != core.DirLeft {
		t.Errorf("after step 2 Direction() = %v, expected left", s.Direction())
	}
}

func TestTurnQueueHonorsRapidInput(t *testing.T) {
	s := newTestSim(t, 9)
	s.food = core.Pt(0, 0)

	// Up then Right within one frame: a one-slot buffer would lose Up.
	s.Queue(core.DirUp)
	s.Queue(core.DirRight)
	start := s.Head()

	s.Advance(2*step, nil)

	want := start.Add(core.DirUp).Add(core.DirRight)
	if s.Head() != want {
		t.Errorf("Head() = %v, expected %v", s.Head(), want)
	}
}

func TestTurnQueueCap(t *testing.T) {
	s := newTestSim(t, 10)
	limit := testSettings().TurnQueueCap

	for i := 0; i < limit; i++ {
		if !s.Queue(core.DirUp) {
			t.Fatalf("Queue() refused turn %d below the cap", i)
		}
	}
	if s.Queue(core.DirDown) {
		t.Error("Queue() accepted a turn beyond the cap")
	}
	if s.PendingTurns() != limit {
		t.Errorf("PendingTurns() = %d, expected %d", s.PendingTurns(), limit)
	}
}

func TestSelfCollision(t *testing.T) {
	s := newTestSim(t, 11)
	placeBody(s, core.DirRight,
		core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5), core.Pt(2, 5), core.Pt(1, 5))
	s.food = core.Pt(20, 20)

	s.Queue(core.DirDown)
	s.Queue(core.DirLeft)
	s.Queue(core.DirUp)
	events := s.Advance(3*step, nil)

	if s.Alive() {
		t.Fatal("snake should die running into its own body")
	}
	if events[len(events)-1] != EventDeath {
		t.Errorf("last event = %v, expected death", events[len(events)-1])
	}
}

func TestTailCountsForCollision(t *testing.T) {
	s := newTestSim(t, 12)
	// 2x2 loop: moving right from (5,5) lands on the tail at (6,5).
	placeBody(s, core.DirUp, core.Pt(5, 5), core.Pt(5, 6), core.Pt(6, 6), core.Pt(6, 5))
	s.food = core.Pt(20, 20)

	s.Queue(core.DirRight)
	s.Advance(step, nil)

	if s.Alive() {
		t.Error("moving into the current tail cell should be fatal")
	}
}

func TestPausedDoesNotAdvance(t *testing.T) {
	s := newTestSim(t, 13)
	before := s.Snapshot()

	s.TogglePause()
	s.Advance(1.0, nil)

	after := s.Snapshot()
	after.Paused = false
	if !reflect.DeepEqual(before, after) {
		t.Error("paused simulation changed state")
	}

	s.TogglePause()
	s.food = core.Pt(0, 0)
	s.Advance(step, nil)
	if s.Snapshot().Steps != 1 {
		t.Errorf("Steps = %d after unpausing, expected 1", s.Snapshot().Steps)
	}
}

func TestFrameRateIndependence(t *testing.T) {
	chunks := []struct {
		name string
		dt   float64
		n    int
	}{
		{"1/16 s frames", 1.0 / 16, 16},
		{"quarter seconds", 0.25, 4},
		{"one big frame", 1.0, 1},
	}

	var reference *Snapshot
	for _, c := range chunks {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSim(t, 14)
			s.food = core.Pt(0, 0)
			for _i := 0; _i < c.n; _i++ {
				s.Advance(c.dt, nil)
			}
			snap := s.Snapshot()
			if snap.Steps != 8 {
				t.Errorf("Steps = %d after 1s at speed 8, expected 8", snap.Steps)
			}
			if reference == nil {
				reference = &snap
				return
			}
			if !reflect.DeepEqual(snap.Body, reference.Body) {
				t.Errorf("Body = %v, expected %v", snap.Body, reference.Body)
			}
		})
	}
}

func TestOnStepCallback(t *testing.T) {
	s := newTestSim(t, 15)
	s.food = s.Head().Add(core.DirRight)

	var seen []Stats
	s.Advance(3*step+step/2, func(st Stats) { seen = append(seen, st) })

	if len(seen) != 3 {
		t.Fatalf("onStep called %d times, expected 3", len(seen))
	}
	if seen[0].Score != 1 || seen[0].Length != 5 {
		t.Errorf("first step stats = %+v, expected score 1 length 5", seen[0])
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := New(testSettings(), rand.New(rand.NewSource(12345)))
		policy := rand.New(rand.NewSource(99))
		for i := 0; i < 600 && s.Alive(); i++ {
			if i%7 == 0 {
				s.Queue(core.Direction(policy.Intn(4)))
			}
			s.Advance(1.0/60, nil)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	s := newTestSim(t, 999)

	for _i := 0; _i < 200; _i++ {
		s.spawnFood()
		if !s.hasFood {
			t.Fatal("food missing on a mostly empty grid")
		}
		if s.Occupies(s.food) {
			t.Errorf("Food spawned on snake at %v", s.food)
		}
		if !s.food.In(32, 24) {
			t.Errorf("Food spawned out of bounds at %v", s.food)
		}
	}
}

func TestFoodSpawnNearlyFullGrid(t *testing.T) {
	settings := testSettings()
	settings.Width, settings.Height, settings.StartLength = 4, 4, 2
	s := New(settings, rand.New(rand.NewSource(16)))

	var cells []core.Point
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			cells = append(cells, core.Pt(x, y))
		}
	}

	// One free cell: rejection sampling must find it.
	placeBody(s, core.DirRight, cells[:15]...)
	s.spawnFood()
	if !s.hasFood || s.food != cells[15] {
		t.Errorf("food = %v (ok=%v), expected the only free cell %v", s.food, s.hasFood, cells[15])
	}

	// No free cell: no food rather than an endless loop.
	placeBody(s, core.DirRight, cells...)
	s.spawnFood()
	if _, ok := s.Food(); ok {
		t.Error("Food() reported a cell on a full grid")
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		settings := testSettings()
		settings.Wrap = seed%2 == 0
		s := New(settings, rand.New(rand.NewSource(seed)))
		policy := rand.New(rand.NewSource(seed * 31))

		prevLen, prevSpeed := s.Len(), s.Speed()
		for frame := 0; frame < 3000 && s.Alive(); frame++ {
			if policy.Intn(5) == 0 {
				s.Queue(core.Direction(policy.Intn(4)))
			}
			events := s.Advance(1.0/60, nil)

			eats := 0
			for _, e := range events {
				if e == EventEat {
					eats++
				}
			}
			if s.Alive() && s.Len() != prevLen+eats {
				t.Fatalf("seed %d: length %d after %d eats, expected %d", seed, s.Len(), eats, prevLen+eats)
			}
			if s.Speed() < prevSpeed || s.Speed() > settings.SpeedCeiling {
				t.Fatalf("seed %d: speed %v out of order (prev %v, ceiling %v)", seed, s.Speed(), prevSpeed, settings.SpeedCeiling)
			}
			if s.PendingTurns() > settings.TurnQueueCap {
				t.Fatalf("seed %d: %d pending turns exceed cap", seed, s.PendingTurns())
			}

			seen := make(map[core.Point]bool, s.Len())
			for _, p := range s.Body() {
				if seen[p] {
					t.Fatalf("seed %d: body overlaps itself at %v", seed, p)
				}
				if !p.In(settings.Width, settings.Height) {
					t.Fatalf("seed %d: body cell %v outside the grid", seed, p)
				}
				seen[p] = true
			}
			if food, ok := s.Food(); ok && seen[food] {
				t.Fatalf("seed %d: food %v on the body", seed, food)
			}

			prevLen, prevSpeed = s.Len(), s.Speed()
		}
	}
}
