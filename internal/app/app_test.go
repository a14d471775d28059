package app

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/trophy"
)

func newTestApp(t *testing.T, cfg config.Config) (App, *leaderboard.Board) {
	t.Helper()
	board := leaderboard.New(cfg.Leaderboard.Capacity)
	return New(cfg, board, rand.New(rand.NewSource(42))), board
}

// press feeds intents in one zero-length frame.
func press(a App, intents ...core.Intent) (App, Effects) {
	return Update(a, Input{Intents: intents})
}

func tick(a App, dt float64) (App, Effects) {
	return Update(a, Input{Dt: dt})
}

func do(k core.IntentKind) core.Intent { return core.Do(k) }

// openMenuItem moves the cursor to item and confirms it.
func openMenuItem(a App, item MenuItem) (App, Effects) {
	for _i := 0; _i < int(item); _i++ {
		a, _ = press(a, core.Move(core.DirDown))
	}
	return press(a, do(core.IntentConfirm))
}

func startGame(t *testing.T, a App) (App, PlayScene) {
	t.Helper()
	a, _ = openMenuItem(a, ItemStart)
	play, ok := a.Scene().(PlayScene)
	if !ok {
		t.Fatalf("scene = %v after Start, expected play", a.Scene().Kind())
	}
	return a, play
}

// die ticks until the snake runs into the right wall.
func die(t *testing.T, a App) App {
	t.Helper()
	for _i := 0; _i < 200; _i++ {
		if a.Scene().Kind() == SceneGameOver {
			return a
		}
		a, _ = tick(a, 0.125)
	}
	t.Fatalf("snake still alive, scene = %v", a.Scene().Kind())
	return a
}

func TestInitialScene(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	if a.Scene().Kind() != SceneMenu {
		t.Errorf("initial scene = %v, expected menu", a.Scene().Kind())
	}
	if !a.Vibes() {
		t.Error("vibes should start from the config default (on)")
	}
}

func TestMenuSelectionWraps(t *testing.T) {
	a, _ := newTestApp(t, config.Default())

	a, fx := press(a, core.Move(core.DirUp))
	if got := a.Scene().(MenuScene).Selection; got != len(MenuItems)-1 {
		t.Errorf("selection after up = %d, expected %d", got, len(MenuItems)-1)
	}
	if !slices.Equal(fx.Cues, []audio.Cue{audio.CueUIMove}) {
		t.Errorf("cues = %v, expected [ui-move]", fx.Cues)
	}

	a, _ = press(a, core.Move(core.DirDown))
	if got := a.Scene().(MenuScene).Selection; got != 0 {
		t.Errorf("selection after wrap down = %d, expected 0", got)
	}

	a, fx = press(a, core.Move(core.DirLeft))
	if got := a.Scene().(MenuScene).Selection; got != 0 || len(fx.Cues) != 0 {
		t.Errorf("left should be ignored in the menu, selection = %d cues = %v", got, fx.Cues)
	}
}

func TestMenuToggleVibes(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, _ = press(a, do(core.IntentToggleVibes))
	if a.Vibes() {
		t.Error("vibes still on after toggle")
	}
	a, _ = press(a, do(core.IntentToggleVibes))
	if !a.Vibes() {
		t.Error("vibes off after second toggle")
	}
}

func TestMenuQuit(t *testing.T) {
	tests := []struct {
		name string
		run  func(App) (App, Effects)
	}{
		{"cancel", func(a App) (App, Effects) { return press(a, do(core.IntentCancel)) }},
		{"confirm quit item", func(a App) (App, Effects) { return openMenuItem(a, ItemQuit) }},
		{"quit intent", func(a App) (App, Effects) { return press(a, do(core.IntentQuit)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, config.Default())
			if _, fx := tt.run(a); !fx.Quit {
				t.Error("Quit = false, expected true")
			}
		})
	}
}

func TestMenuOpensSubScreens(t *testing.T) {
	tests := []struct {
		item MenuItem
		want SceneKind
	}{
		{ItemLeaderboard, SceneLeaderboard},
		{ItemTrophies, SceneTrophies},
		{ItemHowTo, SceneHowTo},
	}

	for _, tt := range tests {
		t.Run(tt.item.String(), func(t *testing.T) {
			for _, back := range []core.IntentKind{core.IntentCancel, core.IntentConfirm} {
				a, _ := newTestApp(t, config.Default())
				a, fx := openMenuItem(a, tt.item)
				if a.Scene().Kind() != tt.want {
					t.Fatalf("scene = %v, expected %v", a.Scene().Kind(), tt.want)
				}
				if !slices.Contains(fx.Cues, audio.CueUISelect) {
					t.Errorf("cues = %v, expected ui-select", fx.Cues)
				}

				a, _ = press(a, core.Move(core.DirUp))
				if a.Scene().Kind() != tt.want {
					t.Errorf("move changed scene to %v", a.Scene().Kind())
				}

				a, _ = press(a, do(back))
				if a.Scene().Kind() != SceneMenu {
					t.Errorf("%v: scene = %v, expected menu", back, a.Scene().Kind())
				}
			}
		})
	}
}

func TestStartCreatesSimulation(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, play := startGame(t, a)

	if play.Sim.Score() != 0 || play.Sim.Len() != 4 || play.Sim.Paused() {
		t.Errorf("fresh simulation expected, got %s", play.Sim.DebugState())
	}
	if a.View().Play.Width != 32 || a.View().Play.Height != 24 {
		t.Errorf("play view size = %dx%d, expected 32x24", a.View().Play.Width, a.View().Play.Height)
	}
}

func TestPlayMoveQueuesTurn(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, play := startGame(t, a)

	a, _ = press(a, core.Move(core.DirUp))
	if play.Sim.PendingTurns() != 1 {
		t.Errorf("PendingTurns() = %d, expected 1", play.Sim.PendingTurns())
	}
	if play.Sim.Direction() != core.DirRight {
		t.Errorf("Direction() = %v, queued turn applied immediately", play.Sim.Direction())
	}

	_, fx := tick(a, 0.125)
	if play.Sim.Direction() != core.DirUp {
		t.Errorf("Direction() = %v after one step, expected up", play.Sim.Direction())
	}
	if !slices.Contains(fx.Cues, audio.CueTurn) {
		t.Errorf("cues = %v, expected turn", fx.Cues)
	}
}

func TestStartAndTurnInOneFrame(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, _ = press(a, do(core.IntentConfirm), core.Move(core.DirDown))

	play, ok := a.Scene().(PlayScene)
	if !ok {
		t.Fatalf("scene = %v, expected play", a.Scene().Kind())
	}
	if play.Sim.PendingTurns() != 1 {
		t.Errorf("turn in the same frame as Start was not routed to play, pending = %d", play.Sim.PendingTurns())
	}
}

func TestPlayPause(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, play := startGame(t, a)
	head := play.Sim.Head()

	a, _ = press(a, do(core.IntentPause))
	a, _ = tick(a, 1.0)
	if play.Sim.Head() != head || play.Sim.Lifetime() != 0 {
		t.Error("paused simulation advanced")
	}
	if !a.View().Play.Paused {
		t.Error("view does not report paused")
	}

	a, _ = press(a, do(core.IntentPause))
	tick(a, 0.125)
	if play.Sim.Head() == head {
		t.Error("unpaused simulation did not advance")
	}
}

func TestPlayRestartPreservesPause(t *testing.T) {
	for _, paused := range []bool{false, true} {
		a, _ := newTestApp(t, config.Default())
		a, play := startGame(t, a)
		if paused {
			a, _ = press(a, do(core.IntentPause))
		}
		a, _ = tick(a, 0.5)

		a, _ = press(a, do(core.IntentRestart))
		fresh := a.Scene().(PlayScene)
		if fresh.Sim == play.Sim {
			t.Fatal("restart kept the old simulation")
		}
		if fresh.Sim.Paused() != paused {
			t.Errorf("paused = %v after restart, expected %v", fresh.Sim.Paused(), paused)
		}
		if fresh.Sim.Lifetime() != 0 || fresh.Sim.Score() != 0 {
			t.Errorf("restart did not reset: %s", fresh.Sim.DebugState())
		}
	}
}

func TestPlayCancelDiscards(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, _ = startGame(t, a)

	a, fx := press(a, do(core.IntentCancel))
	if a.Scene().Kind() != SceneMenu {
		t.Errorf("scene = %v, expected menu", a.Scene().Kind())
	}
	if !slices.Equal(fx.Cues, []audio.Cue{audio.CueUISelect}) {
		t.Errorf("cues = %v, expected [ui-select]", fx.Cues)
	}
	if sel := a.Scene().(MenuScene).Selection; sel != 0 {
		t.Errorf("menu selection = %d, expected 0", sel)
	}
}

func TestPlayToggleVibes(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, _ = startGame(t, a)
	a, _ = press(a, do(core.IntentToggleVibes))
	if a.Vibes() {
		t.Error("toggle-vibes ignored during play")
	}
}

func TestDeathBecomesGameOver(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, play := startGame(t, a)

	var sawDeath bool
	for _i := 0; _i < 200; _i++ {
		var fx Effects
		a, fx = tick(a, 0.125)
		if slices.Contains(fx.Cues, audio.CueDeath) {
			sawDeath = true
			break
		}
	}
	if !sawDeath {
		t.Fatal("no death cue")
	}
	if a.Scene().Kind() != SceneGameOver {
		t.Errorf("scene = %v, expected gameover", a.Scene().Kind())
	}
	if _, ok := a.Scene().(PlayScene); !ok {
		t.Error("game over should still be the play variant")
	}

	// Pause and moves do nothing once dead.
	a, _ = press(a, do(core.IntentPause), core.Move(core.DirUp))
	if play.Sim.Paused() || play.Sim.PendingTurns() != 0 {
		t.Error("dead simulation accepted pause or turns")
	}
	lifetime := play.Sim.Lifetime()
	tick(a, 1.0)
	if play.Sim.Lifetime() != lifetime {
		t.Error("dead simulation kept accruing time")
	}
}

func TestGameOverTransitions(t *testing.T) {
	t.Run("restart", func(t *testing.T) {
		a, _ := newTestApp(t, config.Default())
		a, _ = startGame(t, a)
		a = die(t, a)

		a, _ = press(a, do(core.IntentRestart))
		play, ok := a.Scene().(PlayScene)
		if !ok || !play.Sim.Alive() || play.Sim.Paused() {
			t.Errorf("restart from game over: scene = %v", a.Scene().Kind())
		}
	})

	t.Run("cancel", func(t *testing.T) {
		a, _ := newTestApp(t, config.Default())
		a, _ = startGame(t, a)
		a = die(t, a)

		a, _ = press(a, do(core.IntentCancel))
		if a.Scene().Kind() != SceneMenu {
			t.Errorf("scene = %v, expected menu", a.Scene().Kind())
		}
	})

	t.Run("confirm", func(t *testing.T) {
		a, _ := newTestApp(t, config.Default())
		a, play := startGame(t, a)
		a = die(t, a)

		a, _ = press(a, do(core.IntentConfirm))
		entry, ok := a.Scene().(NameEntryScene)
		if !ok {
			t.Fatalf("scene = %v, expected nameentry", a.Scene().Kind())
		}
		if string(entry.Buffer) != "CAT" {
			t.Errorf("buffer = %q, expected the default name", string(entry.Buffer))
		}
		if entry.Result.Score != play.Sim.Score() || entry.Result.Time != play.Sim.Lifetime() || entry.Result.Speed != play.Sim.Speed() {
			t.Errorf("result = %+v, expected final sim stats", entry.Result)
		}
	})
}

func enterName(t *testing.T, a App) App {
	t.Helper()
	a, _ = startGame(t, a)
	a = die(t, a)
	a, _ = press(a, do(core.IntentConfirm))
	if a.Scene().Kind() != SceneNameEntry {
		t.Fatalf("scene = %v, expected nameentry", a.Scene().Kind())
	}
	return a
}

func TestNameEntryEditing(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a = enterName(t, a)

	buffer := func(a App) string { return string(a.Scene().(NameEntryScene).Buffer) }

	a, _ = press(a, do(core.IntentErase), do(core.IntentErase), do(core.IntentErase))
	if buffer(a) != "" {
		t.Fatalf("buffer = %q after erasing, expected empty", buffer(a))
	}
	a, fx := press(a, do(core.IntentErase))
	if len(fx.Cues) != 0 {
		t.Errorf("erase on empty buffer emitted %v", fx.Cues)
	}

	a, _ = press(a, core.Char('z'), core.Char('!'), core.Char('9'), core.Char(' '), core.Char('-'), core.Char('_'), core.Char('é'))
	if buffer(a) != "Z9-_" {
		t.Errorf("buffer = %q, expected %q", buffer(a), "Z9-_")
	}

	for _, r := range "ABCDEFGH" {
		a, _ = press(a, core.Char(r))
	}
	if buffer(a) != "Z9-_ABCD" {
		t.Errorf("buffer = %q, expected it capped at 8", buffer(a))
	}
}

func TestNameEntryConfirmSubmits(t *testing.T) {
	a, board := newTestApp(t, config.Default())
	a = enterName(t, a)
	want := a.Scene().(NameEntryScene).Result

	a, _ = press(a, do(core.IntentErase), do(core.IntentErase), do(core.IntentErase),
		core.Char('b'), core.Char('o'), core.Char('b'), do(core.IntentConfirm))

	if a.Scene().Kind() != SceneMenu {
		t.Errorf("scene = %v, expected menu", a.Scene().Kind())
	}
	list := board.List()
	if len(list) != 1 {
		t.Fatalf("board has %d entries, expected 1", len(list))
	}
	want.Name = "BOB"
	if list[0] != want {
		t.Errorf("entry = %+v, expected %+v", list[0], want)
	}

	// The next run starts from the last name used.
	a = enterName(t, a)
	if got := string(a.Scene().(NameEntryScene).Buffer); got != "BOB" {
		t.Errorf("buffer = %q, expected the last name BOB", got)
	}
}

func TestNameEntryEmptyFallsBack(t *testing.T) {
	a, board := newTestApp(t, config.Default())
	a = enterName(t, a)

	press(a, do(core.IntentErase), do(core.IntentErase), do(core.IntentErase), do(core.IntentConfirm))

	if list := board.List(); len(list) != 1 || list[0].Name != "CAT" {
		t.Errorf("board = %v, expected one CAT entry", list)
	}
}

func TestNameEntryCancel(t *testing.T) {
	a, board := newTestApp(t, config.Default())
	a = enterName(t, a)

	a, _ = press(a, do(core.IntentCancel))
	if a.Scene().Kind() != SceneMenu {
		t.Errorf("scene = %v, expected menu", a.Scene().Kind())
	}
	if board.Len() != 0 {
		t.Errorf("cancel submitted %v", board.List())
	}
}

func quickTrophyConfig() config.Config {
	cfg := config.Default()
	cfg.Trophies = []config.TrophyConfig{
		{ID: "QUICK", Name: "Quick", Description: "Survive one step", Metric: config.MetricSurvival, Threshold: 0.1},
	}
	return cfg
}

func TestTrophyUnlockPopup(t *testing.T) {
	a, _ := newTestApp(t, quickTrophyConfig())
	a, _ = startGame(t, a)

	a, fx := tick(a, 0.125)
	if !slices.Equal(fx.Unlocked, []trophy.ID{"QUICK"}) {
		t.Fatalf("Unlocked = %v, expected [QUICK]", fx.Unlocked)
	}
	if !slices.Contains(fx.Cues, audio.CueTrophy) {
		t.Errorf("cues = %v, expected trophy", fx.Cues)
	}

	v := a.View()
	if len(v.Popups) != 1 || v.Popups[0].Text != "TROPHY UNLOCKED: Quick" {
		t.Fatalf("popups = %+v", v.Popups)
	}
	if v.Popups[0].Remaining != 2.4 {
		t.Errorf("Remaining = %v, expected the full 2.4", v.Popups[0].Remaining)
	}

	// Never unlocks twice, even across restarts.
	a, _ = press(a, do(core.IntentRestart))
	a, fx = tick(a, 0.125)
	if len(fx.Unlocked) != 0 {
		t.Errorf("trophy unlocked again: %v", fx.Unlocked)
	}
	if !a.Trophies().Unlocked("QUICK") {
		t.Error("trophy revoked after restart")
	}
}

func TestPopupExpiry(t *testing.T) {
	a, _ := newTestApp(t, quickTrophyConfig())
	a, _ = startGame(t, a)
	a, _ = tick(a, 0.125)
	a, _ = press(a, do(core.IntentCancel))

	// Popups age on the app clock in every scene.
	a, _ = tick(a, 1.0)
	if n := len(a.View().Popups); n != 1 {
		t.Fatalf("popups = %d after 1s, expected 1", n)
	}
	if r := a.View().Popups[0].Remaining; math.Abs(r-1.4) > 1e-9 {
		t.Errorf("Remaining = %v, expected 1.4", r)
	}
	a, _ = tick(a, 1.5)
	if n := len(a.View().Popups); n != 0 {
		t.Errorf("popups = %d after 2.5s, expected 0", n)
	}
}

func TestQuitFromEveryScene(t *testing.T) {
	setups := map[string]func(*testing.T, App) App{
		"menu": func(_ *testing.T, a App) App { return a },
		"play": func(t *testing.T, a App) App { a, _ = startGame(t, a); return a },
		"gameover": func(t *testing.T, a App) App {
			a, _ = startGame(t, a)
			return die(t, a)
		},
		"leaderboard": func(_ *testing.T, a App) App { a, _ = openMenuItem(a, ItemLeaderboard); return a },
		"nameentry":   enterName,
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			a, _ := newTestApp(t, config.Default())
			a = setup(t, a)
			if _, fx := press(a, do(core.IntentQuit)); !fx.Quit {
				t.Error("Quit = false, expected true")
			}
		})
	}
}

func TestViewPerScene(t *testing.T) {
	a, board := newTestApp(t, config.Default())
	board.Submit(leaderboard.Entry{Name: "AAA", Score: 3, Speed: 8.6, Time: 12})

	v := a.View()
	if v.Scene != SceneMenu || len(v.Menu.Items) != 5 || v.Menu.Items[3] != "How To" {
		t.Errorf("menu view = %+v", v.Menu)
	}

	a, _ = openMenuItem(a, ItemLeaderboard)
	if v := a.View(); len(v.Leaderboard) != 1 || v.Leaderboard[0].Name != "AAA" {
		t.Errorf("leaderboard view = %+v", v.Leaderboard)
	}

	a, _ = press(a, do(core.IntentCancel))
	a, _ = openMenuItem(a, ItemTrophies)
	v = a.View()
	if len(v.Trophies) != 6 {
		t.Fatalf("trophy view has %d rows, expected 6", len(v.Trophies))
	}
	for _, tv := range v.Trophies {
		if tv.Unlocked {
			t.Errorf("%s unlocked before playing", tv.ID)
		}
	}
}

func TestViewIsDetached(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a, play := startGame(t, a)

	v := a.View()
	v.Play.Body[0] = core.Pt(-1, -1)
	if play.Sim.Head() == core.Pt(-1, -1) {
		t.Error("mutating the view changed the simulation")
	}
}
