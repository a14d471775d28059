// Package app is the scene state machine around the snake simulation.
//
// The whole application is a value: Update takes the current App and one
// frame of input and returns the next App plus the side effects the shell
// should perform. Nothing here blocks, logs or touches a device.
package app

import (
	"math/rand"
	"slices"
	"unicode"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/trophy"
)

// Ranking stores finished runs. *leaderboard.Board is the in-process
// implementation; the SSH server shares a storage-backed one.
type Ranking interface {
	Submit(e leaderboard.Entry)
	List() []leaderboard.Entry
}

// Input is everything the core consumes in one frame.
type Input struct {
	Dt      float64 // Seconds since the previous frame, monotonic
	Intents []core.Intent
}

// Effects lists what the shell must do after an Update.
type Effects struct {
	Cues     []audio.Cue
	Unlocked []trophy.ID
	Quit     bool
}

func (e *Effects) cue(c audio.Cue) {
	e.Cues = append(e.Cues, c)
}

// App is the complete application state.
//
// App values share their Simulation and Ranking: after Update the
// argument must not be used again.
type App struct {
	cfg      config.Config
	settings snake.Settings
	defs     []trophy.Definition
	rng      *rand.Rand
	ranking  Ranking

	scene    Scene
	vibes    bool
	trophies trophy.Set
	popups   []Popup
	now      float64
	lastName string
}

// New returns an App showing the main menu. cfg must already be validated.
func New(cfg config.Config, ranking Ranking, rng *rand.Rand) App {
	return App{
		cfg:      cfg,
		settings: snake.SettingsFrom(cfg),
		defs:     trophy.Definitions(cfg.Trophies),
		rng:      rng,
		ranking:  ranking,
		scene:    MenuScene{},
		vibes:    cfg.UI.Vibes,
		trophies: trophy.NewSet(),
		lastName: cfg.Leaderboard.DefaultName,
	}
}

// Scene returns the active scene variant.
func (a App) Scene() Scene { return a.scene }

// Vibes reports the visual-style flag.
func (a App) Vibes() bool { return a.vibes }

// Now returns the app clock: the sum of every Dt seen.
func (a App) Now() float64 { return a.now }

// Trophies returns the unlocked set.
func (a App) Trophies() trophy.Set { return a.trophies }

// Definitions returns the trophy rules in display order.
func (a App) Definitions() []trophy.Definition { return a.defs }

// Config returns the configuration the App was built with.
func (a App) Config() config.Config { return a.cfg }

// Update advances the application by one frame: intents are routed to
// the active scene in arrival order, then a live simulation advances by
// in.Dt and trophies are checked after every step.
func Update(a App, in Input) (App, Effects) {
	var fx Effects
	a.now += max(in.Dt, 0)

	for _, intent := range in.Intents {
		if intent.Kind == core.IntentQuit {
			fx.Quit = true
			return a, fx
		}
		a.handle(intent, &fx)
		if fx.Quit {
			return a, fx
		}
	}

	if play, ok := a.scene.(PlayScene); ok && play.Sim.Alive() {
		a.advance(play.Sim, in.Dt, &fx)
	}

	a.popups = prunePopups(a.popups, a.now, a.cfg.UI.PopupTTL)
	return a, fx
}

func (a *App) handle(in core.Intent, fx *Effects) {
	switch s := a.scene.(type) {
	case MenuScene:
		a.handleMenu(s, in, fx)
	case PlayScene:
		if s.Sim.Alive() {
			a.handlePlay(s, in, fx)
		} else {
			a.handleGameOver(s, in, fx)
		}
	case LeaderboardScene, TrophiesScene, HowToScene:
		if in.Kind == core.IntentCancel || in.Kind == core.IntentConfirm {
			a.scene = MenuScene{}
			fx.cue(audio.CueUISelect)
		}
	case NameEntryScene:
		a.handleNameEntry(s, in, fx)
	}
}

func (a *App) handleMenu(s MenuScene, in core.Intent, fx *Effects) {
	switch in.Kind {
	case core.IntentMove:
		n := len(MenuItems)
		switch in.Dir {
		case core.DirUp:
			s.Selection = (s.Selection - 1 + n) % n
		case core.DirDown:
			s.Selection = (s.Selection + 1) % n
		default:
			return
		}
		a.scene = s
		fx.cue(audio.CueUIMove)
	case core.IntentToggleVibes:
		a.vibes = !a.vibes
		fx.cue(audio.CueUIMove)
	case core.IntentCancel:
		fx.Quit = true
	case core.IntentConfirm:
		fx.cue(audio.CueUISelect)
		switch MenuItems[s.Selection] {
		case ItemStart:
			a.scene = PlayScene{Sim: a.newSimulation()}
		case ItemLeaderboard:
			a.scene = LeaderboardScene{}
		case ItemTrophies:
			a.scene = TrophiesScene{}
		case ItemHowTo:
			a.scene = HowToScene{}
		case ItemQuit:
			fx.Quit = true
		}
	}
}

func (a *App) handlePlay(s PlayScene, in core.Intent, fx *Effects) {
	switch in.Kind {
	case core.IntentCancel:
		a.scene = MenuScene{}
		fx.cue(audio.CueUISelect)
	case core.IntentRestart:
		sim := a.newSimulation()
		sim.SetPaused(s.Sim.Paused())
		a.scene = PlayScene{Sim: sim}
	case core.IntentPause:
		s.Sim.TogglePause()
	case core.IntentToggleVibes:
		a.vibes = !a.vibes
	case core.IntentMove:
		s.Sim.Queue(in.Dir)
	}
}

func (a *App) handleGameOver(s PlayScene, in core.Intent, fx *Effects) {
	switch in.Kind {
	case core.IntentCancel:
		a.scene = MenuScene{}
		fx.cue(audio.CueUISelect)
	case core.IntentRestart:
		a.scene = PlayScene{Sim: a.newSimulation()}
		fx.cue(audio.CueUISelect)
	case core.IntentConfirm:
		a.scene = NameEntryScene{
			Result: leaderboard.Entry{
				Score: s.Sim.Score(),
				Speed: s.Sim.Speed(),
				Time:  s.Sim.Lifetime(),
			},
			Buffer: []rune(a.lastName),
		}
		fx.cue(audio.CueUISelect)
	case core.IntentToggleVibes:
		a.vibes = !a.vibes
	}
}

func (a *App) handleNameEntry(s NameEntryScene, in core.Intent, fx *Effects) {
	switch in.Kind {
	case core.IntentCancel:
		a.scene = MenuScene{}
		fx.cue(audio.CueUISelect)
	case core.IntentErase:
		if len(s.Buffer) == 0 {
			return
		}
		s.Buffer = slices.Clone(s.Buffer[:len(s.Buffer)-1])
		a.scene = s
		fx.cue(audio.CueUIMove)
	case core.IntentCharacter:
		r := unicode.ToUpper(in.Char)
		if !nameRune(r) || len(s.Buffer) >= a.cfg.Leaderboard.NameMaxLen {
			return
		}
		s.Buffer = append(slices.Clone(s.Buffer), r)
		a.scene = s
		fx.cue(audio.CueUIMove)
	case core.IntentConfirm:
		name := string(s.Buffer)
		if name == "" {
			name = a.cfg.Leaderboard.DefaultName
		}
		name = truncate(name, a.cfg.Leaderboard.NameMaxLen)
		a.lastName = name

		entry := s.Result
		entry.Name = name
		a.ranking.Submit(entry)

		a.scene = MenuScene{}
		fx.cue(audio.CueUISelect)
	}
}

// advance runs the simulation and turns its outcome into effects.
func (a *App) advance(sim *snake.Simulation, dt float64, fx *Effects) {
	events := sim.Advance(dt, func(st snake.Stats) {
		for _, id := range trophy.Evaluate(a.defs, a.trophies, st) {
			var flipped bool
			a.trophies, flipped = a.trophies.Unlock(id)
			if !flipped {
				continue
			}
			fx.Unlocked = append(fx.Unlocked, id)
			fx.cue(audio.CueTrophy)
			if d, ok := trophy.Lookup(a.defs, id); ok {
				a.popups = append(slices.Clip(a.popups), Popup{Text: "TROPHY UNLOCKED: " + d.Name, Born: a.now})
			}
		}
	})

	for _, e := range events {
		switch e {
		case snake.EventTurn:
			fx.cue(audio.CueTurn)
		case snake.EventEat:
			fx.cue(audio.CueEat)
		case snake.EventDeath:
			fx.cue(audio.CueDeath)
		}
	}
}

func (a *App) newSimulation() *snake.Simulation {
	return snake.New(a.settings, a.rng)
}

// nameRune reports whether r may appear in a leaderboard name.
func nameRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var _ Ranking = (*leaderboard.Board)(nil)
