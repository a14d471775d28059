package app

import (
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// SceneKind tags the active application mode.
type SceneKind int

const (
	SceneMenu SceneKind = iota
	ScenePlay
	SceneGameOver // Play with a dead snake
	SceneLeaderboard
	SceneTrophies
	SceneHowTo
	SceneNameEntry
)

func (k SceneKind) String() string {
	switch k {
	case SceneMenu:
		return "menu"
	case ScenePlay:
		return "play"
	case SceneGameOver:
		return "gameover"
	case SceneLeaderboard:
		return "leaderboard"
	case SceneTrophies:
		return "trophies"
	case SceneHowTo:
		return "howto"
	case SceneNameEntry:
		return "nameentry"
	default:
		return "unknown"
	}
}

// Scene is one of the variants below. Each carries only its own data;
// a transition builds a new variant.
type Scene interface {
	Kind() SceneKind
}

// MenuItem is an entry of the main menu.
type MenuItem int

const (
	ItemStart MenuItem = iota
	ItemLeaderboard
	ItemTrophies
	ItemHowTo
	ItemQuit
)

// MenuItems lists the main menu in display order.
var MenuItems = []MenuItem{ItemStart, ItemLeaderboard, ItemTrophies, ItemHowTo, ItemQuit}

func (m MenuItem) String() string {
	switch m {
	case ItemStart:
		return "Start"
	case ItemLeaderboard:
		return "Leaderboard"
	case ItemTrophies:
		return "Trophies"
	case ItemHowTo:
		return "How To"
	case ItemQuit:
		return "Quit"
	default:
		return "?"
	}
}

type MenuScene struct {
	Selection int // Index into MenuItems
}

func (MenuScene) Kind() SceneKind { return SceneMenu }

// PlayScene owns the running simulation. Once the snake dies it reports
// SceneGameOver; the data stays the same.
type PlayScene struct {
	Sim *snake.Simulation
}

func (p PlayScene) Kind() SceneKind {
	if !p.Sim.Alive() {
		return SceneGameOver
	}
	return ScenePlay
}

type LeaderboardScene struct{}

func (LeaderboardScene) Kind() SceneKind { return SceneLeaderboard }

type TrophiesScene struct{}

func (TrophiesScene) Kind() SceneKind { return SceneTrophies }

type HowToScene struct{}

func (HowToScene) Kind() SceneKind { return SceneHowTo }

// NameEntryScene holds the finished run and the name being typed.
type NameEntryScene struct {
	Result leaderboard.Entry // Name filled in on confirm
	Buffer []rune
}

func (NameEntryScene) Kind() SceneKind { return SceneNameEntry }
