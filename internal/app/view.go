package app

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
	"github.com/vovakirdan/tui-snake/internal/trophy"
)

// View is a read-only snapshot of everything needed to draw one frame.
// It shares no memory with the App.
type View struct {
	Scene SceneKind
	Vibes bool
	Now   float64

	Menu        MenuView
	Play        PlayView            // Play and GameOver
	Leaderboard []leaderboard.Entry // Leaderboard
	Trophies    []TrophyView        // Trophies
	Name        NameView            // NameEntry
	Popups      []PopupView
}

type MenuView struct {
	Items    []string
	Selected int
}

type PlayView struct {
	Width, Height int
	Wrap          bool
	Body          []core.Point // Head first
	Food          core.Point
	HasFood       bool
	Score         int
	Speed         float64
	Lifetime      float64
	Alive         bool
	Paused        bool
}

type TrophyView struct {
	ID          trophy.ID
	Name        string
	Description string
	Unlocked    bool
}

type NameView struct {
	Buffer string
	MaxLen int
	Result leaderboard.Entry
}

type PopupView struct {
	Text      string
	Remaining float64 // Seconds until it disappears
}

// View builds the render snapshot for the current state.
func (a App) View() View {
	v := View{
		Scene: a.scene.Kind(),
		Vibes: a.vibes,
		Now:   a.now,
	}

	for _, p := range a.popups {
		v.Popups = append(v.Popups, PopupView{
			Text:      p.Text,
			Remaining: a.cfg.UI.PopupTTL - p.age(a.now),
		})
	}

	switch s := a.scene.(type) {
	case MenuScene:
		v.Menu.Selected = s.Selection
		for _, item := range MenuItems {
			v.Menu.Items = append(v.Menu.Items, item.String())
		}
	case PlayScene:
		food, ok := s.Sim.Food()
		settings := s.Sim.Settings()
		v.Play = PlayView{
			Width:    settings.Width,
			Height:   settings.Height,
			Wrap:     settings.Wrap,
			Body:     s.Sim.Body(),
			Food:     food,
			HasFood:  ok,
			Score:    s.Sim.Score(),
			Speed:    s.Sim.Speed(),
			Lifetime: s.Sim.Lifetime(),
			Alive:    s.Sim.Alive(),
			Paused:   s.Sim.Paused(),
		}
	case LeaderboardScene:
		v.Leaderboard = a.ranking.List()
	case TrophiesScene:
		for _, d := range a.defs {
			v.Trophies = append(v.Trophies, TrophyView{
				ID:          d.ID,
				Name:        d.Name,
				Description: d.Description,
				Unlocked:    a.trophies.Unlocked(d.ID),
			})
		}
	case NameEntryScene:
		v.Name = NameView{
			Buffer: string(s.Buffer),
			MaxLen: a.cfg.Leaderboard.NameMaxLen,
			Result: s.Result,
		}
	}
	return v
}
