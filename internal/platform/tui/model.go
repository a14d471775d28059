package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Model is the Bubble Tea model driving one App.
type Model struct {
	app    app.App
	player audio.Player
	logger *log.Logger

	keys   *KeyMapper
	help   help.Model
	table  table.Model
	screen *core.Screen
	frame  core.InputFrame
	keyq   []tea.KeyMsg // Raw keys since the last tick, decoded at tick time

	fps      int
	lastTick time.Time
	measured float64 // Smoothed frames per second
	width    int
	height   int
	quitting bool
}

// NewModel creates a Bubble Tea model around a. The player receives every
// cue the App emits; logger records scene changes and trophies.
func NewModel(a app.App, player audio.Player, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if player == nil {
		player = audio.Nop{}
	}
	fps := a.Config().UI.FPS
	w, h := BoardSize(a.Config().Grid.Width, a.Config().Grid.Height)
	return Model{
		app:    a,
		player: player,
		logger: logger,
		keys:   NewKeyMapper(),
		help:   help.New(),
		table:  newLeaderboardTable(a.Config().Leaderboard.Capacity),
		screen: core.NewScreen(w, h),
		fps:    fps,
		width:  w,
		height: h + 1,
	}
}

// App returns the current application state.
func (m Model) App() app.App {
	return m.app
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keyq = append(m.keyq, msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleTick feeds the queued keys and elapsed time to the App. Each key
// is decoded against the scene that is current once the keys before it
// have been applied, so Enter followed by a letter lands in name entry.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDt(m.lastTick, now)
	m.lastTick = now
	if dt > 0 {
		m.measured = m.measured*0.9 + (1/dt)*0.1
	}

	before := m.app.Scene().Kind()
	var fx app.Effects
	for _, k := range m.keyq {
		m.frame.Clear()
		m.frame.Push(m.keys.MapKey(k, m.app.Scene().Kind()))
		if m.frame.Len() == 0 {
			continue
		}
		var step app.Effects
		m.app, step = app.Update(m.app, app.Input{Intents: m.frame.Intents})
		fx = mergeEffects(fx, step)
		if fx.Quit {
			break
		}
	}
	m.keyq = nil
	m.frame.Clear()

	if !fx.Quit {
		var step app.Effects
		m.app, step = app.Update(m.app, app.Input{Dt: dt})
		fx = mergeEffects(fx, step)
	}

	for _, c := range fx.Cues {
		m.player.Play(c)
	}
	for _, id := range fx.Unlocked {
		m.logger.Info("trophy unlocked", "id", id)
	}
	if after := m.app.Scene().Kind(); after != before {
		m.logger.Debug("scene changed", "from", before, "to", after)
	}

	if fx.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.fps)
}

func mergeEffects(a, b app.Effects) app.Effects {
	a.Cues = append(a.Cues, b.Cues...)
	a.Unlocked = append(a.Unlocked, b.Unlocked...)
	a.Quit = a.Quit || b.Quit
	return a
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.app.View()
	p := paletteFor(v.Vibes)
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.keys.Keys().helpFor(v.Scene)))

	if v.Scene == app.SceneLeaderboard {
		return renderLeaderboard(m.table, v.Leaderboard, m.width, m.height, p, footer)
	}

	if v.Scene == app.ScenePlay || v.Scene == app.SceneGameOver {
		bw, bh := BoardSize(v.Play.Width, v.Play.Height)
		if m.screen.Width() < bw || m.screen.Height() < bh {
			return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d\n", bw, bh+1, m.width, m.height) + footer
		}
	}

	drawScene(m.screen, v, m.measured)
	return RenderScreen(m.screen, p) + "\n" + footer
}

// Run starts the Bubble Tea program with the given App.
func Run(a app.App, player audio.Player, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(a, player, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
