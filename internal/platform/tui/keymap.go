package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMap defines the key bindings for every scene.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Pause   key.Binding
	Restart key.Binding
	Vibes   key.Binding
	Erase   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "m"),
			key.WithHelp("esc/m", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Vibes: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "vibes"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "erase"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an intent for the given scene.
// During name entry printable keys become characters, so only enter,
// esc, backspace and ctrl+c keep their meaning there.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, scene app.SceneKind) core.Intent {
	if scene == app.SceneNameEntry {
		return km.mapText(msg)
	}

	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Do(core.IntentQuit)
	case key.Matches(msg, k.Up):
		return core.Move(core.DirUp)
	case key.Matches(msg, k.Down):
		return core.Move(core.DirDown)
	case key.Matches(msg, k.Left):
		return core.Move(core.DirLeft)
	case key.Matches(msg, k.Right):
		return core.Move(core.DirRight)
	case key.Matches(msg, k.Confirm):
		return core.Do(core.IntentConfirm)
	case key.Matches(msg, k.Cancel):
		return core.Do(core.IntentCancel)
	case key.Matches(msg, k.Pause):
		return core.Do(core.IntentPause)
	case key.Matches(msg, k.Restart):
		return core.Do(core.IntentRestart)
	case key.Matches(msg, k.Vibes):
		return core.Do(core.IntentToggleVibes)
	}
	return core.Intent{}
}

func (km *KeyMapper) mapText(msg tea.KeyMsg) core.Intent {
	switch msg.Type {
	case tea.KeyCtrlC:
		return core.Do(core.IntentQuit)
	case tea.KeyEnter:
		return core.Do(core.IntentConfirm)
	case tea.KeyEsc:
		return core.Do(core.IntentCancel)
	case tea.KeyBackspace:
		return core.Do(core.IntentErase)
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return core.Char(msg.Runes[0])
		}
	}
	return core.Intent{}
}

// sceneHelp is the help.KeyMap shown under each scene.
type sceneHelp struct {
	short []key.Binding
}

func (h sceneHelp) ShortHelp() []key.Binding  { return h.short }
func (h sceneHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.short} }

// helpFor returns the bindings worth showing for a scene.
func (k KeyMap) helpFor(scene app.SceneKind) sceneHelp {
	switch scene {
	case app.SceneMenu:
		return sceneHelp{[]key.Binding{k.Up, k.Down, k.Confirm, k.Vibes, k.Quit}}
	case app.ScenePlay:
		return sceneHelp{[]key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Restart, k.Cancel}}
	case app.SceneGameOver:
		return sceneHelp{[]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save score")),
			k.Restart, k.Cancel,
		}}
	case app.SceneNameEntry:
		return sceneHelp{[]key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			k.Erase,
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}}
	default:
		return sceneHelp{[]key.Binding{k.Cancel, k.Quit}}
	}
}
