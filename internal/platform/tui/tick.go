// Package tui provides the Bubble Tea shell for the snake game: key
// decoding, the frame loop, rendering and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TickMsg is sent once per frame.
type TickMsg time.Time

// maxFrameDt caps the time fed to the core after a stall.
const maxFrameDt = 0.25

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(max(fps, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDt returns the seconds between two ticks using the monotonic
// clock, clamped to [0, maxFrameDt]. The first frame has dt 0.
func frameDt(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	return core.ClampF(now.Sub(prev).Seconds(), 0, maxFrameDt)
}
