package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/leaderboard"
)

// newLeaderboardTable creates the table used by the leaderboard scene.
func newLeaderboardTable(height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Spd", Width: 6},
		{Title: "Time", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// leaderboardRows formats entries as table rows: rank, name, score,
// speed with one decimal and whole seconds.
func leaderboardRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%2d.", i+1),
			e.Name,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%.1f", e.Speed),
			fmt.Sprintf("%ds", int(e.Time)),
		}
	}
	return rows
}

// renderLeaderboard draws the leaderboard scene centered in w×h.
func renderLeaderboard(t table.Model, entries []leaderboard.Entry, w, h int, p Palette, footer string) string {
	var b strings.Builder
	b.WriteString(p[core.ColorHighlight].Render("LEADERBOARD (session)"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(p[core.ColorText].Render("No scores yet. Play a round!"))
	} else {
		t.SetRows(leaderboardRows(entries))
		t.SetHeight(min(len(entries)+1, max(h-8, 3)))
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
		b.WriteString(tableStyle.Render(t.View()))
	}

	body := lipgloss.Place(w, max(h-1, 0), lipgloss.Center, lipgloss.Center, b.String())
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
