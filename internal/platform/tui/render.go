package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/app"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Palette maps core.Color to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

var normalPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorSnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorPopup:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// vibesPalette is the washed-out low-poly look.
var vibesPalette = Palette{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("121")).Bold(true),
	core.ColorSnakeBody: lipgloss.NewStyle().Foreground(lipgloss.Color("72")),
	core.ColorFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("189")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Bold(true),
	core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	core.ColorPopup:     lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("103")),
}

func paletteFor(vibes bool) Palette {
	if vibes {
		return vibesPalette
	}
	return normalPalette
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, yEnd := 0, s.Height(); y < yEnd; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Each grid cell is two terminal columns wide so the board looks square.
const cellW = 2

// BoardSize returns the screen area the playfield needs: the grid plus
// a border and one HUD line.
func BoardSize(gridW, gridH int) (w, h int) {
	return gridW*cellW + 2, gridH + 3
}

// drawScene paints everything except the leaderboard table.
func drawScene(s *core.Screen, v app.View, fps float64) {
	s.Clear()
	switch v.Scene {
	case app.SceneMenu:
		drawMenu(s, v)
	case app.ScenePlay, app.SceneGameOver:
		drawPlay(s, v, fps)
	case app.SceneTrophies:
		drawTrophies(s, v)
	case app.SceneHowTo:
		drawHowTo(s, v)
	case app.SceneNameEntry:
		drawNameEntry(s, v)
	}
	drawPopups(s, v.Popups)
}

func drawBackdrop(s *core.Screen, vibes bool) {
	if !vibes {
		return
	}
	for y, yEnd := 0, s.Height(); y < yEnd; y++ {
		for x, xEnd := 0, s.Width(); x < xEnd; x++ {
			if (x+y)%4 == 0 {
				s.SetColored(x, y, '·', core.ColorGrid)
			}
		}
	}
}

var title = []string{
	"╔═╗╔╗╔╔═╗╦╔═╔═╗",
	"╚═╗║║║╠═╣╠╩╗║╣ ",
	"╚═╝╝╚╝╩ ╩╩ ╩╚═╝",
}

func drawMenu(s *core.Screen, v app.View) {
	drawBackdrop(s, v.Vibes)
	top := max(1, s.Height()/2-len(title)-len(v.Menu.Items))
	for i, line := range title {
		s.DrawTextCentered(top+i, line, core.ColorHighlight)
	}

	y := top + len(title) + 2
	for i, item := range v.Menu.Items {
		if i == v.Menu.Selected {
			s.DrawTextCentered(y+i, "> "+item+" <", core.ColorHighlight)
		} else {
			s.DrawTextCentered(y+i, item, core.ColorText)
		}
	}

	vibes := "OFF"
	if v.Vibes {
		vibes = "ON"
	}
	s.DrawText(1, s.Height()-1, "V: vibes "+vibes+"   Esc: quit", core.ColorDim)
}

func drawPlay(s *core.Screen, v app.View, fps float64) {
	p := v.Play
	bw, bh := BoardSize(p.Width, p.Height)
	ox := max(0, (s.Width()-bw)/2)
	oy := max(0, (s.Height()-bh)/2)

	hud := fmt.Sprintf("Score %d  Speed %.1f  Time %ds  FPS %d",
		p.Score, p.Speed, int(p.Lifetime), int(fps+0.5))
	if p.Wrap {
		hud += "  WRAP"
	}
	s.DrawText(ox, oy, hud, core.ColorText)

	board := core.NewRect(ox, oy+1, bw, p.Height+2)
	s.DrawBox(board, core.ColorDim)

	cell := func(pt core.Point, r rune, c core.Color) {
		x := board.X + 1 + pt.X*cellW
		y := board.Y + 1 + pt.Y
		for i := 0; i < cellW; i++ {
			s.SetColored(x+i, y, r, c)
		}
	}

	if v.Vibes {
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				if (x+y)%2 == 0 {
					s.SetColored(board.X+1+x*cellW, board.Y+1+y, '·', core.ColorGrid)
				}
			}
		}
	}

	if p.HasFood {
		s.DrawText(board.X+1+p.Food.X*cellW, board.Y+1+p.Food.Y, "● ", core.ColorFood)
	}
	for i := len(p.Body) - 1; i >= 0; i-- {
		c := core.ColorSnakeBody
		if i == 0 {
			c = core.ColorSnakeHead
		}
		cell(p.Body[i], '█', c)
	}

	mid := board.Y + board.H/2
	switch {
	case !p.Alive:
		s.DrawTextCentered(mid-1, " GAME OVER ", core.ColorHighlight)
		s.DrawTextCentered(mid+1, " Enter: save score   R: restart   M/Esc: menu ", core.ColorText)
	case p.Paused:
		s.DrawTextCentered(mid, " PAUSED ", core.ColorHighlight)
	}
}

func drawTrophies(s *core.Screen, v app.View) {
	drawBackdrop(s, v.Vibes)
	s.DrawTextCentered(1, "TROPHIES", core.ColorHighlight)
	for i, t := range v.Trophies {
		mark, c := "[ ]", core.ColorText
		if t.Unlocked {
			mark, c = "[✓]", core.ColorAccent
		}
		s.DrawText(3, 3+i*2, fmt.Sprintf("%s %s - %s", mark, t.Name, t.Description), c)
	}
	s.DrawText(1, s.Height()-1, "Esc / M: menu", core.ColorDim)
}

var howTo = []string{
	"WASD / Arrows: move   P: pause   R: restart",
	"V: vibes   Esc: back",
	"Eat snacks to grow. Walls are deadly. Score +1 per snack.",
	"Every snack makes you a little faster.",
	"Session-only leaderboard (nothing is saved).",
	"Trophies pop up mid-run. Good luck!",
}

func drawHowTo(s *core.Screen, v app.View) {
	drawBackdrop(s, v.Vibes)
	s.DrawTextCentered(1, "HOW TO PLAY", core.ColorHighlight)
	for i, line := range howTo {
		s.DrawTextCentered(4+i*2, line, core.ColorText)
	}
	s.DrawText(1, s.Height()-1, "Esc / M: menu", core.ColorDim)
}

func drawNameEntry(s *core.Screen, v app.View) {
	drawBackdrop(s, v.Vibes)
	n := v.Name
	mid := s.Height() / 2
	s.DrawTextCentered(mid-5, "NEW HIGH SCORE!", core.ColorHighlight)
	s.DrawTextCentered(mid-3, fmt.Sprintf("Score %d   Speed %.1f   %ds",
		n.Result.Score, n.Result.Speed, int(n.Result.Time)), core.ColorText)
	s.DrawTextCentered(mid-1, "Enter initials:", core.ColorText)

	caret := " "
	if int(v.Now*2)%2 == 0 && len([]rune(n.Buffer)) < n.MaxLen {
		caret = "_"
	}
	s.DrawTextCentered(mid+1, n.Buffer+caret, core.ColorAccent)
	s.DrawTextCentered(s.Height()-2, "Type letters, Backspace, Enter to save   Esc to cancel", core.ColorDim)
}

func drawPopups(s *core.Screen, popups []app.PopupView) {
	for i, p := range popups {
		s.DrawText(1, 1+i, " "+p.Text+" ", core.ColorPopup)
	}
}
