package ui

import (
	"fmt"

	"lineedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type StatusBar struct {
	Mode     string // "NORMAL" or "INSERT"
	Filename string
	Line     int
	Col      int
	LineEnd  string
	TabWidth int
	Dirty    bool
	Message  string // temporary status message
	IsError  bool
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:    "NORMAL",
		LineEnd: "LF",
	}
}

// Render draws the bar on row y: the mode badge, then the message if there
// is one, otherwise the file name, with the position block right-aligned.
func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeBg := theme.StatusBarModeBg
	if s.Mode == "INSERT" {
		modeBg = theme.InsertModeBg
	}
	modeStyle := tcell.StyleDefault.Background(modeBg).Foreground(tcell.ColorBlack).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := drawText(screen, x, y, x+width, " "+s.Mode+" ", modeStyle)
	col++

	if s.Message != "" {
		msgStyle := style
		if s.IsError {
			msgStyle = style.Foreground(theme.ErrorFg)
		}
		drawText(screen, col, y, x+width, s.Message, msgStyle)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "[No Name]"
	}
	if s.Dirty {
		fname += " [+]"
	}
	col = drawText(screen, col, y, x+width, fname, style)

	right := fmt.Sprintf("Ln %d, Col %d │ %s │ Tab: %d ", s.Line+1, s.Col+1, s.LineEnd, s.TabWidth)
	rightStart := x + width - runewidth.StringWidth(right)
	if rightStart > col+1 {
		drawText(screen, rightStart, y, x+width, right, style)
	}
}

// drawText draws s from column x, stopping before limit, and returns the
// column after the last cell drawn.
func drawText(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}
