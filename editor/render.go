package editor

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	w, h := e.screen.Size()

	if e.mode == ModeInsert {
		e.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	} else {
		e.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}

	if e.text != nil {
		e.text.Style = tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
		e.text.TabWidth = e.view.Config().TabWidth
		e.text.Clear()
		e.text.Home()
		if err := e.view.Render(e.text); err != nil {
			// The frame is lost; the next one starts over.
			e.log.Printf("render: %v", err)
			e.setTemporaryError("Render error: " + err.Error())
		}
	} else {
		e.screen.HideCursor()
	}

	cur := e.view.Cursor()
	sb := e.statusBar
	sb.Theme = theme
	sb.Mode = e.mode.String()
	sb.Filename = ""
	if e.buf.Path != "" {
		sb.Filename = filepath.Base(e.buf.Path)
	}
	sb.Dirty = e.buf.Dirty
	sb.Line = cur.Line
	sb.Col = e.view.DisplayColumn()
	sb.LineEnd = e.buf.LineEnding
	sb.TabWidth = e.view.Config().TabWidth
	if h > 0 {
		sb.Render(e.screen, 0, h-1, w)
	}

	e.screen.Show()
}
