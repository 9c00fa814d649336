package editor

import (
	"strings"

	"lineedit/buffer"
	"lineedit/clipboardx"

	"github.com/gdamore/tcell/v2"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlS {
		e.save()
		return
	}
	if e.moveCursor(ev.Key()) {
		return
	}
	if e.mode == ModeInsert || e.pasting {
		e.handleInsertKey(ev)
		return
	}
	e.handleNormalKey(ev)
}

// moveCursor handles the keys that move the cursor the same way in both modes.
func (e *Editor) moveCursor(key tcell.Key) bool {
	v := e.view
	switch key {
	case tcell.KeyLeft:
		v.RetreatColumn()
	case tcell.KeyRight:
		v.AdvanceColumn()
	case tcell.KeyUp:
		v.MoveLines(-1)
	case tcell.KeyDown:
		v.MoveLines(1)
	case tcell.KeyHome:
		v.FirstColumn()
	case tcell.KeyEnd:
		v.LastColumn()
	case tcell.KeyPgUp:
		v.MoveLines(-e.pageSize())
	case tcell.KeyPgDn:
		v.MoveLines(e.pageSize())
	default:
		return false
	}
	return true
}

func (e *Editor) pageSize() int {
	if e.text == nil {
		return 1
	}
	return max(1, e.text.Height()/2)
}

func (e *Editor) handleNormalKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}

	v := e.view
	switch ev.Rune() {
	case 'q':
		e.quitEditor()

	// move and insert
	case 'i':
		e.mode = ModeInsert
	case 'I':
		v.FirstNonBlankColumn()
		e.mode = ModeInsert
	case 'a':
		v.AdvanceColumn()
		e.mode = ModeInsert
	case 'A':
		v.LastColumn()
		e.mode = ModeInsert
	case 'o':
		v.InsertLineBelow()
		v.MoveLines(1)
		v.FirstColumn()
		e.mode = ModeInsert
	case 'O':
		v.InsertLineAbove()
		v.MoveLines(-1)
		v.FirstColumn()
		e.mode = ModeInsert

	// movement
	case '0':
		v.FirstColumn()
	case '^':
		v.FirstNonBlankColumn()
	case '$':
		v.LastColumn()
	case 'w':
		v.NextWord()
	case 'b':
		v.PrevWord()
	case 'h':
		v.RetreatColumn()
	case 'l':
		v.AdvanceColumn()
	case 'j':
		v.MoveLines(1)
	case 'k':
		v.MoveLines(-1)
	case 'g':
		v.GotoLine(0)
	case 'G':
		v.GotoLine(e.buf.LineCount() - 1)

	// editing
	case 'x':
		v.DeleteAtCursor()
	case 'y':
		if clipboardx.Write(v.CurrentLine()) {
			e.setTemporaryMessage("Yanked line to clipboard")
		} else {
			e.setTemporaryMessage("Yanked line")
		}
	case 'p':
		e.pasteText(clipboardx.Read())
	}
}

func (e *Editor) handleInsertKey(ev *tcell.EventKey) {
	v := e.view
	switch ev.Key() {
	case tcell.KeyEscape:
		e.mode = ModeNormal
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.DeleteBeforeCursor()
	case tcell.KeyEnter:
		e.openLineBelow()
	case tcell.KeyTab:
		v.InsertTab()
	case tcell.KeyRune:
		v.InsertText(string(ev.Rune()))
	}
}

func (e *Editor) openLineBelow() {
	e.view.InsertLineBelow()
	e.view.MoveLines(1)
	e.view.FirstColumn()
}

// pasteText inserts text at the cursor, opening a new line for every line
// after the first. Invalid UTF-8 is replaced the same way as on load.
func (e *Editor) pasteText(text string) {
	text = strings.ToValidUTF8(text, "\uFFFD")
	for i, line := range buffer.SplitLines(text) {
		if i > 0 {
			e.openLineBelow()
		}
		e.view.InsertText(line)
	}
}
