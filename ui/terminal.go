package ui

import (
	"errors"
	"fmt"

	"lineedit/buffer"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var (
	ErrInvalidRendererSize = errors.New("invalid renderer size")
	ErrCursorOutOfBounds   = errors.New("cursor out of bounds")
)

// TerminalRenderer draws into a rectangular region of a tcell screen and
// keeps a cursor relative to the region's top-left cell. It implements
// buffer.Renderer; the hardware cursor follows every move.
//
// Lines are not wrapped. Text past the right edge is dropped, and a cursor
// column past the edge is shown on the last cell.
type TerminalRenderer struct {
	screen     tcell.Screen
	x, y, w, h int
	curRow     int
	curCol     int

	TabWidth int
	Style    tcell.Style
}

var _ buffer.Renderer = (*TerminalRenderer)(nil)

func NewTerminalRenderer(screen tcell.Screen, x, y, width, height int) (*TerminalRenderer, error) {
	t := &TerminalRenderer{
		screen:   screen,
		TabWidth: buffer.DefaultTabWidth,
		Style:    tcell.StyleDefault,
	}
	if err := t.Resize(x, y, width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize moves the region and puts the cursor back at its origin.
func (t *TerminalRenderer) Resize(x, y, width, height int) error {
	sw, sh := t.screen.Size()
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > sw || y+height > sh {
		return fmt.Errorf("%w: %dx%d at (%d,%d) on a %dx%d screen",
			ErrInvalidRendererSize, width, height, x, y, sw, sh)
	}
	t.x, t.y, t.w, t.h = x, y, width, height
	t.Home()
	return nil
}

func (t *TerminalRenderer) Height() int { return t.h }
func (t *TerminalRenderer) Width() int  { return t.w }

// Cursor returns the cursor position relative to the region.
func (t *TerminalRenderer) Cursor() (row, col int) {
	return t.curRow, t.curCol
}

// Home moves the cursor to the top-left cell of the region.
func (t *TerminalRenderer) Home() {
	t.curRow, t.curCol = 0, 0
	t.showCursor()
}

// Clear blanks the whole region.
func (t *TerminalRenderer) Clear() {
	for row := 0; row < t.h; row++ {
		t.eraseLine(row, 0)
	}
}

// Write clears the rest of the cursor row and draws s from the cursor.
// Tabs are drawn as TabWidth blanks so the layout matches buffer columns.
func (t *TerminalRenderer) Write(s string) error {
	t.eraseLine(t.curRow, t.curCol)

	rest := s
	state := -1
	for len(rest) > 0 {
		var g string
		g, rest, _, state = uniseg.StepString(rest, state)

		if g == "\t" {
			for i := 0; i < t.tabWidth() && t.curCol < t.w; i++ {
				t.putCell(' ', nil, 1)
			}
			continue
		}

		w := runewidth.StringWidth(g)
		if w == 0 {
			continue
		}
		if t.curCol+w > t.w {
			break
		}
		rs := []rune(g)
		t.putCell(rs[0], rs[1:], w)
	}
	t.showCursor()
	return nil
}

func (t *TerminalRenderer) ReturnToLineStart() error {
	t.curCol = 0
	t.showCursor()
	return nil
}

func (t *TerminalRenderer) MoveCursorHorizontal(n int) error {
	col := t.curCol + n
	if col < 0 {
		return fmt.Errorf("%w: column %d", ErrCursorOutOfBounds, col)
	}
	t.curCol = col
	t.showCursor()
	return nil
}

func (t *TerminalRenderer) MoveCursorVertical(n int) error {
	row := t.curRow + n
	if row < 0 || row >= t.h {
		return fmt.Errorf("%w: row %d of %d", ErrCursorOutOfBounds, row, t.h)
	}
	t.curRow = row
	t.showCursor()
	return nil
}

func (t *TerminalRenderer) tabWidth() int {
	if t.TabWidth <= 0 {
		return buffer.DefaultTabWidth
	}
	return t.TabWidth
}

func (t *TerminalRenderer) putCell(main rune, combining []rune, width int) {
	t.screen.SetContent(t.x+t.curCol, t.y+t.curRow, main, combining, t.Style)
	t.curCol += width
}

func (t *TerminalRenderer) eraseLine(row, fromCol int) {
	for col := fromCol; col < t.w; col++ {
		t.screen.SetContent(t.x+col, t.y+row, ' ', nil, t.Style)
	}
}

func (t *TerminalRenderer) showCursor() {
	t.screen.ShowCursor(t.x+min(t.curCol, t.w-1), t.y+t.curRow)
}
