package buffer

import "fmt"

// View is the single editing position in a Buffer: a current line index and
// a column cx in display cells. cx may sit past the end of a short line so
// the column is kept when moving on to a longer one; it is clamped only when
// an edit or a render uses it.
//
// Only one View may edit a given Buffer.
type View struct {
	buf  *Buffer
	cfg  LineConfig
	line int
	cx   int
}

// NewView opens a view on b at its first line. An empty buffer gets a blank
// line so there is always a current line.
func NewView(b *Buffer, cfg LineConfig) *View {
	v := &View{buf: b, cfg: cfg}
	v.Clamp()
	return v
}

func (v *View) Buffer() *Buffer { return v.buf }

func (v *View) Config() LineConfig { return v.cfg }

// Clamp restores the view invariants after the buffer was replaced under it.
func (v *View) Clamp() {
	if len(v.buf.Lines) == 0 {
		v.buf.Lines = append(v.buf.Lines, "")
	}
	v.line = max(0, min(v.line, len(v.buf.Lines)-1))
	v.cx = max(0, v.cx)
}

func (v *View) current() Line {
	return NewLine(v.buf.Lines[v.line], v.cfg)
}

func (v *View) editor() LineEditor {
	return NewLineEditor(&v.buf.Lines[v.line], v.cfg)
}

func (v *View) Cursor() Cursor {
	return Cursor{Line: v.line, Col: v.cx}
}

// DisplayColumn is where the cursor is drawn on the current line.
func (v *View) DisplayColumn() int {
	return min(v.cx, v.current().Width())
}

func (v *View) CurrentLine() string {
	return v.buf.Lines[v.line]
}

// editColumn clamps cx to the line and snaps it to the start of the cluster
// it points into.
func (v *View) editColumn() int {
	line := v.current()
	return line.clusterStart(min(v.cx, line.Width()))
}

func (v *View) FirstColumn() {
	v.cx = 0
}

func (v *View) LastColumn() {
	v.cx = v.current().Width()
}

func (v *View) FirstNonBlankColumn() {
	v.cx = v.current().FirstNonBlankColumn()
}

func (v *View) SetColumn(col int) {
	v.cx = max(0, col)
}

// AdvanceColumn moves right one column, wrapping to the start of the next
// line at the end of the current one.
func (v *View) AdvanceColumn() {
	if v.cx < v.current().Width() {
		v.cx++
	} else if v.line+1 < len(v.buf.Lines) {
		v.line++
		v.cx = 0
	}
}

// RetreatColumn moves left one column, wrapping to the end of the previous
// line from column 0.
func (v *View) RetreatColumn() {
	v.cx = min(v.cx, v.current().Width())
	if v.cx > 0 {
		v.cx--
	} else if v.line > 0 {
		v.line--
		v.cx = v.current().Width()
	}
}

func (v *View) NextWord() {
	v.cx = v.current().NextWordColumn(v.cx)
}

func (v *View) PrevWord() {
	v.cx = v.current().PrevWordColumn(v.cx)
}

// DeleteBeforeCursor removes the cluster covering the column left of the
// cursor and moves the cursor to where that cluster started. A cursor inside
// a wide cluster or a tab deletes that cluster.
func (v *View) DeleteBeforeCursor() {
	v.cx = min(v.cx, v.current().Width())
	if v.cx == 0 {
		return
	}
	start := v.current().clusterStart(v.cx - 1)
	if v.editor().RemoveAtColumn(v.cx-1) > 0 {
		v.cx = start
		v.buf.Dirty = true
	}
}

// DeleteAtCursor removes the cluster under the cursor.
func (v *View) DeleteAtCursor() {
	col := v.editColumn()
	v.cx = col
	if v.editor().RemoveAtColumn(col) > 0 {
		v.buf.Dirty = true
	}
}

func (v *View) InsertTab() {
	v.InsertText("\t")
}

// InsertText inserts s at the cursor and moves the cursor past it. s must
// not contain line terminators.
func (v *View) InsertText(s string) {
	if s == "" {
		return
	}
	col := v.editColumn()
	v.cx = col + v.editor().InsertAtColumn(col, s)
	v.buf.Dirty = true
}

// InsertLineAbove adds an empty line before the current one. The view stays
// on the same line and column.
func (v *View) InsertLineAbove() {
	v.insertLine(v.line)
	v.line++
}

// InsertLineBelow adds an empty line after the current one. The view stays
// on the same line and column.
func (v *View) InsertLineBelow() {
	v.insertLine(v.line + 1)
}

func (v *View) insertLine(at int) {
	v.buf.Lines = append(v.buf.Lines, "")
	copy(v.buf.Lines[at+1:], v.buf.Lines[at:])
	v.buf.Lines[at] = ""
	v.buf.Dirty = true
}

// MoveLines moves delta lines down (up when negative), stopping at the first
// or last line.
func (v *View) MoveLines(delta int) {
	v.line = max(0, min(v.line+delta, len(v.buf.Lines)-1))
}

func (v *View) GotoLine(n int) {
	v.MoveLines(n - v.line)
}

// Render draws the lines around the cursor into r, which must have its
// cursor at the top-left of the viewport. The current line goes on the
// middle row, as many lines as fit above and below it, and the hardware
// cursor is left on the current line at the cursor column.
func (v *View) Render(r Renderer) error {
	h := r.Height()
	if h <= 0 {
		return fmt.Errorf("%w: height %d", ErrInvalidViewport, h)
	}
	mid := h / 2

	row := 0
	moveTo := func(target int) error {
		if target == row {
			return nil
		}
		err := r.MoveCursorVertical(target - row)
		row = target
		return err
	}
	draw := func(target, idx int) error {
		if err := moveTo(target); err != nil {
			return err
		}
		if err := r.Write(v.buf.Lines[idx]); err != nil {
			return err
		}
		return r.ReturnToLineStart()
	}

	if err := draw(mid, v.line); err != nil {
		return err
	}
	for i := 1; i <= mid && v.line-i >= 0; i++ {
		if err := draw(mid-i, v.line-i); err != nil {
			return err
		}
	}
	for i := 1; i <= mid && mid+i < h && v.line+i < len(v.buf.Lines); i++ {
		if err := draw(mid+i, v.line+i); err != nil {
			return err
		}
	}

	if err := moveTo(mid); err != nil {
		return err
	}
	if err := r.ReturnToLineStart(); err != nil {
		return err
	}
	if x := v.DisplayColumn(); x > 0 {
		return r.MoveCursorHorizontal(x)
	}
	return nil
}
