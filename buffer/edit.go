package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineEditor mutates one line slot of a Buffer in whole grapheme clusters.
type LineEditor struct {
	s   *string
	cfg LineConfig
}

func NewLineEditor(s *string, cfg LineConfig) LineEditor {
	return LineEditor{s: s, cfg: cfg}
}

func (e LineEditor) Line() Line {
	return NewLine(*e.s, e.cfg)
}

// RemoveAtColumn deletes the cluster covering col and returns its width.
// Nothing is removed at or past the end of the line.
func (e LineEditor) RemoveAtColumn(col int) int {
	line := e.Line()
	off := line.ColumnToOffset(col)
	if off >= len(*e.s) {
		return 0
	}

	var removed cluster
	line.each(func(c cluster) bool {
		if c.offset == off {
			removed = c
			return false
		}
		return true
	})

	*e.s = (*e.s)[:off] + (*e.s)[off+len(removed.text):]
	return removed.width
}

// InsertAtColumn splices text in front of the cluster covering col (or at
// the end of the line) and returns the width it occupies.
func (e LineEditor) InsertAtColumn(col int, text string) int {
	mustBeLineText(text)

	line := e.Line()
	off := line.ColumnToOffset(col)
	*e.s = (*e.s)[:off] + text + (*e.s)[off:]
	return line.TextWidth(text)
}

func mustBeLineText(text string) {
	if !utf8.ValidString(text) {
		panic(fmt.Sprintf("buffer: invalid UTF-8 in line text %q", text))
	}
	if strings.ContainsAny(text, "\r\n") {
		panic(fmt.Sprintf("buffer: line terminator in line text %q", text))
	}
}
