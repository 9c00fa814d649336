package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the display width of a tab when nothing overrides it.
const DefaultTabWidth = 8

// LineConfig carries the settings every column computation depends on. It is
// passed by value so a line operation can never observe it changing.
type LineConfig struct {
	TabWidth int
}

func DefaultLineConfig() LineConfig {
	return LineConfig{TabWidth: DefaultTabWidth}
}

func (c LineConfig) tabWidth() int {
	if c.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return c.TabWidth
}

// Line is a read-only view of one line of text. Columns are display cells:
// a tab is TabWidth wide, wide East Asian characters and most emoji are two.
type Line struct {
	text string
	cfg  LineConfig
}

func NewLine(text string, cfg LineConfig) Line {
	return Line{text: text, cfg: cfg}
}

func (l Line) String() string { return l.text }

func (l Line) Config() LineConfig { return l.cfg }

type cluster struct {
	text   string
	offset int // byte offset in the line
	col    int // first display column
	width  int
}

func (c cluster) class() CharClass {
	return ClassifyFirst(c.text)
}

// each walks the grapheme clusters of the line left to right until fn
// returns false.
func (l Line) each(fn func(c cluster) bool) {
	rest := l.text
	state := -1
	offset, col := 0, 0
	for len(rest) > 0 {
		var g string
		g, rest, _, state = uniseg.StepString(rest, state)
		w := l.clusterWidth(g)
		if !fn(cluster{text: g, offset: offset, col: col, width: w}) {
			return
		}
		offset += len(g)
		col += w
	}
}

func (l Line) clusters() []cluster {
	var cs []cluster
	l.each(func(c cluster) bool {
		cs = append(cs, c)
		return true
	})
	return cs
}

func (l Line) clusterWidth(g string) int {
	if g == "\t" {
		return l.cfg.tabWidth()
	}
	return runewidth.StringWidth(g)
}

// TextWidth measures s the way a line would, tabs included.
func (l Line) TextWidth(s string) int {
	return NewLine(s, l.cfg).Width()
}

// ColumnToOffset returns the byte offset of the first cluster whose
// cumulative width exceeds col, or len(text) when col is at or past Width.
func (l Line) ColumnToOffset(col int) int {
	idx := len(l.text)
	l.each(func(c cluster) bool {
		if c.col+c.width > col {
			idx = c.offset
			return false
		}
		return true
	})
	return idx
}

func (l Line) Width() int {
	w := 0
	l.each(func(c cluster) bool {
		w += c.width
		return true
	})
	return w
}

// FirstNonBlankColumn returns the column of the first non-whitespace
// cluster, or Width for a blank line.
func (l Line) FirstNonBlankColumn() int {
	col := -1
	w := 0
	l.each(func(c cluster) bool {
		if c.class() != WhiteSpace {
			col = c.col
			return false
		}
		w += c.width
		return true
	})
	if col < 0 {
		return w
	}
	return col
}

// clusterAt returns the index of the cluster covering col, or len(cs).
func clusterAt(cs []cluster, col int) int {
	for i, c := range cs {
		if c.col+c.width > col {
			return i
		}
	}
	return len(cs)
}

// clusterStart returns the first column of the cluster covering col, or
// Width when col is past the end.
func (l Line) clusterStart(col int) int {
	cs := l.clusters()
	return columnOf(cs, clusterAt(cs, col))
}

func columnOf(cs []cluster, i int) int {
	if i < len(cs) {
		return cs[i].col
	}
	if len(cs) == 0 {
		return 0
	}
	last := cs[len(cs)-1]
	return last.col + last.width
}

// NextWordColumn returns the column where the next word starts. The run
// under col is skipped along with any whitespace that follows it. At or past
// the end of the line col is returned unchanged.
func (l Line) NextWordColumn(col int) int {
	cs := l.clusters()
	i := clusterAt(cs, col)
	if i >= len(cs) {
		return col
	}

	cl := cs[i].class()
	i++
	for i < len(cs) && cs[i].class() == cl {
		i++
	}
	if i < len(cs) && cs[i].class() == WhiteSpace {
		for i < len(cs) && cs[i].class() == WhiteSpace {
			i++
		}
	}
	return columnOf(cs, i)
}

// PrevWordColumn returns the column where the word before col starts,
// crossing a whitespace run if one sits directly before col.
func (l Line) PrevWordColumn(col int) int {
	cs := l.clusters()
	i := clusterAt(cs, col)
	if i == 0 {
		return 0
	}
	i--

	if cs[i].class() == WhiteSpace {
		for i > 0 && cs[i-1].class() == WhiteSpace {
			i--
		}
		if i == 0 {
			return 0
		}
		i--
	}

	cl := cs[i].class()
	for i > 0 && cs[i-1].class() == cl {
		i--
	}
	return cs[i].col
}
