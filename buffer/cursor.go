package buffer

// Cursor is a position in a document: a line index and a display column.
type Cursor struct {
	Line, Col int
}
