package buffer

import "errors"

var ErrInvalidViewport = errors.New("invalid viewport size")

// Renderer is the drawing surface a View paints into. Row and column moves
// are relative to the renderer's own cursor; the view never reads from it.
type Renderer interface {
	Height() int
	Width() int

	// Write draws s starting at the cursor.
	Write(s string) error

	// ReturnToLineStart moves the cursor to the first column of its row.
	ReturnToLineStart() error

	// MoveCursorHorizontal moves n columns, negative is left.
	MoveCursorHorizontal(n int) error

	// MoveCursorVertical moves n rows, negative is up.
	MoveCursorVertical(n int) error
}
