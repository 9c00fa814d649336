package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrBinaryFile   = errors.New("binary file")
	ErrNoPath       = errors.New("buffer has no file name")
)

const (
	maxFileSize    = 100 * 1024 * 1024
	binaryCheckLen = 8192
)

// Buffer is the document: an ordered list of lines without terminators.
// Lines are addressed by index; a View keeps its current line as an index
// into Lines rather than holding on to the strings themselves.
type Buffer struct {
	Lines        []string
	Path         string
	Dirty        bool
	LineEnding   string // "LF" or "CRLF" as found on load; Serialize always writes LF
	LastSaveTime time.Time
	FileSize     int64
}

func NewBuffer() *Buffer {
	return &Buffer{LineEnding: "LF"}
}

// NewBufferFromString splits s on CR, LF and CRLF. Terminators are dropped
// and a trailing terminator does not produce an extra empty line.
func NewBufferFromString(s string) *Buffer {
	b := NewBuffer()
	b.setContent(s)
	return b
}

// NewBufferFromFile loads path. A file that does not exist yet gives an
// empty buffer bound to path.
func NewBufferFromFile(path string) (*Buffer, error) {
	b := NewBuffer()
	b.Path = path
	if err := b.load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return b, nil
		}
		return nil, err
	}
	return b, nil
}

// Reload replaces the contents with what is on disk and clears Dirty.
func (b *Buffer) Reload() error {
	if b.Path == "" {
		return ErrNoPath
	}
	return b.load()
}

func (b *Buffer) load() error {
	info, err := os.Stat(b.Path)
	if err != nil {
		return err
	}
	if info.Size() > maxFileSize {
		return fmt.Errorf("%s: %w (%d MB, max supported is %d MB)",
			b.Path, ErrFileTooLarge, info.Size()/(1024*1024), maxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(b.Path)
	if err != nil {
		return err
	}
	if bytes.IndexByte(data[:min(len(data), binaryCheckLen)], 0) >= 0 {
		return fmt.Errorf("%s: %w", b.Path, ErrBinaryFile)
	}

	b.setContent(string(data))
	b.FileSize = info.Size()
	b.Dirty = false
	return nil
}

// Restore replaces the contents with unsaved text, such as a crash backup.
// The buffer is left dirty and keeps its line ending.
func (b *Buffer) Restore(s string) {
	ending := b.LineEnding
	b.setContent(s)
	b.LineEnding = ending
	b.Dirty = true
}

func (b *Buffer) setContent(s string) {
	b.LineEnding = "LF"
	if strings.Contains(s, "\r\n") {
		b.LineEnding = "CRLF"
	}
	b.Lines = SplitLines(strings.ToValidUTF8(s, "\uFFFD"))
}

// SplitLines breaks s at every CR, LF or CRLF.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// Serialize writes every line followed by a single newline.
func (b *Buffer) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range b.Lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Content returns what Serialize would write.
func (b *Buffer) Content() string {
	var sb strings.Builder
	_ = b.Serialize(&sb)
	return sb.String()
}

func (b *Buffer) Save() error {
	if b.Path == "" {
		return ErrNoPath
	}

	content := b.Content()
	if err := os.WriteFile(b.Path, []byte(content), 0644); err != nil {
		return err
	}
	b.Dirty = false
	b.FileSize = int64(len(content))
	b.LastSaveTime = time.Now()
	return nil
}
