package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lineedit/config"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", name, err)
	}
	return path
}

func newTestEditor(t *testing.T, cfg *config.Config, path string) *Editor {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(80, 10)
	t.Cleanup(screen.Fini)

	e := New(cfg)
	if err := e.init(screen, path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return e
}

func (e *Editor) press(keys ...any) {
	for _, k := range keys {
		switch k := k.(type) {
		case rune:
			e.handleEvent(tcell.NewEventKey(tcell.KeyRune, k, tcell.ModNone))
		case string:
			for _, r := range k {
				e.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
			}
		case tcell.Key:
			e.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
		}
	}
}

func screenRow(s tcell.Screen, row int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		r, _, _, _ := s.GetContent(col, row)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestInsertModeTyping(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	e.press('i', "hello", tcell.KeyEnter, "world", tcell.KeyEscape)

	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", e.mode)
	}
	if got := e.buf.Content(); got != "hello\nworld\n" {
		t.Fatalf("content = %q", got)
	}
	if !e.buf.Dirty {
		t.Fatal("buffer should be dirty")
	}
}

func TestEnterOpensLineBelow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "abc\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('l', 'i', tcell.KeyEnter, "x")

	if got := e.buf.Content(); got != "abc\nx\n" {
		t.Fatalf("content = %q", got)
	}
	if cur := e.view.Cursor(); cur.Line != 1 || cur.Col != 1 {
		t.Fatalf("cursor = %+v", cur)
	}
}

func TestNormalModeMotions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "  foo bar\nsecond\n")
	e := newTestEditor(t, config.Default(), path)

	tests := []struct {
		key  rune
		line int
		col  int
	}{
		{'^', 0, 2},
		{'w', 0, 6},
		{'$', 0, 9},
		{'b', 0, 6},
		{'0', 0, 0},
		{'l', 0, 1},
		{'j', 1, 1},
		{'h', 1, 0},
		{'k', 0, 0},
		{'G', 1, 0},
		{'g', 0, 0},
	}
	for _, tt := range tests {
		e.press(tt.key)
		if cur := e.view.Cursor(); cur.Line != tt.line || cur.Col != tt.col {
			t.Fatalf("after %q cursor = %+v, want line %d col %d", tt.key, cur, tt.line, tt.col)
		}
	}
}

func TestOpenLineAboveAndBelow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "middle\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('o', "below", tcell.KeyEscape, 'k', 'O', "above", tcell.KeyEscape)

	if got := e.buf.Content(); got != "above\nmiddle\nbelow\n" {
		t.Fatalf("content = %q", got)
	}
	if cur := e.view.Cursor(); cur.Line != 0 {
		t.Fatalf("cursor line = %d, want 0", cur.Line)
	}
}

func TestAppendAndInsertAtStart(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "  mid\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('A', "!", tcell.KeyEscape, 'I', "<", tcell.KeyEscape)

	if got := e.buf.Lines[0]; got != "  <mid!" {
		t.Fatalf("line = %q", got)
	}
}

func TestBackspaceAndDelete(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "abcd\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('$', 'i', tcell.KeyBackspace2, tcell.KeyEscape, '0', 'x')

	if got := e.buf.Lines[0]; got != "bc" {
		t.Fatalf("line = %q", got)
	}
}

func TestTabInsertsTabAndAdvancesTabWidth(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	cfg.TabWidth = 4
	e := newTestEditor(t, cfg, "")

	e.press('i', tcell.KeyTab, "x")

	if got := e.buf.Lines[0]; got != "\tx" {
		t.Fatalf("line = %q", got)
	}
	if got := e.view.DisplayColumn(); got != 5 {
		t.Fatalf("display column = %d, want 5", got)
	}
}

func TestArrowKeysWorkInInsertMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "ac\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('i', tcell.KeyRight, "b")

	if got := e.buf.Lines[0]; got != "abc" {
		t.Fatalf("line = %q", got)
	}
}

func TestPasteInsertsLiterally(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	e.handleEvent(tcell.NewEventPaste(true))
	e.press("qi")
	e.handleEvent(tcell.NewEventPaste(false))

	if e.quit {
		t.Fatal("pasted q must not quit")
	}
	if got := e.buf.Lines[0]; got != "qi" {
		t.Fatalf("line = %q", got)
	}
	if e.mode != ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", e.mode)
	}
}

func TestPasteTextSplitsLines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	e.pasteText("one\ntwo\r\nthree")

	if got := e.buf.Content(); got != "one\ntwo\nthree\n" {
		t.Fatalf("content = %q", got)
	}
	if cur := e.view.Cursor(); cur.Line != 2 || cur.Col != 5 {
		t.Fatalf("cursor = %+v", cur)
	}
}

func TestPasteTextReplacesInvalidUTF8(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	e.pasteText("caf\xe9\nok")

	if got := e.buf.Content(); got != "caf\uFFFD\nok\n" {
		t.Fatalf("content = %q", got)
	}
	if cur := e.view.Cursor(); cur.Line != 1 || cur.Col != 2 {
		t.Fatalf("cursor = %+v", cur)
	}
}

func TestSaveWithCtrlS(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "old\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('A', "er", tcell.KeyEscape, tcell.KeyCtrlS)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "older\n" {
		t.Fatalf("file = %q", data)
	}
	if e.buf.Dirty {
		t.Fatal("buffer should be clean after save")
	}
}

func TestSaveUnnamedBufferFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	if e.save() {
		t.Fatal("save of unnamed buffer should fail")
	}
	if !e.statusBar.IsError || e.statusBar.Message != "No file name" {
		t.Fatalf("status = %q (error=%v)", e.statusBar.Message, e.statusBar.IsError)
	}
}

func TestQuitWritesDirtyFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "a\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('o', "b", tcell.KeyEscape, 'q')

	if !e.quit {
		t.Fatal("q should quit")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "a\nb\n" {
		t.Fatalf("file = %q", data)
	}
}

func TestRenderDrawsTextAndStatusBar(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "notes.txt", "first\nsecond\nthird\n")
	e := newTestEditor(t, config.Default(), path)

	e.press('j')
	e.render()

	// 9 text rows; the current line sits on row 4.
	if got := screenRow(e.screen, 3); got != "first" {
		t.Fatalf("row 3 = %q", got)
	}
	if got := screenRow(e.screen, 4); got != "second" {
		t.Fatalf("row 4 = %q", got)
	}
	if got := screenRow(e.screen, 5); got != "third" {
		t.Fatalf("row 5 = %q", got)
	}
	status := screenRow(e.screen, 9)
	if !strings.Contains(status, "NORMAL") || !strings.Contains(status, "notes.txt") {
		t.Fatalf("status row = %q", status)
	}
	if !strings.Contains(status, "Ln 2, Col 1") {
		t.Fatalf("status row = %q", status)
	}
}

func TestResizeTooSmallDropsTextArea(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := newTestEditor(t, config.Default(), "")

	e.screen.(tcell.SimulationScreen).SetSize(40, 1)
	e.handleEvent(tcell.NewEventResize(40, 1))
	if e.text != nil {
		t.Fatal("text area should be dropped on a one-row screen")
	}
	e.render()

	e.screen.(tcell.SimulationScreen).SetSize(40, 5)
	e.handleEvent(tcell.NewEventResize(40, 5))
	if e.text == nil || e.text.Height() != 4 {
		t.Fatal("text area should come back after growing")
	}
}

func TestBackupRecoveredOnOpen(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "saved\n")
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	e := newTestEditor(t, config.Default(), path)
	e.press('A', " edit", tcell.KeyEscape)
	e.handleEvent(&backupEvent{})

	if _, err := os.Stat(backupPathForFile(path)); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}

	e2 := newTestEditor(t, config.Default(), path)
	if got := e2.buf.Lines[0]; got != "saved edit" {
		t.Fatalf("recovered line = %q", got)
	}
	if !e2.buf.Dirty {
		t.Fatal("recovered buffer should be dirty")
	}

	e2.save()
	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("backup should be removed after save, stat err=%v", err)
	}
}

func TestStaleBackupIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "saved\n")

	e := newTestEditor(t, config.Default(), path)
	e.press('A', " edit", tcell.KeyEscape)
	e.saveBackup()

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	e2 := newTestEditor(t, config.Default(), path)
	if got := e2.buf.Lines[0]; got != "saved" {
		t.Fatalf("line = %q, stale backup should be ignored", got)
	}
}

func TestFileWatchReloadsCleanBuffer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "one\n")
	e := newTestEditor(t, config.Default(), path)

	if err := os.WriteFile(path, []byte("changed\nagain\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e.handleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})

	if e.buf.LineCount() != 2 || e.buf.Lines[0] != "changed" {
		t.Fatalf("buffer not reloaded: %q", e.buf.Lines)
	}
	if !strings.HasPrefix(e.statusBar.Message, "Reloaded") {
		t.Fatalf("status = %q", e.statusBar.Message)
	}
}

func TestFileWatchKeepsDirtyBuffer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "one\n")
	e := newTestEditor(t, config.Default(), path)
	e.press('A', "!", tcell.KeyEscape)

	if err := os.WriteFile(path, []byte("changed\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	e.handleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})

	if e.buf.Lines[0] != "one!" {
		t.Fatalf("dirty buffer was replaced: %q", e.buf.Lines)
	}
	if !e.statusBar.IsError {
		t.Fatal("expected a warning")
	}
}

func TestFileWatchRemoved(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "a.txt", "one\n")
	e := newTestEditor(t, config.Default(), path)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	e.handleEvent(&FileWatchEvent{Path: path, Op: fsnotify.Remove})

	if !strings.Contains(e.statusBar.Message, "removed") {
		t.Fatalf("status = %q", e.statusBar.Message)
	}
}
