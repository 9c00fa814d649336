package editor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"lineedit/buffer"
	"lineedit/config"
	"lineedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const statusMessageTTL = 3 * time.Second

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
)

func (m Mode) String() string {
	if m == ModeInsert {
		return "INSERT"
	}
	return "NORMAL"
}

// Editor owns the screen, the one buffer being edited and the single View
// on it. Background goroutines never touch the buffer; they post events
// that the event loop handles.
type Editor struct {
	screen    tcell.Screen
	cfg       *config.Config
	log       *log.Logger
	buf       *buffer.Buffer
	view      *buffer.View
	text      *ui.TerminalRenderer
	statusBar *ui.StatusBar

	mode    Mode
	pasting bool
	quit    bool

	fileWatcher *fsnotify.Watcher
	stopBackups func()

	statusMessageTime time.Time
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

func New(cfg *config.Config) *Editor {
	return &Editor{
		cfg:       cfg,
		log:       log.New(io.Discard, "", 0),
		statusBar: ui.NewStatusBar(),
	}
}

// Run edits path (or an unnamed buffer when path is empty) until the user
// quits. An unnamed buffer with changes is written to stdout on exit.
func (e *Editor) Run(path string) error {
	if e.cfg.LogFile != "" {
		f, err := os.OpenFile(e.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		e.log = log.New(f, "lineedit ", log.LstdFlags|log.Lmicroseconds)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	if err := e.init(screen, path); err != nil {
		screen.Fini()
		return err
	}

	e.setupFileWatcher(screen)
	if e.cfg.Backup {
		e.stopBackups = e.startBackupTimer(screen)
	}

	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		e.handleEvent(ev)
	}

	e.shutdown()
	screen.Clear()
	screen.Fini()

	if e.buf.Path == "" && e.buf.Dirty {
		return e.buf.Serialize(os.Stdout)
	}
	return nil
}

func (e *Editor) init(screen tcell.Screen, path string) error {
	e.screen = screen
	if err := e.open(path); err != nil {
		return err
	}
	e.layout()
	return nil
}

// open loads path into a fresh buffer and view, then applies any crash
// backup and the remembered cursor position.
func (e *Editor) open(path string) error {
	buf := buffer.NewBuffer()
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		buf, err = buffer.NewBufferFromFile(absPath)
		if err != nil {
			return err
		}
	}

	e.buf = buf
	e.view = buffer.NewView(buf, e.cfg.LineConfig(buf.Path))
	e.log.Printf("opened %q: %d lines, tab width %d", buf.Path, buf.LineCount(), e.view.Config().TabWidth)

	if e.recoverBackup() {
		e.setTemporaryMessage("Recovered unsaved changes from backup")
	}
	e.RestoreSession()
	return nil
}

func (e *Editor) shutdown() {
	e.SaveSession()
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}
	if e.stopBackups != nil {
		e.stopBackups()
	}
	if !e.buf.Dirty {
		e.cleanBackup()
	}
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		e.layout()
	case *tcell.EventPaste:
		e.pasting = ev.Start()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *FileWatchEvent:
		e.handleFileWatchEvent(ev)
	case *backupEvent:
		e.saveBackup()
	}
}

// layout gives every row but the last to the text area.
func (e *Editor) layout() {
	w, h := e.screen.Size()
	if e.text == nil {
		text, err := ui.NewTerminalRenderer(e.screen, 0, 0, w, h-1)
		if err != nil {
			e.log.Printf("layout: %v", err)
			e.setTemporaryError("Window too small")
			return
		}
		e.text = text
		return
	}
	if err := e.text.Resize(0, 0, w, h-1); err != nil {
		e.log.Printf("layout: %v", err)
		e.text = nil
		e.setTemporaryError("Window too small")
	}
}

func (e *Editor) save() bool {
	if err := e.buf.Save(); err != nil {
		e.log.Printf("save %q: %v", e.buf.Path, err)
		if errors.Is(err, buffer.ErrNoPath) {
			e.setTemporaryError("No file name")
		} else {
			e.setTemporaryError("Error: " + err.Error())
		}
		return false
	}
	e.cleanBackup()
	e.setTemporaryMessage(fmt.Sprintf("Wrote %d lines to %s", e.buf.LineCount(), filepath.Base(e.buf.Path)))
	return true
}

// quitEditor leaves after writing a file-backed buffer with changes. An
// unnamed buffer is handed to Run, which prints it.
func (e *Editor) quitEditor() {
	if e.buf.Dirty && e.buf.Path != "" && !e.save() {
		return
	}
	e.quit = true
}

func (e *Editor) setStatusMessage(msg string, isError bool) {
	e.statusBar.Message = msg
	e.statusBar.IsError = isError
	e.statusMessageTime = time.Now()
}

func (e *Editor) setTemporaryMessage(msg string) {
	e.setStatusMessage(msg, false)
}

func (e *Editor) setTemporaryError(msg string) {
	e.setStatusMessage(msg, true)
}

func (e *Editor) clearExpiredMessages() {
	if e.statusBar.Message != "" && time.Since(e.statusMessageTime) > statusMessageTTL {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
	}
}

// setupFileWatcher watches the directory of the open file, since many
// programs replace files by renaming over them.
func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	path := e.buf.Path
	if path == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		e.log.Printf("file watcher: %v", err)
		return
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		e.log.Printf("watch %q: %v", filepath.Dir(path), err)
		watcher.Close()
		return
	}
	e.fileWatcher = watcher

	go func() {
		// Debounce: collect events and send after quiet period
		debounceTimer := time.NewTimer(100 * time.Millisecond)
		debounceTimer.Stop()
		var pending fsnotify.Op

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				pending |= event.Op
				debounceTimer.Reset(100 * time.Millisecond)

			case <-debounceTimer.C:
				ev := &FileWatchEvent{Path: path, Op: pending}
				ev.SetEventNow()
				screen.PostEvent(ev)
				pending = 0

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				e.log.Printf("file watcher: %v", err)
			}
		}
	}()
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	if ev.Path != e.buf.Path {
		return
	}
	name := filepath.Base(ev.Path)

	info, err := os.Stat(ev.Path)
	if err != nil {
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			e.setTemporaryError("Warning: " + name + " was removed externally")
		}
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	// Allow 1 second grace period after our last save
	if !e.buf.LastSaveTime.IsZero() && info.ModTime().Sub(e.buf.LastSaveTime) <= time.Second {
		return
	}
	if e.buf.Dirty {
		e.setTemporaryError("Warning: " + name + " was modified externally (unsaved changes)")
		return
	}
	if err := e.buf.Reload(); err != nil {
		e.log.Printf("reload %q: %v", ev.Path, err)
		e.setTemporaryError("Error: " + err.Error())
		return
	}
	e.view.Clamp()
	e.setTemporaryMessage("Reloaded " + name)
}
