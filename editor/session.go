package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// maxSessionFiles bounds the cursor history; the oldest entries go first.
const maxSessionFiles = 200

type SessionData struct {
	Files []FileState `json:"files"`
}

type FileState struct {
	Path string `json:"path"`
	Line int    `json:"cursor_line"`
	Col  int    `json:"cursor_col"`
}

func sessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "lineedit", "cursors.json")
}

func loadSession(path string) SessionData {
	var session SessionData
	data, err := os.ReadFile(path)
	if err != nil {
		return session
	}
	if err := json.Unmarshal(data, &session); err != nil {
		return SessionData{}
	}
	return session
}

// lookup returns the saved state for path.
func (s *SessionData) lookup(path string) (FileState, bool) {
	for _, fs := range s.Files {
		if fs.Path == path {
			return fs, true
		}
	}
	return FileState{}, false
}

// put moves the state for fs.Path to the end of the list, dropping the
// oldest entries and those for files that no longer exist.
func (s *SessionData) put(fs FileState) {
	kept := s.Files[:0]
	for _, old := range s.Files {
		if old.Path == fs.Path {
			continue
		}
		if _, err := os.Stat(old.Path); err != nil {
			continue
		}
		kept = append(kept, old)
	}
	kept = append(kept, fs)
	if len(kept) > maxSessionFiles {
		kept = kept[len(kept)-maxSessionFiles:]
	}
	s.Files = kept
}

// SaveSession remembers the cursor position in the open file.
func (e *Editor) SaveSession() {
	if !e.cfg.RestoreCursor || e.buf == nil || e.buf.Path == "" {
		return
	}
	path := sessionPath()
	if path == "" {
		return
	}

	session := loadSession(path)
	cur := e.view.Cursor()
	session.put(FileState{Path: e.buf.Path, Line: cur.Line, Col: e.view.DisplayColumn()})

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.log.Printf("session: %v", err)
		return
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.log.Printf("session: %v", err)
	}
}

// RestoreSession puts the cursor back where it was when the open file was
// last closed. Positions past the end of the file are clamped.
func (e *Editor) RestoreSession() bool {
	if !e.cfg.RestoreCursor || e.buf.Path == "" {
		return false
	}
	path := sessionPath()
	if path == "" {
		return false
	}

	session := loadSession(path)
	fs, ok := session.lookup(e.buf.Path)
	if !ok {
		return false
	}
	e.view.GotoLine(fs.Line)
	e.view.SetColumn(fs.Col)
	return true
}
