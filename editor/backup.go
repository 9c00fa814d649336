package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
)

const backupInterval = 30 * time.Second

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	Timestamp    string `json:"timestamp"`
	Lines        int    `json:"lines"`
}

// backupEvent asks the event loop to write a backup of the buffer.
type backupEvent struct {
	tcell.EventTime
}

func backupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "lineedit", "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	name := fmt.Sprintf("%x.bak", h[:8])
	return filepath.Join(backupDir(), name)
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// startBackupTimer posts a backupEvent every backupInterval until the
// returned function is called.
func (e *Editor) startBackupTimer(screen tcell.Screen) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ev := &backupEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			}
		}
	}()
	return func() { close(done) }
}

func (e *Editor) saveBackup() {
	buf := e.buf
	if !e.cfg.Backup || !buf.Dirty || buf.Path == "" {
		return
	}
	if err := os.MkdirAll(backupDir(), 0755); err != nil {
		e.log.Printf("backup: %v", err)
		return
	}

	bpath := backupPathForFile(buf.Path)
	if err := os.WriteFile(bpath, []byte(buf.Content()), 0644); err != nil {
		e.log.Printf("backup %q: %v", buf.Path, err)
		return
	}

	meta := backupInfo{
		OriginalPath: buf.Path,
		Timestamp:    time.Now().Format(time.RFC3339),
		Lines:        buf.LineCount(),
	}
	metaData, _ := json.Marshal(meta)
	if err := os.WriteFile(backupMetaPath(bpath), metaData, 0644); err != nil {
		e.log.Printf("backup meta %q: %v", buf.Path, err)
	}
}

func (e *Editor) cleanBackup() {
	if e.buf == nil || e.buf.Path == "" {
		return
	}
	bpath := backupPathForFile(e.buf.Path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// recoverBackup loads a backup left behind by a session that ended with
// unsaved changes. Backups older than the file on disk are ignored.
func (e *Editor) recoverBackup() bool {
	buf := e.buf
	if !e.cfg.Backup || buf.Path == "" {
		return false
	}

	bpath := backupPathForFile(buf.Path)
	data, err := os.ReadFile(backupMetaPath(bpath))
	if err != nil {
		return false
	}
	var info backupInfo
	if err := json.Unmarshal(data, &info); err != nil || info.OriginalPath != buf.Path {
		return false
	}

	binfo, err := os.Stat(bpath)
	if err != nil {
		return false
	}
	if finfo, err := os.Stat(buf.Path); err == nil && !binfo.ModTime().After(finfo.ModTime()) {
		e.cleanBackup()
		return false
	}

	content, err := os.ReadFile(bpath)
	if err != nil {
		e.log.Printf("recover %q: %v", buf.Path, err)
		return false
	}
	buf.Restore(string(content))
	e.view.Clamp()
	e.log.Printf("recovered %d lines for %q from %s", buf.LineCount(), buf.Path, info.Timestamp)
	return true
}
