package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfigSettings holds the .editorconfig properties that affect line
// layout. Zero means unset.
type EditorConfigSettings struct {
	IndentStyle string // "tab" or "space"
	IndentSize  int
	TabWidth    int
}

type editorConfigFile struct {
	root     bool
	sections []editorConfigSection
}

type editorConfigSection struct {
	pattern string
	props   map[string]string
}

// FindEditorConfig collects .editorconfig files from the directory of
// filePath upward until one declares root = true, and returns the merged
// settings of every section matching the file name. Closer files win.
// Returns nil when nothing applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	fileName := filepath.Base(absPath)

	var chain []*editorConfigFile
	for dir := filepath.Dir(absPath); ; {
		if ec := readEditorConfig(filepath.Join(dir, ".editorconfig")); ec != nil {
			chain = append(chain, ec)
			if ec.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	merged := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, sec := range chain[i].sections {
			if !matchPattern(sec.pattern, fileName) {
				continue
			}
			for k, v := range sec.props {
				merged[k] = v
			}
		}
	}
	return settingsFromMap(merged)
}

func readEditorConfig(path string) *editorConfigFile {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	ec := &editorConfigFile{}
	var cur *editorConfigSection

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' && line[len(line)-1] == ']' {
			ec.sections = append(ec.sections, editorConfigSection{
				pattern: line[1 : len(line)-1],
				props:   make(map[string]string),
			})
			cur = &ec.sections[len(ec.sections)-1]
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))

		if cur == nil {
			if key == "root" {
				ec.root = value == "true"
			}
			continue
		}
		cur.props[key] = value
	}
	return ec
}

// matchPattern matches fileName against a section pattern, expanding
// {a,b} alternatives first.
func matchPattern(pattern, fileName string) bool {
	for _, p := range expandBraces(pattern) {
		if matched, _ := filepath.Match(p, fileName); matched {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}

	depth := 0
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				prefix, suffix := pattern[:open], pattern[i+1:]
				var out []string
				for _, alt := range splitTopLevel(pattern[open+1 : i]) {
					out = append(out, expandBraces(prefix+alt+suffix)...)
				}
				return out
			}
		}
	}
	return []string{pattern}
}

// splitTopLevel splits on commas that are not nested inside braces.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func settingsFromMap(m map[string]string) *EditorConfigSettings {
	s := &EditorConfigSettings{IndentStyle: m["indent_style"]}
	s.TabWidth = positive(m["tab_width"])
	if m["indent_size"] == "tab" {
		s.IndentSize = s.TabWidth
	} else {
		s.IndentSize = positive(m["indent_size"])
	}

	if s.IndentStyle == "" && s.IndentSize == 0 && s.TabWidth == 0 {
		return nil
	}
	return s
}

func positive(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
