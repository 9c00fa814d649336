package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"lineedit/buffer"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabWidth      int    `json:"tab_width"`
	Theme         string `json:"theme"`
	Backup        bool   `json:"backup"`
	RestoreCursor bool   `json:"restore_cursor"`
	LogFile       string `json:"log_file"`
}

// LineConfig resolves the line settings for the file at path. A tab_width
// (or else indent_size) from .editorconfig wins over the configured width.
func (c *Config) LineConfig(path string) buffer.LineConfig {
	lc := buffer.LineConfig{TabWidth: c.TabWidth}
	if lc.TabWidth <= 0 {
		lc.TabWidth = buffer.DefaultTabWidth
	}
	if path == "" {
		return lc
	}
	if ec := FindEditorConfig(path); ec != nil {
		switch {
		case ec.TabWidth > 0:
			lc.TabWidth = ec.TabWidth
		case ec.IndentSize > 0:
			lc.TabWidth = ec.IndentSize
		}
	}
	return lc
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	InsertModeBg    tcell.Color
	ErrorFg         tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		InsertModeBg:    tcell.ColorGreen,
		ErrorFg:         tcell.ColorRed,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		InsertModeBg:    tcell.ColorDarkGreen,
		ErrorFg:         tcell.ColorDarkRed,
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		InsertModeBg:    tcell.NewRGBColor(166, 226, 46),
		ErrorFg:         tcell.NewRGBColor(249, 38, 114),
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		StatusBarBg:     tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		InsertModeBg:    tcell.NewRGBColor(163, 190, 140),
		ErrorFg:         tcell.NewRGBColor(191, 97, 106),
	},
	"gruvbox": {
		Name:            "Gruvbox Dark",
		Background:      tcell.NewRGBColor(40, 40, 40),
		Foreground:      tcell.NewRGBColor(235, 219, 178),
		StatusBarBg:     tcell.NewRGBColor(60, 56, 54),
		StatusBarFg:     tcell.NewRGBColor(235, 219, 178),
		StatusBarModeBg: tcell.NewRGBColor(184, 187, 38),
		InsertModeBg:    tcell.NewRGBColor(250, 189, 47),
		ErrorFg:         tcell.NewRGBColor(251, 73, 52),
	},
}

func Default() *Config {
	return &Config{
		TabWidth:      buffer.DefaultTabWidth,
		Theme:         "monokai",
		Backup:        true,
		RestoreCursor: true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lineedit", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
