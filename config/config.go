package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TreeWidth    int      `json:"tree_width"`
	ShowTree     bool     `json:"show_tree"`
	Theme        string   `json:"theme"`
	HistoryLimit int      `json:"history_limit"` // <= 0 keeps every undo step
	WatchDir     bool     `json:"watch_dir"`
	Ignore       []string `json:"ignore"`
	LogFile      string   `json:"log_file"`
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Cursor          tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	TreeHeaderFg    tcell.Color
	TreeDirFg       tcell.Color
	TreeFileFg      tcell.Color
	TreeBorder      tcell.Color
	Markup          tcell.Color
}

const defaultTheme = "monokai"

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		Cursor:          tcell.ColorWhite,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		TreeHeaderFg:    tcell.ColorYellow,
		TreeDirFg:       tcell.ColorBlue,
		TreeFileFg:      tcell.ColorWhite,
		TreeBorder:      tcell.ColorGray,
		Markup:          tcell.ColorGray,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Cursor:          tcell.ColorBlack,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		TreeHeaderFg:    tcell.ColorBlue,
		TreeDirFg:       tcell.ColorBlue,
		TreeFileFg:      tcell.ColorBlack,
		TreeBorder:      tcell.ColorGray,
		Markup:          tcell.ColorGray,
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		Cursor:          tcell.NewRGBColor(248, 248, 240),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		TreeHeaderFg:    tcell.NewRGBColor(249, 38, 114),
		TreeDirFg:       tcell.NewRGBColor(102, 217, 239),
		TreeFileFg:      tcell.NewRGBColor(248, 248, 242),
		TreeBorder:      tcell.NewRGBColor(144, 144, 128),
		Markup:          tcell.NewRGBColor(117, 113, 94),
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		Cursor:          tcell.NewRGBColor(216, 222, 233),
		StatusBarBg:     tcell.NewRGBColor(59, 66, 82),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		TreeHeaderFg:    tcell.NewRGBColor(136, 192, 208),
		TreeDirFg:       tcell.NewRGBColor(129, 161, 193),
		TreeFileFg:      tcell.NewRGBColor(216, 222, 233),
		TreeBorder:      tcell.NewRGBColor(76, 86, 106),
		Markup:          tcell.NewRGBColor(97, 110, 136),
	},
}

func Default() *Config {
	return &Config{
		TreeWidth:    28,
		ShowTree:     true,
		Theme:        defaultTheme,
		HistoryLimit: 1000,
		WatchDir:     true,
		Ignore:       []string{".git", "node_modules", "__pycache__", "target", ".DS_Store"},
		LogFile:      defaultLogPath(),
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes[defaultTheme]
	}
	return theme
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "markedit", "markedit.log")
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "markedit", "settings.json")
}

// Load reads the settings file over the defaults. A missing file is not an
// error.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TreeWidth < 0 {
		cfg.TreeWidth = 0
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
