package ui

import (
	"fmt"
	"path/filepath"

	"markedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type StatusBar struct {
	Filename   string
	Dirty      bool
	Line       int
	Col        int
	Decoration string // armed decoration, empty when none
	UndoDepth  int
	RedoDepth  int
	Message    string // temporary status message
	IsError    bool
	Theme      *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetMessage shows msg until the next key press.
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.Message = msg
	s.IsError = isError
}

func (s *StatusBar) ClearMessage() {
	s.Message = ""
	s.IsError = false
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorBlack).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	if s.Decoration != "" {
		col += drawString(screen, col, y, x+width-col, " "+s.Decoration+" ", modeStyle)
	}
	col += drawString(screen, col, y, x+width-col, " ", style)

	if s.Message != "" {
		msgStyle := style
		if s.IsError {
			msgStyle = style.Foreground(tcell.ColorRed)
		}
		drawString(screen, col, y, x+width-col, s.Message, msgStyle)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	} else {
		fname = filepath.Base(fname)
	}
	if s.Dirty {
		fname += " ●"
	}
	col += drawString(screen, col, y, x+width-col, fname, style)

	right := fmt.Sprintf("undo %d │ redo %d │ Ln %d, Col %d ", s.UndoDepth, s.RedoDepth, s.Line+1, s.Col+1)
	rightStart := x + width - runewidth.StringWidth(right)
	if rightStart > col+2 {
		drawString(screen, rightStart, y, x+width-rightStart, right, style)
	}
}
