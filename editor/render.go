package editor

import (
	"markedit/buffer"
	"markedit/config"
	"markedit/ui"

	"github.com/gdamore/tcell/v2"
)

// minEditWidth is the narrowest edit area kept when the listing is shown.
const minEditWidth = 10

func (e *Editor) render() {
	theme := e.cfg.GetTheme()

	defaultStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	e.screen.SetStyle(defaultStyle)
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	if screenH < 2 {
		e.screen.Show()
		return
	}

	left := e.treeLeft(screenW)
	if left > 0 {
		e.dirPane.Theme = theme
		e.dirPane.Render(e.screen, ui.Walk(e.root, e.cfg.Ignore), 0, 0, left, screenH-1)
	}

	e.renderBuffer(left, 0, screenW-left, screenH-1, theme)

	undo, redo := e.history.Depth()
	e.statusBar.Theme = theme
	e.statusBar.Filename = e.buf.Path
	e.statusBar.Dirty = e.buf.Dirty
	e.statusBar.Line = e.buf.Cursor.Line
	e.statusBar.Col = e.buf.Cursor.Col
	e.statusBar.Decoration = e.latch.Pending().String()
	e.statusBar.UndoDepth = undo
	e.statusBar.RedoDepth = redo
	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	e.screen.Show()
}

// treeLeft returns the width taken by the directory listing.
func (e *Editor) treeLeft(screenW int) int {
	if !e.cfg.ShowTree || e.cfg.TreeWidth <= 0 {
		return 0
	}
	if screenW-e.cfg.TreeWidth < minEditWidth {
		return 0
	}
	return e.cfg.TreeWidth
}

func (e *Editor) ensureCursorVisible(width, height int) {
	cur := e.buf.Cursor
	if cur.Line < e.view.scrollY {
		e.view.scrollY = cur.Line
	}
	if cur.Line >= e.view.scrollY+height {
		e.view.scrollY = cur.Line - height + 1
	}
	if cur.Col < e.view.scrollX {
		e.view.scrollX = cur.Col
	}
	if cur.Col >= e.view.scrollX+width {
		e.view.scrollX = cur.Col - width + 1
	}
}

// isMarkupByte reports whether c is one of the decoration delimiters.
func isMarkupByte(c byte) bool {
	return c == '*' || c == '_'
}

func (e *Editor) renderBuffer(x, y, width, height int, theme *config.ColorScheme) {
	if width <= 0 || height <= 0 {
		return
	}
	e.ensureCursorVisible(width, height)

	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	markupStyle := style.Foreground(theme.Markup)

	for row := 0; row < height; row++ {
		lineIdx := e.view.scrollY + row
		if lineIdx >= len(e.buf.Lines) {
			break
		}
		line := e.buf.Lines[lineIdx]
		for col := 0; col < width; col++ {
			i := e.view.scrollX + col
			if i >= len(line) {
				break
			}
			ch, st := rune(line[i]), style
			switch {
			case !buffer.IsPrintable(line[i]):
				ch = '?'
			case isMarkupByte(line[i]):
				st = markupStyle
			}
			e.screen.SetContent(x+col, y+row, ch, nil, st)
		}
	}

	// Block cursor: the cell under the cursor is redrawn in the cursor color.
	cur := e.buf.Cursor
	cx, cy := x+cur.Col-e.view.scrollX, y+cur.Line-e.view.scrollY
	ch, _, _, _ := e.screen.GetContent(cx, cy)
	if ch == 0 {
		ch = ' '
	}
	e.screen.SetContent(cx, cy, ch, nil, style.Background(theme.Cursor).Foreground(theme.Background))
	e.screen.ShowCursor(cx, cy)
}
