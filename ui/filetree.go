package ui

import (
	"os"
	"path/filepath"
	"slices"
	"sort"

	"markedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Depth int
}

// Walk lists root recursively in depth-first pre-order. Directories come
// before files and each group is sorted by name. Entries directly under root
// have depth 0. Names in ignore are skipped along with their contents.
func Walk(root string, ignore []string) []Entry {
	var out []Entry
	walkDir(root, 0, ignore, &out)
	return out
}

func walkDir(dir string, depth int, ignore []string, out *[]Entry) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var dirs, files []Entry
	for _, e := range entries {
		name := e.Name()
		if slices.Contains(ignore, name) {
			continue
		}
		entry := Entry{
			Name:  name,
			Path:  filepath.Join(dir, name),
			IsDir: e.IsDir(),
			Depth: depth,
		}
		if entry.IsDir {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, d := range dirs {
		*out = append(*out, d)
		walkDir(d.Path, depth+1, ignore, out)
	}
	*out = append(*out, files...)
}

// DirPane draws a directory listing. It holds no listing of its own; the
// caller passes a fresh one on every frame.
type DirPane struct {
	Root  string
	Theme *config.ColorScheme
}

func NewDirPane(root string) *DirPane {
	return &DirPane{Root: root}
}

func (p *DirPane) Render(screen tcell.Screen, entries []Entry, x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	theme := p.Theme
	if theme == nil {
		theme = config.Themes["monokai"]
	}

	bgStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.TreeFileFg)
	dirStyle := bgStyle.Foreground(theme.TreeDirFg).Bold(true)
	headerStyle := bgStyle.Foreground(theme.TreeHeaderFg).Bold(true)
	borderStyle := bgStyle.Foreground(theme.TreeBorder)

	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			screen.SetContent(cx, cy, ' ', nil, bgStyle)
		}
	}

	inner := width - 1
	title := filepath.Base(p.Root)
	if title == "." || title == string(filepath.Separator) || title == "" {
		title = "EXPLORER"
	}
	drawString(screen, x, y, inner, title, headerStyle)

	row := y + 1
	for _, e := range entries {
		if row >= y+height {
			break
		}
		style := bgStyle
		label := e.Name
		if e.IsDir {
			style = dirStyle
			label += "/"
		}
		indent := e.Depth * 2
		if indent < inner {
			drawString(screen, x+indent, row, inner-indent, label, style)
		}
		row++
	}

	for cy := y; cy < y+height; cy++ {
		screen.SetContent(x+width-1, cy, '│', nil, borderStyle)
	}
}

// drawString writes s at (x, y), truncated to width display cells.
func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	if width <= 0 {
		return 0
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}
