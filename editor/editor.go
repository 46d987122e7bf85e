package editor

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"slices"
	"time"

	"markedit/buffer"
	"markedit/clipboardx"
	"markedit/config"
	"markedit/markup"
	"markedit/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Editor struct {
	cfg     *config.Config
	root    string
	buf     *buffer.Buffer
	history *buffer.History
	latch   markup.Latch
	clip    clipboardx.Clipboard

	screen    tcell.Screen
	dirPane   *ui.DirPane
	statusBar *ui.StatusBar
	view      EditorView

	fileWatcher *fsnotify.Watcher
}

// EditorView is the scroll position of the edit area. It is display state
// only and never feeds back into the buffer.
type EditorView struct {
	scrollY int
	scrollX int
}

// DirChangedEvent wakes the event loop after the working directory changed
// so the listing is redrawn.
type DirChangedEvent struct {
	tcell.EventTime
	Path string
}

// New returns an editor over an empty buffer with the listing rooted at root.
func New(cfg *config.Config, root string) *Editor {
	return &Editor{
		cfg:       cfg,
		root:      root,
		buf:       buffer.NewBuffer(),
		history:   buffer.NewHistory(cfg.HistoryLimit),
		clip:      clipboardx.NewSystem(),
		dirPane:   ui.NewDirPane(root),
		statusBar: ui.NewStatusBar(),
	}
}

// Open replaces the buffer with the contents of path and clears history.
func (e *Editor) Open(path string) error {
	buf, err := buffer.NewBufferFromFile(path)
	if err != nil {
		return err
	}
	e.buf = buf
	e.history = buffer.NewHistory(e.cfg.HistoryLimit)
	e.view = EditorView{}
	return nil
}

// View returns a copy of the buffer lines and the cursor position.
func (e *Editor) View() (lines []string, line, col int) {
	return append([]string(nil), e.buf.Lines...), e.buf.Cursor.Line, e.buf.Cursor.Col
}

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

func (e *Editor) Run() error {
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		screen.Fini()
		return fmt.Errorf("init screen: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	if e.cfg.WatchDir {
		stop := e.setupFileWatcher(screen)
		defer stop()
	}

	log.Printf("editor: session started in %s", e.root)
	e.loop(screen)
	log.Printf("editor: session ended")

	screen.Clear()
	screen.Fini()
	return nil
}

// loop renders, waits for one event, handles it and repeats until an exit
// command arrives or the screen is finalized.
func (e *Editor) loop(screen tcell.Screen) {
	e.screen = screen
	for {
		e.render()

		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			cmd, ok := Decode(ev)
			if !ok {
				continue
			}
			e.statusBar.ClearMessage()
			if !e.Dispatch(cmd) {
				return
			}
		case *DirChangedEvent:
			// the next render walks the directory again
		}
	}
}

func (e *Editor) shouldIgnorePath(path string) bool {
	return slices.Contains(e.cfg.Ignore, filepath.Base(path))
}

func (e *Editor) addWatchRecursive(root string) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && e.shouldIgnorePath(path) {
			return filepath.SkipDir
		}
		if err := e.fileWatcher.Add(path); err != nil {
			log.Printf("editor: watch %s: %v", path, err)
		}
		return nil
	})
}

// setupFileWatcher posts a DirChangedEvent whenever something under the root
// changes. The watcher goroutine never touches editor state; it only feeds
// the screen's event queue. The returned func stops the watcher.
func (e *Editor) setupFileWatcher(screen tcell.Screen) (stop func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("editor: directory watcher disabled: %v", err)
		return func() {}
	}
	e.fileWatcher = watcher
	e.addWatchRecursive(e.root)

	go func() {
		debounce := time.NewTimer(100 * time.Millisecond)
		debounce.Stop()
		var last string
		var created []string

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if e.shouldIgnorePath(event.Name) {
					continue
				}
				last = event.Name
				if event.Op&fsnotify.Create != 0 {
					created = append(created, event.Name)
				}
				debounce.Reset(100 * time.Millisecond)

			case <-debounce.C:
				for _, path := range created {
					e.addWatchRecursive(path)
				}
				created = nil
				ev := &DirChangedEvent{Path: last}
				ev.SetEventNow()
				screen.PostEvent(ev)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("editor: watcher: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }
}
