package editor

import (
	"log"
	"path/filepath"
	"unicode"

	"markedit/buffer"
	"markedit/markup"

	"github.com/gdamore/tcell/v2"
)

// Command is one decoded editing action.
type Command interface {
	command()
}

type (
	InsertChar     struct{ Ch byte }
	DeleteBackward struct{}
	Newline        struct{}
	Move           struct{ Dir buffer.Direction }
	Decorate       struct{ Decoration markup.Decoration }
	Undo           struct{}
	Redo           struct{}
	Save           struct{}
	CopyLine       struct{}
	Paste          struct{}
	Exit           struct{}
)

func (InsertChar) command()     {}
func (DeleteBackward) command() {}
func (Newline) command()        {}
func (Move) command()           {}
func (Decorate) command()       {}
func (Undo) command()           {}
func (Redo) command()           {}
func (Save) command()           {}
func (CopyLine) command()       {}
func (Paste) command()          {}
func (Exit) command()           {}

// Decode maps a key event to a command. Keys with no binding report false.
func Decode(ev *tcell.EventKey) (Command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		return Exit{}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return DeleteBackward{}, true
	case tcell.KeyEnter:
		return Newline{}, true
	case tcell.KeyLeft:
		return Move{Dir: buffer.Left}, true
	case tcell.KeyRight:
		return Move{Dir: buffer.Right}, true
	case tcell.KeyUp:
		return Move{Dir: buffer.Up}, true
	case tcell.KeyDown:
		return Move{Dir: buffer.Down}, true
	case tcell.KeyCtrlZ:
		return Undo{}, true
	case tcell.KeyCtrlY:
		return Redo{}, true
	case tcell.KeyCtrlB:
		return Decorate{Decoration: markup.Bold}, true
	case tcell.KeyCtrlT:
		return Decorate{Decoration: markup.Italic}, true
	case tcell.KeyCtrlU:
		return Decorate{Decoration: markup.Underline}, true
	case tcell.KeyCtrlS:
		return Save{}, true
	case tcell.KeyCtrlC:
		return CopyLine{}, true
	case tcell.KeyCtrlV:
		return Paste{}, true
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModMeta) != 0 {
			return nil, false
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return decodeCtrlRune(unicode.ToLower(r))
		}
		if r < 0x80 && buffer.IsPrintable(byte(r)) {
			return InsertChar{Ch: byte(r)}, true
		}
	}
	return nil, false
}

// Some terminals report Ctrl+letter as a rune with the Ctrl modifier.
func decodeCtrlRune(r rune) (Command, bool) {
	switch r {
	case 'q':
		return Exit{}, true
	case 'z':
		return Undo{}, true
	case 'y':
		return Redo{}, true
	case 'b':
		return Decorate{Decoration: markup.Bold}, true
	case 't':
		return Decorate{Decoration: markup.Italic}, true
	case 'u':
		return Decorate{Decoration: markup.Underline}, true
	case 's':
		return Save{}, true
	case 'c':
		return CopyLine{}, true
	case 'v':
		return Paste{}, true
	}
	return nil, false
}

// Dispatch applies cmd to the editor state. It returns false when the
// command ends the session.
func (e *Editor) Dispatch(cmd Command) bool {
	switch c := cmd.(type) {
	case Exit:
		return false

	case InsertChar:
		text := markup.Annotate(c.Ch, e.latch.Take())
		e.history.Capture(e.buf.Snapshot())
		e.buf.InsertText(text)

	case Newline:
		e.history.Capture(e.buf.Snapshot())
		e.buf.InsertNewline()

	case DeleteBackward:
		if e.buf.CanBackspace() {
			e.history.Capture(e.buf.Snapshot())
			e.buf.Backspace()
		}

	case Move:
		e.buf.Move(c.Dir)

	case Decorate:
		e.latch.Arm(c.Decoration)

	case Undo:
		if prev, ok := e.history.Undo(e.buf.Snapshot()); ok {
			e.buf.Restore(prev)
		}

	case Redo:
		if next, ok := e.history.Redo(e.buf.Snapshot()); ok {
			e.buf.Restore(next)
		}

	case Save:
		e.save()

	case CopyLine:
		e.copyLine()

	case Paste:
		e.paste()
	}
	return true
}

func (e *Editor) save() {
	if err := e.buf.Save(); err != nil {
		log.Printf("editor: save failed: %v", err)
		e.statusBar.SetMessage("Error: "+err.Error(), true)
		return
	}
	e.statusBar.SetMessage("Saved "+filepath.Base(e.buf.Path), false)
}

func (e *Editor) copyLine() {
	line := e.buf.Lines[e.buf.Cursor.Line]
	if err := e.clip.Write(line); err != nil {
		log.Printf("editor: copy failed: %v", err)
		e.statusBar.SetMessage("Clipboard unavailable", true)
		return
	}
	e.statusBar.SetMessage("Copied line", false)
}

func (e *Editor) paste() {
	text, err := e.clip.Read()
	if err != nil {
		e.statusBar.SetMessage("Nothing to paste", true)
		return
	}
	if !buffer.HasPrintable(text) {
		return
	}
	e.history.Capture(e.buf.Snapshot())
	e.buf.InsertPaste(text)
}
