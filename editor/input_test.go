package editor

import (
	"os"
	"path/filepath"
	"testing"

	"markedit/buffer"
	"markedit/clipboardx"
	"markedit/config"
	"markedit/markup"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, lines ...string) *Editor {
	t.Helper()
	cfg := config.Default()
	cfg.WatchDir = false
	e := New(cfg, t.TempDir())
	e.clip = &clipboardx.Memory{}
	if len(lines) > 0 {
		e.buf = buffer.NewBufferFromLines(lines)
	}
	return e
}

func typeString(e *Editor, s string) {
	for i := 0; i < len(s); i++ {
		e.Dispatch(InsertChar{Ch: s[i]})
	}
}

func assertView(t *testing.T, e *Editor, lines []string, line, col int) {
	t.Helper()
	gotLines, gotLine, gotCol := e.View()
	assert.Equal(t, lines, gotLines)
	assert.Equal(t, line, gotLine, "cursor line")
	assert.Equal(t, col, gotCol, "cursor col")
}

func TestBoldInsertAdvancesPastMarkup(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 5}

	e.Dispatch(Decorate{Decoration: markup.Bold})
	e.Dispatch(InsertChar{Ch: '!'})

	assertView(t, e, []string{"hello**!**"}, 0, 10)
}

func TestDecorationIsSingleShot(t *testing.T) {
	e := newTestEditor(t)

	e.Dispatch(Decorate{Decoration: markup.Bold})
	typeString(e, "ab")

	assertView(t, e, []string{"**a**b"}, 0, 6)
	assert.Equal(t, markup.None, e.latch.Pending())
}

func TestNonInsertCommandsKeepLatch(t *testing.T) {
	e := newTestEditor(t, "xy")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 2}

	e.Dispatch(Decorate{Decoration: markup.Underline})
	e.Dispatch(Move{Dir: buffer.Left})
	e.Dispatch(Undo{})
	e.Dispatch(Redo{})
	require.Equal(t, markup.Underline, e.latch.Pending())

	e.Dispatch(InsertChar{Ch: 'z'})
	assertView(t, e, []string{"x_z_y"}, 0, 4)
}

func TestItalicInsert(t *testing.T) {
	e := newTestEditor(t)
	e.Dispatch(Decorate{Decoration: markup.Italic})
	e.Dispatch(InsertChar{Ch: 'i'})
	assertView(t, e, []string{"*i*"}, 0, 3)
}

func TestBackspaceMergesIntoPreviousLine(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	e.buf.Cursor = buffer.Cursor{Line: 1, Col: 0}

	e.Dispatch(DeleteBackward{})

	assertView(t, e, []string{"abcd"}, 0, 2)
}

func TestBackspaceAtOriginRecordsNoHistory(t *testing.T) {
	e := newTestEditor(t, "ab")

	e.Dispatch(DeleteBackward{})

	assertView(t, e, []string{"ab"}, 0, 0)
	assert.False(t, e.history.CanUndo())
}

func TestUndoRedoScenario(t *testing.T) {
	e := newTestEditor(t, "x")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 1}

	e.Dispatch(InsertChar{Ch: 'y'})
	assertView(t, e, []string{"xy"}, 0, 2)

	e.Dispatch(Undo{})
	assertView(t, e, []string{"x"}, 0, 0)

	e.Dispatch(Redo{})
	assertView(t, e, []string{"xy"}, 0, 0)
}

func TestUndoOnEmptyHistoryIsNoop(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 2}

	e.Dispatch(Undo{})
	e.Dispatch(Redo{})

	assertView(t, e, []string{"abc"}, 0, 2)
	undo, redo := e.history.Depth()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
}

func TestNewEditAfterUndoDiscardsRedo(t *testing.T) {
	e := newTestEditor(t)
	typeString(e, "ab")
	e.Dispatch(Undo{})
	require.True(t, e.history.CanRedo())

	e.Dispatch(Newline{})
	e.Dispatch(Redo{})

	assertView(t, e, []string{"", "a"}, 1, 0)
	assert.Equal(t, buffer.Clean, e.history.State())
}

func TestUndoWalksBackThroughEveryMutation(t *testing.T) {
	e := newTestEditor(t)
	typeString(e, "ab")
	e.Dispatch(Newline{})
	e.Dispatch(Decorate{Decoration: markup.Bold})
	typeString(e, "c")
	e.Dispatch(DeleteBackward{})

	want := [][]string{
		{"ab", "**c*"},
		{"ab", "**c**"},
		{"ab", ""},
		{"ab"},
		{"a"},
		{""},
	}
	require.Equal(t, []string{"ab", "**c*"}, e.buf.Lines)
	for _, w := range want[1:] {
		e.Dispatch(Undo{})
		assert.Equal(t, w, e.buf.Lines)
	}
	assert.False(t, e.history.CanUndo())
}

func TestMoveClamps(t *testing.T) {
	e := newTestEditor(t, "hello world", "hi")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 9}

	e.Dispatch(Move{Dir: buffer.Down})
	assertView(t, e, []string{"hello world", "hi"}, 1, 2)

	e.Dispatch(Move{Dir: buffer.Right})
	assertView(t, e, []string{"hello world", "hi"}, 1, 2)
}

func TestExitStopsDispatch(t *testing.T) {
	e := newTestEditor(t)
	assert.False(t, e.Dispatch(Exit{}))
	assert.True(t, e.Dispatch(Move{Dir: buffer.Up}))
}

func TestPasteIsOneUndoStep(t *testing.T) {
	e := newTestEditor(t, "[]")
	e.buf.Cursor = buffer.Cursor{Line: 0, Col: 1}
	e.clip.(*clipboardx.Memory).Text = "a\nb"

	e.Dispatch(Paste{})
	assertView(t, e, []string{"[a", "b]"}, 1, 1)

	e.Dispatch(Undo{})
	assertView(t, e, []string{"[]"}, 0, 0)
}

func TestPasteWithEmptyClipboard(t *testing.T) {
	e := newTestEditor(t, "x")
	e.Dispatch(Paste{})
	assert.False(t, e.history.CanUndo())
	assert.True(t, e.statusBar.IsError)
}

func TestCopyLine(t *testing.T) {
	e := newTestEditor(t, "first", "second")
	e.buf.Cursor = buffer.Cursor{Line: 1, Col: 3}

	e.Dispatch(CopyLine{})

	assert.Equal(t, "second", e.clip.(*clipboardx.Memory).Text)
	assert.False(t, e.history.CanUndo())
}

func TestSaveWritesFile(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, e.Open(path))

	e.Dispatch(Decorate{Decoration: markup.Bold})
	typeString(e, "hi")
	require.True(t, e.buf.Dirty)
	e.Dispatch(Save{})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "**h**i\n", string(data))
	assert.False(t, e.buf.Dirty)
	assert.False(t, e.statusBar.IsError)
}

func TestSaveWithoutPathReportsError(t *testing.T) {
	e := newTestEditor(t, "x")
	e.Dispatch(Save{})
	assert.True(t, e.statusBar.IsError)
	assert.Contains(t, e.statusBar.Message, "no file path")
}

func TestUndoBackToSavedStateIsClean(t *testing.T) {
	e := newTestEditor(t)
	path := filepath.Join(t.TempDir(), "clean.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0644))
	require.NoError(t, e.Open(path))

	e.Dispatch(InsertChar{Ch: 'x'})
	require.True(t, e.buf.Dirty)
	e.Dispatch(Undo{})
	assert.False(t, e.buf.Dirty)
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Exit{}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), DeleteBackward{}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Newline{}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Move{Dir: buffer.Left}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), Move{Dir: buffer.Down}},
		{"undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), Undo{}},
		{"redo", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), Redo{}},
		{"bold", tcell.NewEventKey(tcell.KeyCtrlB, 0, tcell.ModCtrl), Decorate{Decoration: markup.Bold}},
		{"italic", tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl), Decorate{Decoration: markup.Italic}},
		{"underline", tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), Decorate{Decoration: markup.Underline}},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModCtrl), Decorate{Decoration: markup.Bold}},
		{"printable", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), InsertChar{Ch: 'a'}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), InsertChar{Ch: ' '}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Decode(tc.ev)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeIgnoresNonASCIIAndUnboundKeys(t *testing.T) {
	_, ok := Decode(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone))
	assert.False(t, ok)
	_, ok = Decode(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestDecodeIgnoresAltRunes(t *testing.T) {
	_, ok := Decode(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt))
	assert.False(t, ok)
	_, ok = Decode(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt|tcell.ModCtrl))
	assert.False(t, ok)
}

func TestTypeThenBackspaceClearsDirty(t *testing.T) {
	e := newTestEditor(t)
	e.Dispatch(InsertChar{Ch: 'a'})
	require.True(t, e.buf.Dirty)

	e.Dispatch(DeleteBackward{})
	assert.False(t, e.buf.Dirty)
}
