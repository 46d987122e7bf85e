package buffer

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// MaxFileSize is the largest file NewBufferFromFile will load.
const MaxFileSize = 100 * 1024 * 1024

var (
	ErrNoPath   = errors.New("buffer has no file path")
	ErrBinary   = errors.New("binary file")
	ErrTooLarge = errors.New("file too large")
)

// Buffer is an ordered list of lines plus a cursor. Lines is never empty and
// columns are byte offsets.
type Buffer struct {
	Lines  []string
	Path   string
	Cursor Cursor
	Dirty  bool

	savedSnapshot string
}

func NewBuffer() *Buffer {
	return &Buffer{Lines: []string{""}}
}

// NewBufferFromLines builds a buffer over a copy of lines with the cursor at
// the origin. The lines count as the saved content.
func NewBufferFromLines(lines []string) *Buffer {
	b := &Buffer{Lines: append([]string(nil), lines...)}
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	b.savedSnapshot = b.Text()
	return b
}

func NewBufferFromFile(path string) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// New file: empty buffer that saves to path
			b := NewBuffer()
			b.Path = path
			return b, nil
		}
		return nil, err
	}

	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: %w (%d MB, max %d MB)", path, ErrTooLarge,
			info.Size()/(1024*1024), MaxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Binary file detection: check first 8KB for null bytes
	checkLen := min(len(data), 8192)
	for i := 0; i < checkLen; i++ {
		if data[i] == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrBinary)
		}
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimRight(content, "\n")

	b := NewBufferFromLines(strings.Split(content, "\n"))
	b.Path = path
	return b, nil
}

func (b *Buffer) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Save writes the buffer to Path with a single trailing newline.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.Path, []byte(b.Text()+"\n"), 0644); err != nil {
		return fmt.Errorf("save %s: %w", b.Path, err)
	}
	b.MarkSaved()
	return nil
}

func (b *Buffer) MarkSaved() {
	b.savedSnapshot = b.Text()
	b.Dirty = false
}

func (b *Buffer) RecomputeDirty() {
	b.Dirty = b.Text() != b.savedSnapshot
}

// checkInvariants panics if the cursor points outside the buffer. Every
// mutation path keeps the cursor clamped, so reaching the panic is a bug.
func (b *Buffer) checkInvariants() {
	if len(b.Lines) == 0 {
		panic("buffer: no lines")
	}
	if b.Cursor.Line < 0 || b.Cursor.Line >= len(b.Lines) {
		panic(fmt.Sprintf("buffer: cursor line %d out of range [0,%d)", b.Cursor.Line, len(b.Lines)))
	}
	if lineLen := len(b.Lines[b.Cursor.Line]); b.Cursor.Col < 0 || b.Cursor.Col > lineLen {
		panic(fmt.Sprintf("buffer: cursor col %d out of range [0,%d] on line %d", b.Cursor.Col, lineLen, b.Cursor.Line))
	}
}

func (b *Buffer) clampCol() {
	if lineLen := len(b.Lines[b.Cursor.Line]); b.Cursor.Col > lineLen {
		b.Cursor.Col = lineLen
	}
}

// InsertText inserts a fragment without line breaks at the cursor and moves
// the cursor past all of it, markup included.
func (b *Buffer) InsertText(text string) {
	b.checkInvariants()
	if text == "" {
		return
	}
	line := b.Lines[b.Cursor.Line]
	b.Lines[b.Cursor.Line] = line[:b.Cursor.Col] + text + line[b.Cursor.Col:]
	b.Cursor.Col += len(text)
	b.RecomputeDirty()
}

func (b *Buffer) InsertChar(ch byte) {
	b.InsertText(string(ch))
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	b.checkInvariants()
	line := b.Lines[b.Cursor.Line]
	before, after := line[:b.Cursor.Col], line[b.Cursor.Col:]

	b.Lines[b.Cursor.Line] = before
	newLines := make([]string, 0, len(b.Lines)+1)
	newLines = append(newLines, b.Lines[:b.Cursor.Line+1]...)
	newLines = append(newLines, after)
	newLines = append(newLines, b.Lines[b.Cursor.Line+1:]...)
	b.Lines = newLines

	b.Cursor.Line++
	b.Cursor.Col = 0
	b.RecomputeDirty()
}

// CanBackspace reports whether Backspace would change the buffer.
func (b *Buffer) CanBackspace() bool {
	return b.Cursor.Col > 0 || b.Cursor.Line > 0
}

// Backspace removes the byte before the cursor, or joins the current line
// onto the previous one when the cursor is at column 0.
func (b *Buffer) Backspace() bool {
	b.checkInvariants()
	if !b.CanBackspace() {
		return false
	}

	if b.Cursor.Col > 0 {
		line := b.Lines[b.Cursor.Line]
		b.Lines[b.Cursor.Line] = line[:b.Cursor.Col-1] + line[b.Cursor.Col:]
		b.Cursor.Col--
	} else {
		prevLen := len(b.Lines[b.Cursor.Line-1])
		b.Lines[b.Cursor.Line-1] += b.Lines[b.Cursor.Line]
		b.Lines = append(b.Lines[:b.Cursor.Line], b.Lines[b.Cursor.Line+1:]...)
		b.Cursor.Line--
		b.Cursor.Col = prevLen
	}
	b.RecomputeDirty()
	return true
}

// InsertPaste inserts multi-line text at the cursor. Carriage returns and
// bytes outside printable ASCII are dropped.
func (b *Buffer) InsertPaste(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			b.InsertNewline()
		}
		b.InsertText(printable(part))
	}
}

// HasPrintable reports whether InsertPaste(text) would change anything.
func HasPrintable(text string) bool {
	return strings.Contains(text, "\n") || printable(text) != ""
}

func printable(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if IsPrintable(s[i]) {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// IsPrintable reports whether c is in the printable ASCII range.
func IsPrintable(c byte) bool {
	return c >= 32 && c <= 126
}

func (b *Buffer) MoveLeft() {
	if b.Cursor.Col > 0 {
		b.Cursor.Col--
	}
}

func (b *Buffer) MoveRight() {
	if b.Cursor.Col < len(b.Lines[b.Cursor.Line]) {
		b.Cursor.Col++
	}
}

func (b *Buffer) MoveUp() {
	if b.Cursor.Line > 0 {
		b.Cursor.Line--
		b.clampCol()
	}
}

func (b *Buffer) MoveDown() {
	if b.Cursor.Line < len(b.Lines)-1 {
		b.Cursor.Line++
		b.clampCol()
	}
}
