package clipboardx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend accepted the request.
var ErrUnavailable = errors.New("clipboard unavailable")

type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System talks to the desktop clipboard, trying the native API, then the
// usual command line helpers, then an OSC 52 escape on the terminal. The
// last written text is kept so paste works even without a backend.
type System struct {
	// Term receives the OSC 52 sequence. Nil disables it.
	Term io.Writer

	last string
}

func NewSystem() *System {
	s := &System{}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		s.Term = os.Stdout
	}
	return s
}

func (s *System) Write(text string) error {
	s.last = text
	ok := false

	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	if writeWithCommands(text) {
		ok = true
	}
	if s.writeOSC52(text) {
		ok = true
	}

	if !ok {
		return ErrUnavailable
	}
	return nil
}

func (s *System) Read() (string, error) {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text, nil
	}
	if text, ok := readWithCommands(); ok && text != "" {
		return text, nil
	}
	if s.last != "" {
		return s.last, nil
	}
	return "", ErrUnavailable
}

type helper struct {
	name string
	args []string
}

var writeHelpers = []helper{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var readHelpers = []helper{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

func writeWithCommands(text string) bool {
	ok := false
	for _, h := range writeHelpers {
		if _, err := exec.LookPath(h.name); err != nil {
			continue
		}
		cmd := exec.Command(h.name, h.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithCommands() (string, bool) {
	for _, h := range readHelpers {
		if _, err := exec.LookPath(h.name); err != nil {
			continue
		}
		out, err := exec.Command(h.name, h.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func (s *System) writeOSC52(text string) bool {
	if text == "" || s.Term == nil {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(s.Term, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}

// Memory is an in-process clipboard.
type Memory struct {
	Text string
}

func (m *Memory) Read() (string, error) {
	if m.Text == "" {
		return "", ErrUnavailable
	}
	return m.Text, nil
}

func (m *Memory) Write(text string) error {
	m.Text = text
	return nil
}
