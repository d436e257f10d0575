package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyEnter is returned for both carriage return and line feed.
const KeyEnter = '\n'

// ErrInterrupted is returned when the user presses Ctrl-C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// Confirmer shows a prompt and waits for a single key.
type Confirmer interface {
	// Confirm displays prompt and blocks until a key is pressed. Enter is
	// reported as KeyEnter.
	Confirm(prompt string) (rune, error)
}

// TerminalConfirmer reads keys from In and writes prompts to Out.
type TerminalConfirmer struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalConfirmer returns a confirmer bound to stdin, prompting on
// stderr so stdout stays clean for results.
func NewTerminalConfirmer() *TerminalConfirmer {
	return &TerminalConfirmer{In: os.Stdin, Out: os.Stderr}
}

// Confirm implements Confirmer. On a terminal it switches to raw mode and
// reads one key; otherwise it reads one line and returns its first rune, or
// KeyEnter for an empty line.
func (c *TerminalConfirmer) Confirm(prompt string) (rune, error) {
	if prompt != "" {
		fmt.Fprint(c.Out, prompt)
	}

	fd := int(c.In.Fd())
	if !term.IsTerminal(fd) {
		return readLineKey(c.In)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		term.Restore(fd, state)
		fmt.Fprintln(c.Out)
	}()

	buf := make([]byte, 1)
	if _, err := c.In.Read(buf); err != nil {
		return 0, fmt.Errorf("failed to read key: %w", err)
	}
	return normalizeKey(rune(buf[0]))
}

// readLineKey reads up to the end of the line from r.
func readLineKey(r io.Reader) (rune, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return 0, fmt.Errorf("failed to read answer: %w", err)
	}
	for _, ch := range line {
		return normalizeKey(ch)
	}
	return KeyEnter, nil
}

func normalizeKey(k rune) (rune, error) {
	switch k {
	case '\r', '\n':
		return KeyEnter, nil
	case 3: // Ctrl-C in raw mode
		return 0, ErrInterrupted
	}
	return k, nil
}

// StaticConfirmer answers every prompt with Key without reading input.
type StaticConfirmer struct {
	Key rune
}

// Confirm implements Confirmer.
func (s StaticConfirmer) Confirm(string) (rune, error) {
	return s.Key, nil
}
