package iocli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio is the production IO bound to os.Stdin and os.Stdout. Password
// input disables terminal echo when stdin is a terminal and falls back to
// plain line input when it is not (piped input).
type Stdio struct{}

func NewStdio() IO {
	return &Stdio{}
}

func (s *Stdio) Println(a ...any) { fmt.Println(a...) }

func (s *Stdio) Printf(format string, a ...any) { fmt.Printf(format, a...) }

// Write streams raw bytes to stdout without prompt formatting, for
// commands that dump document content.
func (s *Stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

// ReadInput prints the prompt and reads one line, trimmed of surrounding
// whitespace.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword prints the prompt and reads a line with echo disabled.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return s.ReadInput(prompt)
	}
	fmt.Print(prompt)
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
