// Package console implements ports.Console over a reader/writer pair,
// normally stdin and stdout.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samirrijal/trainboard/internal/core/domain"
)

// Console reads newline-terminated lines and writes raw text.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a console over r and w.
func New(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// ReadLine returns the next line without its "\n" or "\r\n".
// A final line without a terminator is still returned; after that the
// console reports domain.ErrInputClosed.
func (c *Console) ReadLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimSuffix(line, "\r"), nil
			}
			return "", domain.ErrInputClosed
		}
		return "", fmt.Errorf("read line: %w: %v", domain.ErrTransientIO, err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Write prints s.
func (c *Console) Write(s string) error {
	if _, err := io.WriteString(c.out, s); err != nil {
		return fmt.Errorf("write: %w: %v", domain.ErrTransientIO, err)
	}
	return nil
}
