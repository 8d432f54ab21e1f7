package study

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console is the line-oriented terminal the session talks through.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole wraps the given input and output streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Prompt writes label and reads one line, returned without its line
// terminator. It returns io.EOF once the input is exhausted.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Printf writes formatted output.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a single line.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.out, s)
}
