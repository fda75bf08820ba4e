// Package console implements the interactive terminal: coloured status
// lines on the output and a single reader goroutine on the input.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Console struct {
	out    io.Writer
	styles styles
	lines  chan string

	mu sync.Mutex
}

// New starts reading in line by line. The reader goroutine lives until in
// is exhausted; ReadLine then reports io.EOF.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
		lines:  make(chan string),
	}
	go c.scan(in)
	return c
}

func (c *Console) scan(in io.Reader) {
	defer close(c.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
}

// ReadLine returns the next input line. A cancelled ctx wins over a
// pending line, which stays queued for the next caller.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func (c *Console) Info(msg string)    { c.println(c.styles.info.Render(msg)) }
func (c *Console) Success(msg string) { c.println(c.styles.success.Render("✓ " + msg)) }
func (c *Console) Warn(msg string)    { c.println(c.styles.warn.Render(msg)) }
func (c *Console) Error(msg string)   { c.println(c.styles.err.Render("✗ Error: " + msg)) }

// Section prints body line by line so the text is not padded to a block.
func (c *Console) Section(title, body string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = c.styles.body.Render(line)
		}
	}
	c.println("\n" + c.styles.heading.Render(title+":"))
	c.println(strings.Join(lines, "\n"))
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}
