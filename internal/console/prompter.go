// Package console drives a blackjack table from a terminal: a bubbletea
// prompt for human seats and a styled renderer for table events.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Asker asks the person at the terminal one question at a time
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
	Warn(format string, args ...any)
}

// Prompter runs a single bubbletea program for the life of a game. Ask shows
// a question and blocks until the user submits a line. Lines written through
// the Prompter are printed above the live prompt so table output and input
// never overwrite each other.
type Prompter struct {
	model   *InputModel
	program *tea.Program
	out     io.Writer
	styles  Styles

	startOnce sync.Once
	done      chan struct{}
	mu        sync.Mutex
	pending   bytes.Buffer
}

var (
	_ Asker     = (*Prompter)(nil)
	_ io.Writer = (*Prompter)(nil)
)

// NewPrompter creates a prompter reading keys from in and drawing on out
func NewPrompter(in io.Reader, out io.Writer, styles Styles) *Prompter {
	p := &Prompter{
		model:  NewInputModel(styles),
		out:    out,
		styles: styles,
		done:   make(chan struct{}),
	}
	p.program = tea.NewProgram(p.model,
		tea.WithInput(&closeNotifier{r: in, onEOF: func() { p.program.Send(inputClosedMsg{}) }}),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	return p
}

func (p *Prompter) start() {
	p.startOnce.Do(func() {
		go func() {
			defer close(p.done)
			_, _ = p.program.Run()
		}()
	})
}

func (p *Prompter) finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Ask shows question and returns the trimmed answer. It returns io.EOF once
// the input is exhausted and ErrInterrupted if the user pressed ctrl+c.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	p.start()

	// an answer that raced a cancelled prompt belongs to that prompt
	select {
	case <-p.model.Answers():
	default:
	}

	if p.finished() {
		return "", io.EOF
	}
	p.program.Send(promptMsg{question: question})

	select {
	case <-ctx.Done():
		p.program.Send(cancelPromptMsg{})
		return "", ctx.Err()
	case a := <-p.model.Answers():
		if a.Err != nil {
			return "", fmt.Errorf("reading answer: %w", a.Err)
		}
		return a.Text, nil
	case <-p.done:
		return "", io.EOF
	}
}

// Warn tells the user their last answer was rejected
func (p *Prompter) Warn(format string, args ...any) {
	p.println(p.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Write prints complete lines above the prompt. A trailing partial line is
// held until its newline arrives.
func (p *Prompter) Write(b []byte) (int, error) {
	p.mu.Lock()
	p.pending.Write(b)
	var lines []string
	for {
		i := bytes.IndexByte(p.pending.Bytes(), '\n')
		if i < 0 {
			break
		}
		lines = append(lines, string(p.pending.Next(i + 1)[:i]))
	}
	p.mu.Unlock()

	for _, line := range lines {
		p.println(line)
	}
	return len(b), nil
}

func (p *Prompter) println(line string) {
	p.start()
	if p.finished() {
		fmt.Fprintln(p.out, line)
		return
	}
	p.program.Println(line)
}

// Close stops the program and restores the terminal
func (p *Prompter) Close() {
	p.start()
	p.program.Quit()
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()
	if rest := strings.TrimRight(p.pending.String(), "\n"); rest != "" {
		fmt.Fprintln(p.out, rest)
	}
	p.pending.Reset()
}

// closeNotifier reports the end of input to the program, which otherwise keeps
// waiting for keys that will never come.
type closeNotifier struct {
	r     io.Reader
	once  sync.Once
	onEOF func()
}

func (c *closeNotifier) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	if err != nil {
		c.once.Do(c.onEOF)
	}
	return n, err
}
