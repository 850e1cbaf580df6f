package console

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by Ask when the user presses ctrl+c or esc
var ErrInterrupted = errors.New("interrupted")

// Answer is one submitted line, or the reason no line will come
type Answer struct {
	Text string
	Err  error
}

type (
	promptMsg       struct{ question string }
	cancelPromptMsg struct{}
	inputClosedMsg  struct{}
)

// InputModel is the bubbletea model behind a Prompter. It shows the pending
// question above a text input and delivers each submitted line on Answers.
// Keys typed while no question is pending are discarded.
type InputModel struct {
	input    textinput.Model
	styles   Styles
	question string
	pending  bool
	closed   bool
	answers  chan Answer
}

// NewInputModel creates an input model that renders with styles
func NewInputModel(styles Styles) *InputModel {
	ti := textinput.New()
	ti.Placeholder = "type an answer and press enter"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = styles.Prompt
	ti.Prompt = "> "

	return &InputModel{
		input:   ti,
		styles:  styles,
		answers: make(chan Answer, 1),
	}
}

// Answers delivers submitted lines. It holds at most one unread answer.
func (m *InputModel) Answers() <-chan Answer {
	return m.answers
}

// Pending reports whether a question is waiting for an answer
func (m *InputModel) Pending() bool {
	return m.pending
}

func (m *InputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case promptMsg:
		if m.closed {
			m.deliver(Answer{Err: io.EOF})
			return m, nil
		}
		m.question = msg.question
		m.pending = true
		m.input.Reset()
		return m, nil

	case cancelPromptMsg:
		m.pending = false
		m.input.Reset()
		return m, nil

	case inputClosedMsg:
		m.closed = true
		if m.pending {
			m.pending = false
			m.deliver(Answer{Err: io.EOF})
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.pending = false
			m.deliver(Answer{Err: ErrInterrupted})
			return m, tea.Quit
		case "enter", "ctrl+j":
			if !m.pending {
				m.input.Reset()
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			m.pending = false
			m.input.Reset()
			m.deliver(Answer{Text: text})
			return m, tea.Println(m.styles.Prompt.Render(m.question) + " " + text)
		}
		if !m.pending {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// deliver hands an answer to Ask without ever blocking the event loop
func (m *InputModel) deliver(a Answer) {
	select {
	case m.answers <- a:
	default:
	}
}

func (m *InputModel) View() string {
	if !m.pending {
		return ""
	}
	return m.styles.Prompt.Render(m.question) + "\n" + m.input.View() + "\n"
}
