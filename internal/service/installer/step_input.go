package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep reads one line of text and hands it to apply. A rejected
// value keeps the step open and shows the error.
type InputStep struct {
	input  textinput.Model
	prompt func(state *InstallState) string
	apply  func(value string, state *InstallState) error
	err    error
}

type inputOptions struct {
	placeholder string
	secret      bool
}

func newInputStep(
	opts inputOptions,
	prompt func(state *InstallState) string,
	apply func(value string, state *InstallState) error,
) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = opts.placeholder
	if opts.secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return &InputStep{
		input:  ti,
		prompt: prompt,
		apply:  apply,
	}
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if s.err = s.apply(strings.TrimSpace(s.input.Value()), state); s.err != nil {
			return s, nil
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.prompt(state) + "\n\n")
	b.WriteString(s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n")
	}
	b.WriteString(hintStyle.Render("(press enter to confirm)") + "\n")
	return b.String()
}
