package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/saya/internal/config"
)

type providerChoice struct {
	id    string
	title string
}

// ProviderStep allows selection of the generation API
type ProviderStep struct {
	choices []providerChoice
	cursor  int
}

func NewProviderStep() Step {
	return &ProviderStep{
		choices: []providerChoice{
			{id: config.ProviderGemini, title: "Google Gemini"},
			{id: config.ProviderOpenAI, title: "OpenAI"},
			{id: config.ProviderOpenRouter, title: "OpenRouter"},
			{id: config.ProviderAnthropic, title: "Anthropic"},
		},
	}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.LLM.Provider = s.choices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the generation API:\n\n")
	for i, choice := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", choice.title)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice.title)) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("(press ctrl+c to quit)") + "\n")
	return b.String()
}
