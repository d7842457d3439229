package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// fileStep runs a file write once and then completes. On failure it stays
// on screen with the error until the user quits.
type fileStep struct {
	run     func(state *InstallState) error
	pending string
	err     error
}

func (s *fileStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *fileStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}
	if s.err = s.run(state); s.err != nil {
		return s, nil
	}
	return nil, nil
}

func (s *fileStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	return s.pending + "\n"
}

// NewSaveEnvStep writes the collected configuration to the .env file
func NewSaveEnvStep() Step {
	return &fileStep{
		run:     (*InstallState).SaveEnv,
		pending: "Saving configuration...",
	}
}

// NewInitializeFilesStep writes the embedded persona files to the runtime directory
func NewInitializeFilesStep() Step {
	return &fileStep{
		run:     (*InstallState).InitPersonaFiles,
		pending: "Initializing persona files...",
	}
}
