package installer

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandevgo/saya/configs"
	"github.com/sandevgo/saya/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typeText(step Step, state *InstallState, text string) Step {
	for _, r := range text {
		step, _ = step.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, state)
	}
	return step
}

func TestProviderStep(t *testing.T) {
	state := NewInstallState(t.TempDir())
	step := NewProviderStep()

	step, _ = step.Update(down, state)
	step, _ = step.Update(down, state)
	next, _ := step.Update(enter, state)

	assert.Nil(t, next)
	assert.Equal(t, config.ProviderOpenRouter, state.LLM.Provider)
}

func TestOwnerIDStep(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		state := NewInstallState(t.TempDir())
		step := typeText(NewOwnerIDStep(), state, "354943958")
		next, _ := step.Update(enter, state)
		assert.Nil(t, next)
		assert.Equal(t, int64(354943958), state.Telegram.OwnerID)
	})

	t.Run("empty means no owner", func(t *testing.T) {
		state := NewInstallState(t.TempDir())
		next, _ := NewOwnerIDStep().Update(enter, state)
		assert.Nil(t, next)
		assert.Zero(t, state.Telegram.OwnerID)
	})

	t.Run("invalid stays open", func(t *testing.T) {
		state := NewInstallState(t.TempDir())
		step := typeText(NewOwnerIDStep(), state, "abc")
		next, _ := step.Update(enter, state)
		require.NotNil(t, next)
		assert.Contains(t, next.View(state), "invalid user id")
	})
}

func TestPortStep_Invalid(t *testing.T) {
	state := NewInstallState(t.TempDir())
	step := typeText(NewPortStep(), state, "70000")
	next, _ := step.Update(enter, state)
	require.NotNil(t, next)
	assert.Zero(t, state.App.HTTPPort)
}

func TestAPIKeyStep_Required(t *testing.T) {
	state := NewInstallState(t.TempDir())
	state.LLM.Provider = config.ProviderGemini

	step := NewAPIKeyStep()
	assert.Contains(t, step.View(state), "Gemini API Key")

	next, _ := step.Update(enter, state)
	require.NotNil(t, next)

	next = typeText(next, state, "g-key")
	next, _ = next.Update(enter, state)
	assert.Nil(t, next)
	assert.Equal(t, "g-key", state.LLM.APIKey)
}

func TestSaveEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")
	state := NewInstallState(dir)
	state.LLM.Provider = config.ProviderGemini
	state.LLM.APIKey = "g-key"
	state.Telegram.Token = "123:abc"
	state.Telegram.OwnerID = 354943958
	state.App.HTTPPort = 9090

	require.NoError(t, state.SaveEnv())

	got, err := godotenv.Read(state.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SAYA_LLM_PROVIDER":  "gemini",
		"SAYA_LLM_API_KEY":   "g-key",
		"TELEGRAM_BOT_TOKEN": "123:abc",
		"SAYA_OWNER_ID":      "354943958",
		"PORT":               "9090",
	}, got)

	info, err := os.Stat(state.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveEnv_RefusesOverwrite(t *testing.T) {
	state := NewInstallState(t.TempDir())
	require.NoError(t, os.WriteFile(state.EnvPath(), []byte("KEEP=1\n"), 0o600))

	err := state.SaveEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(state.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(data))
}

func TestInitPersonaFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "OWNER.md"), []byte("edited"), 0o644))

	state := NewInstallState(dir)
	require.NoError(t, state.InitPersonaFiles())

	want, err := configs.FS.ReadFile("PERSONA.md")
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "PERSONA.md"))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	owner, err := os.ReadFile(filepath.Join(dir, "OWNER.md"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(owner))
}

func TestWizard_RunsAllSteps(t *testing.T) {
	dir := t.TempDir()
	var m tea.Model = initialModel(NewInstallState(dir))

	send := func(msg tea.Msg) {
		m, _ = m.Update(msg)
	}
	typeAll := func(text string) {
		for _, r := range text {
			send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		send(enter)
	}

	send(enter)        // gemini
	typeAll("g-key")   // api key
	typeAll("123:abc") // token
	typeAll("")        // owner id
	typeAll("")        // owner name
	typeAll("")        // port
	send(nextMsg{})    // save env
	send(nextMsg{})    // persona files

	final := m.(model)
	assert.False(t, final.quitting)
	assert.Equal(t, len(final.steps), final.currentStep)
	assert.FileExists(t, filepath.Join(dir, ".env"))
	assert.FileExists(t, filepath.Join(dir, "PERSONA.md"))
}
