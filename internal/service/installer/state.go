package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/saya/configs"
	"github.com/sandevgo/saya/internal/config"
	"github.com/sandevgo/saya/pkg/env"
)

// InstallState collects answers across wizard steps. Only non-zero fields
// end up in the .env file.
type InstallState struct {
	RuntimePath string
	App         config.AppConfig
	LLM         config.LLMConfig
	Telegram    config.TelegramConfig
}

func NewInstallState(runtimePath string) *InstallState {
	return &InstallState{RuntimePath: runtimePath}
}

func (s *InstallState) EnvPath() string {
	return filepath.Join(s.RuntimePath, ".env")
}

// EnvContent renders every collected section as .env text.
func (s *InstallState) EnvContent() (string, error) {
	var b strings.Builder
	for _, section := range []any{s.LLM, s.Telegram, s.App} {
		content, err := env.MarshalEnv(section)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// SaveEnv writes the .env file. An existing file is never overwritten.
func (s *InstallState) SaveEnv() error {
	if err := os.MkdirAll(s.RuntimePath, 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	envPath := s.EnvPath()
	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	content, err := s.EnvContent()
	if err != nil {
		return err
	}
	return os.WriteFile(envPath, []byte(content), 0o600)
}

// InitPersonaFiles copies the embedded persona files into the runtime
// directory, keeping any the user already edited.
func (s *InstallState) InitPersonaFiles() error {
	if err := os.MkdirAll(s.RuntimePath, 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	for _, name := range []string{"PERSONA.md", "OWNER.md"} {
		dst := filepath.Join(s.RuntimePath, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		data, err := configs.FS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dst, err)
		}
	}
	return nil
}
