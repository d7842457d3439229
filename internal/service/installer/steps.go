package installer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sandevgo/saya/internal/config"
)

var apiKeyTitles = map[string]string{
	config.ProviderGemini:     "Gemini API Key",
	config.ProviderOpenAI:     "OpenAI API Key",
	config.ProviderOpenRouter: "OpenRouter API Key",
	config.ProviderAnthropic:  "Anthropic API Key",
}

func NewAPIKeyStep() Step {
	return newInputStep(
		inputOptions{placeholder: "paste your key", secret: true},
		func(state *InstallState) string {
			return fmt.Sprintf("Enter your %s:", apiKeyTitles[state.LLM.Provider])
		},
		func(value string, state *InstallState) error {
			if value == "" {
				return errors.New("api key is required")
			}
			state.LLM.APIKey = value
			return nil
		},
	)
}

func NewTelegramTokenStep() Step {
	return newInputStep(
		inputOptions{placeholder: "123456789:ABCDEF...", secret: true},
		func(*InstallState) string { return "Enter your Telegram Bot Token:" },
		func(value string, state *InstallState) error {
			if value == "" {
				return errors.New("bot token is required")
			}
			state.Telegram.Token = value
			return nil
		},
	)
}

func NewOwnerIDStep() Step {
	return newInputStep(
		inputOptions{placeholder: "123456789 (empty for none)"},
		func(*InstallState) string { return "Enter the owner's Telegram User ID:" },
		func(value string, state *InstallState) error {
			if value == "" {
				state.Telegram.OwnerID = 0
				return nil
			}
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid user id: %q", value)
			}
			state.Telegram.OwnerID = id
			return nil
		},
	)
}

func NewOwnerNameStep() Step {
	return newInputStep(
		inputOptions{placeholder: "آرمان"},
		func(state *InstallState) string {
			if state.Telegram.OwnerID == 0 {
				return "Enter the owner's name (unused without an owner id, enter to skip):"
			}
			return "Enter the owner's name:"
		},
		func(value string, state *InstallState) error {
			state.Telegram.OwnerName = value
			return nil
		},
	)
}

func NewPortStep() Step {
	return newInputStep(
		inputOptions{placeholder: "8080"},
		func(*InstallState) string { return "Enter the HTTP port for the status API:" },
		func(value string, state *InstallState) error {
			if value == "" {
				state.App.HTTPPort = 0
				return nil
			}
			port, err := strconv.Atoi(value)
			if err != nil || port <= 0 || port > 65535 {
				return fmt.Errorf("invalid port: %q", value)
			}
			state.App.HTTPPort = port
			return nil
		},
	)
}
