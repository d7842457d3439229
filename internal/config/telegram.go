package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saya/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_BOT_TOKEN,required,notEmpty"`
	// OwnerID is the privileged user. Zero means nobody gets the owner persona.
	OwnerID   int64  `env:"SAYA_OWNER_ID"`
	OwnerName string `env:"SAYA_OWNER_NAME" envDefault:"آرمان"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) GetTelegramToken() string {
	return c.Token
}

func (c TelegramConfig) GetOwnerID() int64 {
	return c.OwnerID
}

func (c TelegramConfig) GetOwnerName() string {
	return c.OwnerName
}
