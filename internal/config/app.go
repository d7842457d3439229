package config

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/saya/pkg/log"
)

const DatabaseFileName = "saya_memory.db"

type AppConfig struct {
	RuntimePath string `env:"SAYA_RUNTIME_PATH"`

	// HTTP status surface
	HTTPHost string `env:"SAYA_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort int    `env:"PORT" envDefault:"8080"`

	// Number of stored exchanges replayed into every prompt
	HistoryLimit int `env:"SAYA_HISTORY_LIMIT" envDefault:"10"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

// ParseAppConfig reads the config from the environment without exiting on error.
func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.RuntimePath == "" {
		c.RuntimePath = GetRuntimePath()
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http port: %d", c.HTTPPort)
	}
	if c.HistoryLimit < 0 {
		return nil, fmt.Errorf("invalid history limit: %d", c.HistoryLimit)
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, DatabaseFileName)
}

func (c AppConfig) GetHistoryLimit() int {
	return c.HistoryLimit
}

func (c AppConfig) GetHTTPAddr() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "PERSONA.md")
}

func (c AppConfig) GetOwnerPersonaPath() string {
	return filepath.Join(c.RuntimePath, "OWNER.md")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
