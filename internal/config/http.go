package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/dobby/pkg/log"
)

type HTTPConfig struct {
	BindAddress string `env:"HTTP_BIND_ADDRESS" envDefault:"0.0.0.0"`
	BindPort    int    `env:"HTTP_BIND_PORT" envDefault:"8094"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.BindPort)
}
