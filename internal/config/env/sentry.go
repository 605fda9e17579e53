package envconfig

import "github.com/caarlos0/env/v11"

type sentryEnv struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"RELEASE"`
}

type sentry struct {
	raw sentryEnv
}

func NewSentryConfig() (*sentry, error) {
	var raw sentryEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &sentry{raw: raw}, nil
}

func (cfg *sentry) DSN() string         { return cfg.raw.DSN }
func (cfg *sentry) Environment() string { return cfg.raw.Environment }
func (cfg *sentry) Release() string     { return cfg.raw.Release }
