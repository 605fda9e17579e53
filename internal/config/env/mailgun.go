package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type mailgunEnv struct {
	BaseURL string        `env:"MAILGUN_BASE_URL" envDefault:"https://api.mailgun.net"`
	Domain  string        `env:"MAILGUN_DOMAIN,required"`
	APIKey  string        `env:"MAILGUN_API_KEY,required"`
	From    string        `env:"MAILGUN_FROM,required"`
	Timeout time.Duration `env:"MAILGUN_TIMEOUT" envDefault:"15s"`
}

type mailgun struct {
	raw mailgunEnv
}

func NewMailgunConfig() (*mailgun, error) {
	var raw mailgunEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &mailgun{raw: raw}, nil
}

func (cfg *mailgun) BaseURL() string        { return cfg.raw.BaseURL }
func (cfg *mailgun) Domain() string         { return cfg.raw.Domain }
func (cfg *mailgun) APIKey() string         { return cfg.raw.APIKey }
func (cfg *mailgun) From() string           { return cfg.raw.From }
func (cfg *mailgun) Timeout() time.Duration { return cfg.raw.Timeout }
