package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type wufooEnv struct {
	Subdomain string        `env:"WUFOO_SUBDOMAIN,required"`
	FormID    string        `env:"WUFOO_FORM_ID,required"`
	APIKey    string        `env:"WUFOO_API_KEY,required"`
	Timeout   time.Duration `env:"WUFOO_TIMEOUT" envDefault:"30s"`

	FirstNameField string `env:"WUFOO_FIELD_FIRST_NAME" envDefault:"Field5"`
	LastNameField  string `env:"WUFOO_FIELD_LAST_NAME" envDefault:"Field6"`
	EmailField     string `env:"WUFOO_FIELD_EMAIL" envDefault:"Field7"`
}

type wufoo struct {
	raw wufooEnv
}

func NewWufooConfig() (*wufoo, error) {
	var raw wufooEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &wufoo{raw: raw}, nil
}

func (cfg *wufoo) BaseURL() string {
	return fmt.Sprintf("https://%s.wufoo.com", cfg.raw.Subdomain)
}

func (cfg *wufoo) FormID() string         { return cfg.raw.FormID }
func (cfg *wufoo) APIKey() string         { return cfg.raw.APIKey }
func (cfg *wufoo) Timeout() time.Duration { return cfg.raw.Timeout }
func (cfg *wufoo) FirstNameField() string { return cfg.raw.FirstNameField }
func (cfg *wufoo) LastNameField() string  { return cfg.raw.LastNameField }
func (cfg *wufoo) EmailField() string     { return cfg.raw.EmailField }
