package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type paypalEnv struct {
	IPNURL     string        `env:"PAYPAL_IPN_URL" envDefault:"https://ipnpb.paypal.com/cgi-bin/webscr"`
	IPNTimeout time.Duration `env:"PAYPAL_IPN_TIMEOUT" envDefault:"30s"`

	NVPURL     string        `env:"PAYPAL_NVP_URL" envDefault:"https://api-3t.paypal.com/nvp"`
	NVPTimeout time.Duration `env:"PAYPAL_NVP_TIMEOUT" envDefault:"60s"`
	User       string        `env:"PAYPAL_API_USER,required"`
	Password   string        `env:"PAYPAL_API_PASSWORD,required"`
	Signature  string        `env:"PAYPAL_API_SIGNATURE,required"`
}

type paypal struct {
	raw paypalEnv
}

func NewPayPalConfig() (*paypal, error) {
	var raw paypalEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &paypal{raw: raw}, nil
}

func (cfg *paypal) IPNURL() string            { return cfg.raw.IPNURL }
func (cfg *paypal) IPNTimeout() time.Duration { return cfg.raw.IPNTimeout }
func (cfg *paypal) NVPURL() string            { return cfg.raw.NVPURL }
func (cfg *paypal) NVPTimeout() time.Duration { return cfg.raw.NVPTimeout }
func (cfg *paypal) APIUser() string           { return cfg.raw.User }
func (cfg *paypal) APIPassword() string       { return cfg.raw.Password }
func (cfg *paypal) APISignature() string      { return cfg.raw.Signature }
