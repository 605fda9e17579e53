package envconfig

import "github.com/caarlos0/env/v11"

type identityEnv struct {
	Salt string `env:"IDENTITY_SALT,required"`
}

type identity struct {
	raw identityEnv
}

func NewIdentityConfig() (*identity, error) {
	var raw identityEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &identity{raw: raw}, nil
}

func (cfg *identity) Salt() string { return cfg.raw.Salt }
