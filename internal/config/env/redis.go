package envconfig

import "github.com/caarlos0/env/v11"

type redisEnv struct {
	Addr     string `env:"REDIS_ADDR,required"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type redis struct {
	raw redisEnv
}

func NewRedisConfig() (*redis, error) {
	var raw redisEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &redis{raw: raw}, nil
}

func (cfg *redis) Addr() string     { return cfg.raw.Addr }
func (cfg *redis) Password() string { return cfg.raw.Password }
func (cfg *redis) DB() int          { return cfg.raw.DB }
