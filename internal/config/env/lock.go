package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const BackendRedis = "redis"

type lockEnv struct {
	Backend string        `env:"JOB_LOCK_BACKEND" envDefault:"file"`
	Path    string        `env:"JOB_LOCK_PATH" envDefault:"reconcile.lock"`
	Key     string        `env:"JOB_LOCK_KEY" envDefault:"triplecrown:reconcile"`
	TTL     time.Duration `env:"JOB_LOCK_TTL" envDefault:"10m"`
}

type lock struct {
	raw lockEnv
}

func NewLockConfig() (*lock, error) {
	var raw lockEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	switch raw.Backend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("JOB_LOCK_BACKEND %q: want %s or %s", raw.Backend, BackendFile, BackendRedis)
	}
	return &lock{raw: raw}, nil
}

func (cfg *lock) Backend() string    { return cfg.raw.Backend }
func (cfg *lock) Path() string       { return cfg.raw.Path }
func (cfg *lock) Key() string        { return cfg.raw.Key }
func (cfg *lock) TTL() time.Duration { return cfg.raw.TTL }
