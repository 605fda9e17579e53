package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type ledgerEnv struct {
	Backend      string        `env:"LEDGER_BACKEND" envDefault:"file"`
	Path         string        `env:"LEDGER_PATH" envDefault:"ledger.yaml"`
	WriteTimeout time.Duration `env:"LEDGER_WRITE_TIMEOUT" envDefault:"10s"`
	CacheTTL     time.Duration `env:"LEDGER_CACHE_TTL" envDefault:"30s"`
}

type ledger struct {
	raw ledgerEnv
}

func NewLedgerConfig() (*ledger, error) {
	var raw ledgerEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	switch raw.Backend {
	case BackendFile, BackendPostgres:
	default:
		return nil, fmt.Errorf("LEDGER_BACKEND %q: want %s or %s", raw.Backend, BackendFile, BackendPostgres)
	}
	return &ledger{raw: raw}, nil
}

func (cfg *ledger) Backend() string             { return cfg.raw.Backend }
func (cfg *ledger) Path() string                { return cfg.raw.Path }
func (cfg *ledger) WriteTimeout() time.Duration { return cfg.raw.WriteTimeout }
func (cfg *ledger) CacheTTL() time.Duration     { return cfg.raw.CacheTTL }
