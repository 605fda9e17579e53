package envconfig

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type reconcileEnv struct {
	Interval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"15m"`
	// RFC 3339. The search window never reaches back further.
	Since time.Time `env:"RECONCILE_SINCE" envDefault:"2015-05-01T00:00:00Z"`
}

type reconcile struct {
	raw reconcileEnv
}

func NewReconcileConfig() (*reconcile, error) {
	var raw reconcileEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &reconcile{raw: raw}, nil
}

func (cfg *reconcile) Interval() time.Duration { return cfg.raw.Interval }
func (cfg *reconcile) Since() time.Time        { return cfg.raw.Since.UTC() }
