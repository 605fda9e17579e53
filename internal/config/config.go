package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/csytan/triplecrownforheart/internal/config/env"
	"github.com/csytan/triplecrownforheart/internal/model"
)

var cfg *config

type config struct {
	Server    Server
	Logger    Logger
	PayPal    PayPal
	Wufoo     Wufoo
	Mailgun   Mailgun
	Telegram  Telegram
	Ledger    Ledger
	Reconcile Reconcile
	Lock      Lock
	Kafka     Kafka
	Publisher Publisher
	Identity  Identity
	Business  Business
	Sentry    Sentry

	// Set only for the postgres ledger backend.
	Postgres Database
	// Set only for the redis lock backend.
	Redis Redis

	Fees model.FeeSchedule
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	c := &config{}
	var err error

	if c.Server, err = envconfig.NewHTTPServerConfig(); err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}
	if c.Logger, err = envconfig.NewLoggerConfig(); err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}
	if c.PayPal, err = envconfig.NewPayPalConfig(); err != nil {
		return fmt.Errorf("%s PayPal: %w", op, err)
	}
	if c.Wufoo, err = envconfig.NewWufooConfig(); err != nil {
		return fmt.Errorf("%s Wufoo: %w", op, err)
	}
	if c.Mailgun, err = envconfig.NewMailgunConfig(); err != nil {
		return fmt.Errorf("%s Mailgun: %w", op, err)
	}
	if c.Telegram, err = envconfig.NewTelegramConfig(); err != nil {
		return fmt.Errorf("%s Telegram: %w", op, err)
	}
	if c.Ledger, err = envconfig.NewLedgerConfig(); err != nil {
		return fmt.Errorf("%s Ledger: %w", op, err)
	}
	if c.Reconcile, err = envconfig.NewReconcileConfig(); err != nil {
		return fmt.Errorf("%s Reconcile: %w", op, err)
	}
	if c.Lock, err = envconfig.NewLockConfig(); err != nil {
		return fmt.Errorf("%s Lock: %w", op, err)
	}
	if c.Kafka, err = envconfig.NewKafkaConfig(); err != nil {
		return fmt.Errorf("%s Kafka: %w", op, err)
	}
	if c.Publisher, err = envconfig.NewPublisherConfig(); err != nil {
		return fmt.Errorf("%s Publisher: %w", op, err)
	}
	if c.Identity, err = envconfig.NewIdentityConfig(); err != nil {
		return fmt.Errorf("%s Identity: %w", op, err)
	}
	if c.Business, err = envconfig.NewBusinessConfig(); err != nil {
		return fmt.Errorf("%s Business: %w", op, err)
	}
	if c.Sentry, err = envconfig.NewSentryConfig(); err != nil {
		return fmt.Errorf("%s Sentry: %w", op, err)
	}

	if c.Ledger.Backend() == envconfig.BackendPostgres {
		if c.Postgres, err = envconfig.NewPostgresConfig(); err != nil {
			return fmt.Errorf("%s Postgres: %w", op, err)
		}
	}
	if c.Lock.Backend() == envconfig.BackendRedis {
		if c.Redis, err = envconfig.NewRedisConfig(); err != nil {
			return fmt.Errorf("%s Redis: %w", op, err)
		}
	}

	if c.Fees, err = envconfig.LoadFeeSchedule(c.Business.FeeSchedulePath()); err != nil {
		return fmt.Errorf("%s Fees: %w", op, err)
	}

	cfg = c
	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
