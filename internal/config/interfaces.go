package config

import (
	"time"

	"github.com/IBM/sarama"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type PayPal interface {
	IPNURL() string
	IPNTimeout() time.Duration
	NVPURL() string
	NVPTimeout() time.Duration
	APIUser() string
	APIPassword() string
	APISignature() string
}

type Wufoo interface {
	BaseURL() string
	FormID() string
	APIKey() string
	Timeout() time.Duration
	FirstNameField() string
	LastNameField() string
	EmailField() string
}

type Mailgun interface {
	BaseURL() string
	Domain() string
	APIKey() string
	From() string
	Timeout() time.Duration
}

type Telegram interface {
	Enabled() bool
	BotToken() string
	ChatID() int64
}

type Ledger interface {
	Backend() string
	Path() string
	WriteTimeout() time.Duration
	CacheTTL() time.Duration
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Reconcile interface {
	Interval() time.Duration
	Since() time.Time
}

type Lock interface {
	Backend() string
	Path() string
	Key() string
	TTL() time.Duration
}

type Redis interface {
	Addr() string
	Password() string
	DB() int
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	LedgerRecordedTopic() string
	LedgerRecordedProducerConfig() *sarama.Config
}

type Publisher interface {
	Enabled() bool
	Bucket() string
	Region() string
	Prefix() string
}

type Identity interface {
	Salt() string
}

type Business interface {
	Currency() string
	MerchantIdentity() []string
	FeeSchedulePath() string
	DonationPageURL() string
	AdminEmail() string
}

type Sentry interface {
	DSN() string
	Environment() string
	Release() string
}
