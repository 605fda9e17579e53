package envconfig

import (
	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"

	platformkafka "github.com/csytan/triplecrownforheart/platform/kafka"
)

type kafkaEnv struct {
	Brokers  []string `env:"KAFKA_BROKERS"`
	Topic    string   `env:"LEDGER_RECORDED_TOPIC_NAME" envDefault:"ledger.recorded"`
	ClientID string   `env:"KAFKA_CLIENT_ID" envDefault:"triplecrown"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	return &kafka{raw: raw}, nil
}

// Enabled reports whether ledger events are emitted at all.
func (cfg *kafka) Enabled() bool               { return len(cfg.raw.Brokers) > 0 }
func (cfg *kafka) Brokers() []string           { return cfg.raw.Brokers }
func (cfg *kafka) LedgerRecordedTopic() string { return cfg.raw.Topic }

func (cfg *kafka) LedgerRecordedProducerConfig() *sarama.Config {
	return platformkafka.SyncProducerConfig(cfg.raw.ClientID)
}
