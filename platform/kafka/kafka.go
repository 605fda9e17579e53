package kafka

import (
	"context"

	"github.com/IBM/sarama"
)

// HeaderRequestID carries the request id of the call that produced a record.
const HeaderRequestID = "x-request-id"

type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}

// SyncProducerConfig waits for every in-sync replica and retries without
// duplicating records.
func SyncProducerConfig(clientID string) *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Version = sarama.V3_6_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Idempotent = true
	config.Producer.Retry.Max = 5
	config.Net.MaxOpenRequests = 1

	return config
}
