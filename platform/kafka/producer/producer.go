package producer

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/csytan/triplecrownforheart/platform/kafka"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

type Logger interface {
	Debug(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type producer struct {
	syncProducer sarama.SyncProducer
	topic        string
	logger       Logger
}

func NewProducer(syncProducer sarama.SyncProducer, topic string, logger Logger) *producer {
	return &producer{
		syncProducer: syncProducer,
		topic:        topic,
		logger:       logger,
	}
}

func (p *producer) Send(ctx context.Context, key, value []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		msg.Headers = []sarama.RecordHeader{{Key: []byte(kafka.HeaderRequestID), Value: []byte(id)}}
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.logger.Error(ctx, "kafka send failed",
			logger.String("topic", p.topic),
			logger.ErrorF(err),
		)
		return fmt.Errorf("kafka.producer.Send: %w", err)
	}

	p.logger.Debug(ctx, "kafka record sent",
		logger.String("topic", p.topic),
		logger.Int("partition", int(partition)),
		logger.Int64("offset", offset),
		logger.String("key", string(key)),
	)

	return nil
}
