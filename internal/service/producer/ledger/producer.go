package ledgerproducer

import (
	"context"
	"errors"
	"fmt"

	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}

type Converter interface {
	EntityToPayload(e model.Entity) ([]byte, error)
}

type service struct {
	producer Producer
	conv     Converter
}

// NewLedgerProducer returns a ledger observer that emits one record per
// appended entity, keyed by the entity id.
func NewLedgerProducer(producer Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

func (s *service) OnCommit(ctx context.Context, appended []model.Entity, _ *model.Ledger) error {
	const op = "ledgerproducer.service.OnCommit"

	var errs []error
	for _, e := range appended {
		payload, err := s.conv.EntityToPayload(e)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := s.producer.Send(ctx, []byte(e.EntityID()), payload); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", e.EntityKind(), e.EntityID(), err))
			continue
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Debug(ctx, "ledger records emitted", logger.Int("count", len(appended)))
	return nil
}
