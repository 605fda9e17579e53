package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/csytan/triplecrownforheart/internal/converter/public"
	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

const (
	RidersDocument    = "riders.json"
	DonationsDocument = "donations.json"

	contentTypeJSON = "application/json"
)

type Publisher interface {
	Publish(ctx context.Context, name, contentType string, body []byte) error
}

type service struct {
	publisher Publisher
}

// NewPublisherService returns a ledger observer that republishes the public
// documents after every commit that changed them.
func NewPublisherService(publisher Publisher) *service {
	return &service{publisher: publisher}
}

func (s *service) OnCommit(ctx context.Context, appended []model.Entity, snapshot *model.Ledger) error {
	const op = "publisher.service.OnCommit"

	kinds := lo.Uniq(lo.Map(appended, func(e model.Entity, _ int) model.EntityKind { return e.EntityKind() }))

	// Rider totals depend on donations, so both kinds republish riders.
	var docs []string
	if lo.Contains(kinds, model.KindRider) || lo.Contains(kinds, model.KindDonation) {
		docs = append(docs, RidersDocument)
	}
	if lo.Contains(kinds, model.KindDonation) {
		docs = append(docs, DonationsDocument)
	}

	for _, name := range docs {
		if err := s.publish(ctx, name, snapshot); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *service) publish(ctx context.Context, name string, l *model.Ledger) error {
	var doc any
	switch name {
	case RidersDocument:
		doc = public.Riders(l, public.OrderName)
	default:
		doc = public.Donations(l)
	}

	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, name, contentTypeJSON, body); err != nil {
		return err
	}

	logger.Info(ctx, "📤 public document published",
		logger.String("document", name),
		logger.Int("bytes", len(body)),
	)
	return nil
}
