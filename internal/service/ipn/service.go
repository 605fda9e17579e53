package ipn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	convipn "github.com/csytan/triplecrownforheart/internal/converter/ipn"
	"github.com/csytan/triplecrownforheart/internal/metrics"
	"github.com/csytan/triplecrownforheart/internal/model"
	ledgersvc "github.com/csytan/triplecrownforheart/internal/service/ledger"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

type Verifier interface {
	Verify(ctx context.Context, raw model.RawNotification) (model.VerifiedPayload, error)
}

type Ledger interface {
	Commit(ctx context.Context, fn func(tx *ledgersvc.Tx) error) error
}

type Notifier interface {
	ThankDonor(ctx context.Context, d model.Donation, donorEmail string) error
	RegistrationReceipt(ctx context.Context, p model.Payment, payerEmail string) error
}

type Hasher interface {
	HashString(secret string) string
}

type Rules struct {
	Currency string
	Merchant []string
	Fees     model.FeeSchedule
}

type service struct {
	verifier Verifier
	ledger   Ledger
	notifier Notifier
	hasher   Hasher
	rules    Rules
	now      func() time.Time
}

func NewIPNService(verifier Verifier, ledger Ledger, notifier Notifier, hasher Hasher, rules Rules) *service {
	return &service{
		verifier: verifier,
		ledger:   ledger,
		notifier: notifier,
		hasher:   hasher,
		rules:    rules,
		now:      time.Now,
	}
}

// Handle authenticates one inbound notification and records it. Redelivery of
// a recorded transaction is a no-op that reports IPNDuplicate.
func (s *service) Handle(ctx context.Context, body []byte) (model.IPNResult, error) {
	const op = "ipn.service.Handle"

	raw, err := model.ParseRawNotification(body)
	if err != nil {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultRejected).Inc()
		return "", fmt.Errorf("%s: %w: %w", op, model.ErrMalformedRecord, err)
	}

	payload, err := s.verifier.Verify(ctx, raw)
	if err != nil {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultRejected).Inc()
		logger.Warn(ctx, "ipn verification rejected",
			logger.String("txn_id", raw.Get("txn_id")),
			logger.ErrorF(err),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	tx, err := convipn.TransactionFromPayload(payload, s.rules.Fees)
	if err != nil {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultRejected).Inc()
		logger.Warn(ctx, "ipn payload unusable", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log := logger.With(
		logger.String("txn_id", tx.TransactionID),
		logger.String("kind", string(tx.Kind)),
		logger.String("status", tx.Status),
	)

	if err := s.validate(tx); err != nil {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultRejected).Inc()
		log.Warn(ctx, "ipn rejected by business rules", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if tx.Status != model.StatusCompleted {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultIgnored).Inc()
		log.Info(ctx, "ipn with non-completed status ignored")
		return model.IPNIgnored, nil
	}

	result, err := s.apply(ctx, tx)
	if err != nil {
		metrics.IPNNotifications.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error(ctx, "ipn apply failed", logger.ErrorF(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	metrics.IPNNotifications.WithLabelValues(string(result)).Inc()
	log.Info(ctx, "💸 ipn processed", logger.String("result", string(result)))
	return result, nil
}

func (s *service) validate(tx model.VerifiedTransaction) error {
	var errs []error

	if !strings.EqualFold(tx.Currency, s.rules.Currency) {
		errs = append(errs, fmt.Errorf("%w: currency %q, want %q", model.ErrBusinessRule, tx.Currency, s.rules.Currency))
	}
	if !receiverMatches(tx.ReceiverIdentity, s.rules.Merchant) {
		errs = append(errs, fmt.Errorf("%w: receiver %v is not the merchant", model.ErrBusinessRule, tx.ReceiverIdentity))
	}

	if tx.Kind == model.TransactionRegistration {
		expected, err := s.rules.Fees.Expected(tx.ItemReference, tx.Options)
		switch {
		case err != nil:
			errs = append(errs, err)
		case !tx.GrossAmount.Equal(expected):
			errs = append(errs, fmt.Errorf("%w: paid %s, expected %s for %s",
				model.ErrBusinessRule, tx.GrossAmount, expected, tx.ItemReference))
		}
	}

	return errors.Join(errs...)
}

func (s *service) apply(ctx context.Context, tx model.VerifiedTransaction) (model.IPNResult, error) {
	id := s.hasher.HashString(tx.TransactionID)
	now := s.now().UTC()
	result := model.IPNDuplicate

	err := s.ledger.Commit(ctx, func(ltx *ledgersvc.Tx) error {
		switch tx.Kind {
		case model.TransactionRegistration:
			p := model.Payment{
				ID:        id,
				PayerName: tx.PayerName,
				Item:      tx.ItemReference,
				Options:   tx.Options,
				Amount:    tx.GrossAmount,
				Currency:  tx.Currency,
				CreatedAt: now,
			}
			added, err := ltx.Append(p)
			if err != nil || !added {
				return err
			}
			ltx.AfterCommit(p, func(ctx context.Context) {
				result = model.IPNApplied
				metrics.LedgerAppends.WithLabelValues(string(model.KindPayment)).Inc()
				_ = s.notifier.RegistrationReceipt(ctx, p, tx.PayerEmail)
			})
		default:
			d := model.Donation{
				ID:          id,
				RecipientID: tx.RecipientID,
				DonorName:   tx.PayerName,
				Amount:      tx.GrossAmount,
				Currency:    tx.Currency,
				Message:     tx.Message,
				RawSource:   model.SourceIPN,
				CreatedAt:   now,
			}
			added, err := ltx.Append(d)
			if err != nil || !added {
				return err
			}
			ltx.AfterCommit(d, func(ctx context.Context) {
				result = model.IPNApplied
				metrics.LedgerAppends.WithLabelValues(string(model.KindDonation)).Inc()
				_ = s.notifier.ThankDonor(ctx, d, tx.PayerEmail)
			})
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return result, nil
}

func receiverMatches(receivers, merchant []string) bool {
	for _, r := range receivers {
		for _, m := range merchant {
			if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(m)) {
				return true
			}
		}
	}
	return false
}
