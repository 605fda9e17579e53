package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/csytan/triplecrownforheart/internal/converter/nvp"
	"github.com/csytan/triplecrownforheart/internal/metrics"
	"github.com/csytan/triplecrownforheart/internal/model"
	ledgersvc "github.com/csytan/triplecrownforheart/internal/service/ledger"
	"github.com/csytan/triplecrownforheart/platform/logger"
	"github.com/csytan/triplecrownforheart/platform/telemetry"
)

const (
	feedRegistrations = "registrations"
	feedTransactions  = "transactions"
)

type RegistrationFeed interface {
	Entries(ctx context.Context) ([]model.RegistrationEntry, error)
}

type TransactionFeed interface {
	Search(ctx context.Context, since time.Time) (model.SearchResult, error)
	Details(ctx context.Context, txnID string) (model.TransactionDetail, error)
}

type JobLock interface {
	Acquire(ctx context.Context) (func(context.Context) error, error)
}

type Ledger interface {
	Refresh(ctx context.Context) error
	Snapshot() *model.Ledger
	Commit(ctx context.Context, fn func(tx *ledgersvc.Tx) error) error
}

type Notifier interface {
	WelcomeRider(ctx context.Context, r model.Rider) error
	ThankDonor(ctx context.Context, d model.Donation, donorEmail string) error
	AlertOperator(ctx context.Context, text string)
}

type Hasher interface {
	HashString(secret string) string
}

type Rules struct {
	Currency string
	Merchant []string
	// Transactions before Since are never searched.
	Since time.Time
}

type service struct {
	registrations RegistrationFeed
	transactions  TransactionFeed
	lock          JobLock
	ledger        Ledger
	notifier      Notifier
	hasher        Hasher
	rules         Rules
	now           func() time.Time
}

func NewReconcileService(
	registrations RegistrationFeed,
	transactions TransactionFeed,
	lock JobLock,
	ledger Ledger,
	notifier Notifier,
	hasher Hasher,
	rules Rules,
) *service {
	return &service{
		registrations: registrations,
		transactions:  transactions,
		lock:          lock,
		ledger:        ledger,
		notifier:      notifier,
		hasher:        hasher,
		rules:         rules,
		now:           time.Now,
	}
}

// Run executes a cycle every interval until ctx is done. A failed cycle is
// logged and reported; the next tick runs regardless.
func (s *service) Run(ctx context.Context, interval time.Duration) error {
	logger.Info(ctx, "🔁 reconcile job started", logger.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			logger.Info(ctx, "🛑 reconcile job stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *service) runCycle(ctx context.Context) {
	start := time.Now()
	report, err := s.RunOnce(ctx)
	metrics.ReconcileDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.ReconcileCycles.WithLabelValues(metrics.ResultOK).Inc()
		logger.Info(ctx, "✅ reconcile cycle finished",
			logger.Int("new_riders", report.NewRiders),
			logger.Int("new_donations", report.NewDonations),
			logger.Int("skipped", report.Skipped),
			logger.Int("malformed", report.Malformed),
			logger.Bool("stalled", report.Stalled),
		)
	case errors.Is(err, model.ErrLockHeld):
		metrics.ReconcileCycles.WithLabelValues(metrics.ResultSkipped).Inc()
		logger.Info(ctx, "reconcile cycle skipped, another run holds the lock")
		// Readers on this instance still see what the lock holder records.
		if err := s.ledger.Refresh(ctx); err != nil {
			logger.Warn(ctx, "ledger refresh failed", logger.ErrorF(err))
		}
	default:
		metrics.ReconcileCycles.WithLabelValues(metrics.ResultFailed).Inc()
		logger.Error(ctx, "❌ reconcile cycle failed", logger.ErrorF(err))
		telemetry.CaptureError(err, map[string]string{"job": "reconcile"})
		if errors.Is(err, model.ErrPersistence) {
			s.notifier.AlertOperator(ctx, "Ledger write failed during reconciliation: "+err.Error())
		}
	}
}

// RunOnce runs one reconciliation cycle under the job lock. Riders are synced
// before donations so a donation never precedes the rider it credits. A failed
// feed does not stop the other one.
func (s *service) RunOnce(ctx context.Context) (model.CycleReport, error) {
	const op = "reconcile.service.RunOnce"

	release, err := s.lock.Acquire(ctx)
	if err != nil {
		return model.CycleReport{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.Warn(ctx, "job lock release failed", logger.ErrorF(err))
		}
	}()

	// Candidates are filtered against what every instance has recorded so far.
	if err := s.ledger.Refresh(ctx); err != nil {
		logger.Warn(ctx, "ledger refresh failed, filtering against the cached copy", logger.ErrorF(err))
	}

	var report model.CycleReport

	ridersErr := s.syncRiders(ctx, &report)
	if ctx.Err() != nil {
		return report, fmt.Errorf("%s: %w", op, errors.Join(ridersErr, ctx.Err()))
	}

	donationsErr := s.syncDonations(ctx, &report)
	if err := errors.Join(ridersErr, donationsErr); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

func (s *service) syncRiders(ctx context.Context, report *model.CycleReport) error {
	const op = "reconcile.service.syncRiders"

	entries, err := s.registrations.Entries(ctx)
	if err != nil {
		metrics.CandidateErrors.WithLabelValues(feedRegistrations, errorClass(err)).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	known := s.ledger.Snapshot()
	now := s.now().UTC()

	var candidates []model.Rider
	for _, e := range entries {
		email := strings.TrimSpace(e.Email)
		if email == "" {
			report.Malformed++
			metrics.CandidateErrors.WithLabelValues(feedRegistrations, "malformed").Inc()
			logger.Warn(ctx, "registration entry without email", logger.String("entry_id", e.EntryID))
			continue
		}

		id := s.hasher.HashString(email)
		if known.Contains(model.KindRider, id) {
			continue
		}

		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		candidates = append(candidates, model.Rider{
			ID:        id,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Name:      strings.TrimSpace(e.FirstName + " " + e.LastName),
			Email:     email,
			CreatedAt: createdAt.UTC(),
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	added := 0
	err = s.ledger.Commit(ctx, func(tx *ledgersvc.Tx) error {
		for _, r := range candidates {
			ok, err := tx.Append(r)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			tx.AfterCommit(r, func(ctx context.Context) {
				added++
				_ = s.notifier.WelcomeRider(ctx, r)
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.LedgerAppends.WithLabelValues(string(model.KindRider)).Add(float64(added))
	report.NewRiders = added
	return nil
}

func (s *service) syncDonations(ctx context.Context, report *model.CycleReport) error {
	const op = "reconcile.service.syncDonations"

	result, err := s.transactions.Search(ctx, s.rules.Since)
	if err != nil {
		metrics.CandidateErrors.WithLabelValues(feedTransactions, errorClass(err)).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	report.Stalled = result.Stalled
	report.Malformed += len(result.Malformed)
	for _, merr := range result.Malformed {
		metrics.CandidateErrors.WithLabelValues(feedTransactions, "malformed").Inc()
		logger.Warn(ctx, "unreadable search row", logger.ErrorF(merr))
	}

	known := s.ledger.Snapshot()

	txnIDs := lo.Uniq(lo.FilterMap(result.Summaries, func(sum model.TransactionSummary, _ int) (string, bool) {
		return sum.TransactionID, sum.Type == nvp.TypeDonation
	}))

	type candidate struct {
		donation   model.Donation
		donorEmail string
	}

	var candidates []candidate
	for _, txnID := range txnIDs {
		if ctx.Err() != nil {
			break
		}

		id := s.hasher.HashString(txnID)
		if known.Contains(model.KindDonation, id) {
			continue
		}

		log := logger.With(logger.String("txn_id", txnID))

		detail, err := s.transactions.Details(ctx, txnID)
		if err != nil {
			report.Skipped++
			metrics.CandidateErrors.WithLabelValues(feedTransactions, errorClass(err)).Inc()
			log.Warn(ctx, "transaction details unavailable, deferred", logger.ErrorF(err))
			continue
		}

		if err := s.validate(detail); err != nil {
			report.Skipped++
			metrics.CandidateErrors.WithLabelValues(feedTransactions, errorClass(err)).Inc()
			log.Warn(ctx, "transaction rejected", logger.ErrorF(err))
			continue
		}

		candidates = append(candidates, candidate{
			donation:   nvp.DonationFromDetail(id, detail, s.now()),
			donorEmail: detail.Email,
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	added := 0
	err = s.ledger.Commit(ctx, func(tx *ledgersvc.Tx) error {
		for _, c := range candidates {
			ok, err := tx.Append(c.donation)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			tx.AfterCommit(c.donation, func(ctx context.Context) {
				added++
				_ = s.notifier.ThankDonor(ctx, c.donation, c.donorEmail)
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.LedgerAppends.WithLabelValues(string(model.KindDonation)).Add(float64(added))
	report.NewDonations = added
	return nil
}

func (s *service) validate(d model.TransactionDetail) error {
	var errs []error

	if d.Status != model.StatusCompleted {
		errs = append(errs, fmt.Errorf("%w: status %q", model.ErrBusinessRule, d.Status))
	}
	if !strings.EqualFold(d.Currency, s.rules.Currency) {
		errs = append(errs, fmt.Errorf("%w: currency %q, want %q", model.ErrBusinessRule, d.Currency, s.rules.Currency))
	}

	merchant := lo.Map(s.rules.Merchant, func(m string, _ int) string { return strings.ToLower(strings.TrimSpace(m)) })
	receivers := lo.Map(d.Receivers, func(r string, _ int) string { return strings.ToLower(strings.TrimSpace(r)) })
	if !lo.Some(receivers, merchant) {
		errs = append(errs, fmt.Errorf("%w: receiver %v is not the merchant", model.ErrBusinessRule, d.Receivers))
	}

	return errors.Join(errs...)
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, model.ErrTransient):
		return "transient"
	case errors.Is(err, model.ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, model.ErrBusinessRule):
		return "business_rule"
	default:
		return "other"
	}
}
