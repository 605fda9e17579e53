package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/csytan/triplecrownforheart/internal/metrics"
	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

// Store persists the ledger. Save receives the full ledger and the entities
// appended by this commit, and returns the ones it actually recorded. An
// entity another writer recorded first is left out of the result.
type Store interface {
	Load(ctx context.Context) (*model.Ledger, error)
	Save(ctx context.Context, l *model.Ledger, appended []model.Entity) ([]model.Entity, error)
}

// WriteLock serialises commits across processes sharing one store.
type WriteLock interface {
	Acquire(ctx context.Context) (func(context.Context) error, error)
}

// Observer is told about every successful commit that recorded something.
type Observer interface {
	OnCommit(ctx context.Context, appended []model.Entity, snapshot *model.Ledger) error
}

const (
	defaultWriteTimeout = 10 * time.Second
	lockRetryInterval   = 50 * time.Millisecond
)

type service struct {
	mu           sync.Mutex
	store        Store
	lock         WriteLock
	ledger       *model.Ledger
	writeTimeout time.Duration
	observers    []Observer
}

// NewLedgerService loads the durable ledger. The in-memory copy serves reads;
// every commit reloads the store under lock before appending, so other
// processes writing the same store are never overwritten. lock may be nil
// when this process is the only writer.
func NewLedgerService(ctx context.Context, store Store, lock WriteLock, writeTimeout time.Duration, observers ...Observer) (*service, error) {
	const op = "ledger.service.New"

	l, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "📒 ledger loaded",
		logger.Int("riders", len(l.Riders())),
		logger.Int("donations", len(l.Donations())),
		logger.Int("payments", len(l.Payments())),
	)

	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	l.ScrubRiderEmails()
	observeSize(l)

	return &service{
		store:        store,
		lock:         lock,
		ledger:       l,
		writeTimeout: writeTimeout,
		observers:    observers,
	}, nil
}

// Snapshot returns an independent copy for readers and candidate filtering.
// It may lag behind other writers until the next Refresh or Commit.
func (s *service) Snapshot() *model.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

func (s *service) Contains(kind model.EntityKind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Contains(kind, id)
}

// Refresh replaces the in-memory copy with the durable ledger.
func (s *service) Refresh(ctx context.Context) error {
	const op = "ledger.service.Refresh"

	l, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	l.ScrubRiderEmails()

	s.mu.Lock()
	s.ledger = l
	s.mu.Unlock()

	observeSize(l)
	return nil
}

// Commit takes the store lock, reloads the durable ledger and runs fn against
// it. Whatever fn appended is persisted; hooks and observers then run for the
// entities the store reports as recorded, and only for those. A failed save
// records nothing and drops every hook.
func (s *service) Commit(ctx context.Context, fn func(tx *Tx) error) error {
	tx, recorded, snapshot, err := s.commit(ctx, fn)
	if err != nil || len(recorded) == 0 {
		return err
	}

	observeSize(snapshot)

	hookCtx := context.WithoutCancel(ctx)
	for _, h := range tx.hooks {
		if _, ok := recorded[entityKey(h.entity)]; ok {
			h.fn(hookCtx)
		}
	}

	appended := make([]model.Entity, 0, len(recorded))
	for _, e := range tx.appended {
		if _, ok := recorded[entityKey(e)]; ok {
			appended = append(appended, e)
		}
	}

	for _, o := range s.observers {
		if err := o.OnCommit(hookCtx, appended, snapshot); err != nil {
			logger.Warn(ctx, "commit observer failed", logger.ErrorF(err))
		}
	}

	return nil
}

func (s *service) commit(ctx context.Context, fn func(tx *Tx) error) (*Tx, map[string]struct{}, *model.Ledger, error) {
	const op = "ledger.service.Commit"

	s.mu.Lock()
	defer s.mu.Unlock()

	// A commit runs to completion even when the caller was cancelled mid-cycle.
	wctx := context.WithoutCancel(ctx)

	loadCtx, cancel := context.WithTimeout(wctx, s.writeTimeout)
	defer cancel()

	release, err := s.acquire(loadCtx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := release(wctx); err != nil {
			logger.Warn(ctx, "ledger lock release failed", logger.ErrorF(err))
		}
	}()

	durable, err := s.store.Load(loadCtx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	durable.ScrubRiderEmails()
	s.ledger = durable

	tx := &Tx{ledger: durable.Clone()}
	if err := fn(tx); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(tx.appended) == 0 {
		return tx, nil, nil, nil
	}

	saveCtx, cancelSave := context.WithTimeout(wctx, s.writeTimeout)
	saved, err := s.store.Save(saveCtx, tx.ledger, tx.appended)
	cancelSave()
	if err != nil {
		logger.Error(ctx, "❌ ledger save failed, commit rolled back",
			logger.Int("appended", len(tx.appended)),
			logger.ErrorF(err),
		)
		if !errors.Is(err, model.ErrPersistence) {
			err = fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	recorded := make(map[string]struct{}, len(saved))
	for _, e := range saved {
		recorded[entityKey(e)] = struct{}{}
	}
	if skipped := len(tx.appended) - len(recorded); skipped > 0 {
		logger.Info(ctx, "entities already recorded by another writer", logger.Int("skipped", skipped))
	}

	tx.ledger.ScrubRiderEmails()
	s.ledger = tx.ledger

	return tx, recorded, tx.ledger.Clone(), nil
}

// acquire takes the store lock, polling while another process holds it until
// ctx expires.
func (s *service) acquire(ctx context.Context) (func(context.Context) error, error) {
	if s.lock == nil {
		return func(context.Context) error { return nil }, nil
	}

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		release, err := s.lock.Acquire(ctx)
		if err == nil {
			return release, nil
		}
		if !errors.Is(err, model.ErrLockHeld) {
			return nil, fmt.Errorf("%w: %w", model.ErrPersistence, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w: ledger lock still held after %s", model.ErrPersistence, model.ErrTransient, s.writeTimeout)
		case <-ticker.C:
		}
	}
}

// Tx is the view of the ledger inside one Commit.
type Tx struct {
	ledger   *model.Ledger
	appended []model.Entity
	hooks    []hook
}

type hook struct {
	entity model.Entity
	fn     func(ctx context.Context)
}

func (tx *Tx) Contains(kind model.EntityKind, id string) bool {
	return tx.ledger.Contains(kind, id)
}

// Append adds e unless its id is already recorded. It reports whether e was
// added; only then may the caller notify about it.
func (tx *Tx) Append(e model.Entity) (bool, error) {
	if tx.ledger.Contains(e.EntityKind(), e.EntityID()) {
		return false, nil
	}

	if err := tx.ledger.Append(e); err != nil {
		if errors.Is(err, model.ErrDuplicateID) {
			panic(fmt.Sprintf("ledger: duplicate %s %s after a negative Contains", e.EntityKind(), e.EntityID()))
		}
		return false, err
	}

	tx.appended = append(tx.appended, e)
	return true, nil
}

// AfterCommit schedules fn to run once e is durably recorded by this commit.
// It never runs if another writer recorded e first.
func (tx *Tx) AfterCommit(e model.Entity, fn func(ctx context.Context)) {
	tx.hooks = append(tx.hooks, hook{entity: e, fn: fn})
}

func entityKey(e model.Entity) string {
	return string(e.EntityKind()) + "/" + e.EntityID()
}

func observeSize(l *model.Ledger) {
	metrics.LedgerEntries.WithLabelValues(string(model.KindRider)).Set(float64(len(l.IDs(model.KindRider))))
	metrics.LedgerEntries.WithLabelValues(string(model.KindDonation)).Set(float64(len(l.IDs(model.KindDonation))))
	metrics.LedgerEntries.WithLabelValues(string(model.KindPayment)).Set(float64(len(l.IDs(model.KindPayment))))
}
