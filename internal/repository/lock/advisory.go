package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// LedgerAdvisoryKey is the session advisory lock guarding ledger commits.
const LedgerAdvisoryKey int64 = 0x7463_6668_6c65_6467

type advisoryLock struct {
	pool *pgxpool.Pool
	key  int64
}

// NewAdvisoryLock holds a session-level postgres advisory lock on one pooled
// connection. Postgres drops it if the connection dies.
func NewAdvisoryLock(pool *pgxpool.Pool, key int64) *advisoryLock {
	return &advisoryLock{pool: pool, key: key}
}

func (l *advisoryLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	const op = "repository.lock.advisory.Acquire"

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrTransient, err)
	}

	var ok bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&ok); err != nil {
		conn.Release()
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrTransient, err)
	}
	if !ok {
		conn.Release()
		return nil, fmt.Errorf("%s: %w", op, model.ErrLockHeld)
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			defer conn.Release()
			if _, uerr := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", l.key); uerr != nil {
				// The lock must not outlive us on a pooled connection.
				_ = conn.Conn().Close(ctx)
				err = fmt.Errorf("repository.lock.advisory.Release: %w", uerr)
			}
		})
		return err
	}, nil
}
