package lock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"github.com/csytan/triplecrownforheart/internal/model"
)

type fileLock struct {
	path string
	now  func() time.Time
}

// NewFileLock guards path with an OS advisory lock. The kernel drops the lock
// when the holder exits, so a crashed process never leaves it held and there
// is nothing to expire or take over.
func NewFileLock(path string) *fileLock {
	return &fileLock{path: path, now: time.Now}
}

func (l *fileLock) Acquire(_ context.Context) (func(context.Context) error, error) {
	const op = "repository.lock.file.Acquire"

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fl := flock.New(l.path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrTransient, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrLockHeld)
	}

	// Holder details are informational; the lock itself is the flock.
	holder := strconv.Itoa(os.Getpid()) + "\n" + l.now().UTC().Format(time.RFC3339) + "\n"
	_ = os.WriteFile(l.path, []byte(holder), 0o644)

	// The file is never removed: unlinking a locked path lets a second process
	// lock a fresh inode while the first still holds the old one.
	return func(_ context.Context) error {
		if err := fl.Unlock(); err != nil {
			return fmt.Errorf("repository.lock.file.Release: %w", err)
		}
		return nil
	}, nil
}
