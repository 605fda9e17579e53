package lock

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func TestFileLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reconcile.lock")

	first := NewFileLock(path)
	second := NewFileLock(path)

	release, err := first.Acquire(ctx)
	require.NoError(t, err)

	_, err = second.Acquire(ctx)
	require.ErrorIs(t, err, model.ErrLockHeld)

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx), "release is idempotent")

	release, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestFileLock_LeftoverFileIsNotHeld(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reconcile.lock")
	require.NoError(t, os.WriteFile(path, []byte("12345\n2015-05-01T00:00:00Z\n"), 0o644))

	l := NewFileLock(path)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	release, err := l.Acquire(ctx)
	require.NoError(t, err)
	defer func() { assert.NoError(t, release(ctx)) }()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strconv.Itoa(os.Getpid()), lines[0])
	assert.Equal(t, "2026-01-02T03:04:05Z", lines[1])
}

func TestFileLock_ReleaseKeepsOtherHolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reconcile.lock")

	releaseA, err := NewFileLock(path).Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, releaseA(ctx))

	releaseB, err := NewFileLock(path).Acquire(ctx)
	require.NoError(t, err)
	defer func() { assert.NoError(t, releaseB(ctx)) }()

	// A stale release from the previous holder must not free B's lock.
	require.NoError(t, releaseA(ctx))

	_, err = NewFileLock(path).Acquire(ctx)
	require.ErrorIs(t, err, model.ErrLockHeld)
}

func TestFileLock_OneWinnerUnderContention(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reconcile.lock")

	const contenders = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		releases []func(context.Context) error
	)
	start := make(chan struct{})
	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			release, err := NewFileLock(path).Acquire(ctx)
			if err != nil {
				return
			}
			mu.Lock()
			winners++
			releases = append(releases, release)
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, winners)
	for _, release := range releases {
		require.NoError(t, release(ctx))
	}
}
