package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Extends the key only while it still holds our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type redisLock struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func NewRedisLock(client redis.UniversalClient, key string, ttl time.Duration) *redisLock {
	return &redisLock{client: client, key: key, ttl: ttl}
}

// Acquire takes the lock for ttl and keeps extending it until released, so a
// cycle longer than ttl stays exclusive. It returns ErrLockHeld when another
// instance owns it. The returned release func is safe to call twice.
func (l *redisLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	const op = "repository.lock.redis.Acquire"

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrTransient, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrLockHeld)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go l.keepAlive(context.WithoutCancel(ctx), token, stop, done)

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			close(stop)
			<-done
			if rerr := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); rerr != nil {
				err = fmt.Errorf("repository.lock.redis.Release: %w", rerr)
			}
		})
		return err
	}, nil
}

func (l *redisLock) keepAlive(ctx context.Context, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(max(l.ttl/3, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			n, err := extendScript.Run(ctx, l.client, []string{l.key}, token, l.ttl.Milliseconds()).Int()
			if err != nil {
				logger.Warn(ctx, "job lock extend failed", logger.String("key", l.key), logger.ErrorF(err))
				continue
			}
			if n == 0 {
				logger.Error(ctx, "❌ job lock lost", logger.String("key", l.key))
				return
			}
		}
	}
}
