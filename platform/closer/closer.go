package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/csytan/triplecrownforheart/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...logger.Field)
	Error(ctx context.Context, msg string, fields ...logger.Field)
}

type namedFn struct {
	name string
	fn   func(context.Context) error
}

type closer struct {
	mu     sync.Mutex
	once   sync.Once
	logger Logger
	funcs  []namedFn
}

var global = &closer{}

func SetLogger(l Logger) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.logger = l
}

// AddNamed registers fn to run on CloseAll. Functions run in reverse order of registration.
func AddNamed(name string, fn func(context.Context) error) { global.add(name, fn) }

// CloseAll runs the registered functions once. Later calls return nil.
func CloseAll(ctx context.Context) error {
	var err error
	global.once.Do(func() {
		err = global.closeAll(ctx)
	})
	return err
}

func (c *closer) add(name string, fn func(context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, namedFn{name: name, fn: fn})
}

func (c *closer) closeAll(ctx context.Context) error {
	c.mu.Lock()
	funcs := c.funcs
	c.funcs = nil
	log := c.logger
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]

		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, ctx.Err()))
			continue
		}

		if err := f.fn(ctx); err != nil {
			if log != nil {
				log.Error(ctx, "❌ failed to close", logger.String("name", f.name), logger.ErrorF(err))
			}
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}

		if log != nil {
			log.Info(ctx, "✅ closed", logger.String("name", f.name))
		}
	}

	return errors.Join(errs...)
}
