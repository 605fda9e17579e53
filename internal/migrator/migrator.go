package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/csytan/triplecrownforheart/platform/logger"
)

type Migrator struct {
	db            *sql.DB
	migrationsDir string
}

func NewMigrator(db *sql.DB, migrationsDir string) *Migrator {
	return &Migrator{
		db:            db,
		migrationsDir: migrationsDir,
	}
}

// Up applies every pending migration in the directory.
func (m *Migrator) Up(ctx context.Context) error {
	const op = "migrator.Up"

	provider, err := goose.NewProvider(goose.DialectPostgres, m.db, os.DirFS(m.migrationsDir))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range results {
		logger.Info(ctx, "migration applied",
			logger.String("source", r.Source.Path),
			logger.Duration("duration", r.Duration),
		)
	}
	return nil
}

func (m *Migrator) Close() error { return m.db.Close() }
