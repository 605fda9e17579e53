package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/csytan/triplecrownforheart/internal/model"
)

type repository struct {
	path string
}

// NewLedgerRepository stores the ledger as one YAML document at path.
func NewLedgerRepository(path string) *repository {
	return &repository{path: path}
}

// Load returns an empty ledger when the document does not exist yet.
func (r *repository) Load(_ context.Context) (*model.Ledger, error) {
	const op = "repository.file.Load"

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	l, err := fromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	return l, nil
}

// Save replaces the document with l atomically: a crash leaves either the old
// or the new document on disk, never a partial one. The caller must hold the
// ledger lock and have built l from a fresh Load, so every appended entity is
// recorded.
func (r *repository) Save(ctx context.Context, l *model.Ledger, appended []model.Entity) ([]model.Entity, error) {
	const op = "repository.file.Save"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	raw, err := yaml.Marshal(toDocument(l))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	if err := writeAtomic(r.path, raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	return appended, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	return nil
}
