package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "ledger.yaml")
	repo := NewLedgerRepository(path)
	ctx := context.Background()

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	email := gofakeit.Email()
	created := time.Date(2015, 5, 3, 12, 0, 0, 0, time.UTC)

	l := model.NewLedger()
	require.NoError(t, l.Append(model.Rider{ID: "r2", FirstName: "Zoe", LastName: "Adams", Name: "Zoe Adams", Email: email}))
	require.NoError(t, l.Append(model.Rider{ID: "r1", FirstName: "adam", LastName: "Young", Name: "Adam Young"}))
	require.NoError(t, l.Append(model.Donation{
		ID: "d1", RecipientID: "r1", DonorName: "Ada Lovelace",
		Amount: decimal.RequireFromString("10"), Currency: "CAD", RawSource: model.SourceIPN, CreatedAt: created,
	}))
	require.NoError(t, l.Append(model.Payment{
		ID: "p1", PayerName: "Zoe Adams", Item: "REG2015", Options: map[string]string{"Jersey": "Yes"},
		Amount: decimal.RequireFromString("95"), Currency: "CAD", CreatedAt: created,
	}))

	saved, err := repo.Save(ctx, l, []model.Entity{model.Payment{ID: "p1"}})
	require.NoError(t, err)
	assert.Equal(t, []model.Entity{model.Payment{ID: "p1"}}, saved, "every appended entity is recorded")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), email, "rider emails are never persisted")
	assert.Contains(t, string(raw), "amount: \"10.00\"")

	_, err = os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	riders := got.Riders()
	require.Len(t, riders, 2)
	assert.Equal(t, "r1", riders[0].ID, "riders are stored sorted by first name")
	assert.Equal(t, "r2", riders[1].ID)

	require.Len(t, got.Donations(), 1)
	d := got.Donations()[0]
	assert.True(t, decimal.RequireFromString("10").Equal(d.Amount))
	assert.Equal(t, model.SourceIPN, d.RawSource)
	assert.Equal(t, created, d.CreatedAt)

	require.Len(t, got.Payments(), 1)
	assert.Equal(t, map[string]string{"Jersey": "Yes"}, got.Payments()[0].Options)

	assert.True(t, got.Contains(model.KindRider, "r2"))
}

func TestRepository_LoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("riders: [\n"), 0o644))

	_, err := NewLedgerRepository(path).Load(context.Background())
	require.ErrorIs(t, err, model.ErrPersistence)
}

func TestRepository_SaveFailureKeepsOldDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.yaml")
	repo := NewLedgerRepository(path)
	ctx := context.Background()

	l := model.NewLedger()
	require.NoError(t, l.Append(model.Rider{ID: "r1", FirstName: "A"}))
	_, err := repo.Save(ctx, l, nil)
	require.NoError(t, err)

	// A directory where the temp file should go makes the write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))
	r2 := model.Rider{ID: "r2", FirstName: "B"}
	require.NoError(t, l.Append(r2))
	saved, err := repo.Save(ctx, l, []model.Entity{r2})
	require.ErrorIs(t, err, model.ErrPersistence)
	assert.Empty(t, saved)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Riders(), 1)
}
