package model

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AppendAndContains(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	r := Rider{ID: "r1", FirstName: gofakeit.FirstName()}
	d := Donation{ID: "d1", Amount: decimal.RequireFromString("10")}

	require.False(t, l.Contains(KindRider, "r1"))
	require.NoError(t, l.Append(r))
	require.NoError(t, l.Append(d))

	assert.True(t, l.Contains(KindRider, "r1"))
	assert.True(t, l.Contains(KindDonation, "d1"))
	assert.False(t, l.Contains(KindDonation, "r1"), "ids are scoped per kind")
	assert.Equal(t, 2, l.Len())

	err := l.Append(Rider{ID: "r1"})
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Len(t, l.Riders(), 1)

	require.ErrorIs(t, l.Append(Payment{}), ErrMalformedRecord)
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	require.NoError(t, l.Append(Rider{ID: "r1"}))

	c := l.Clone()
	require.NoError(t, c.Append(Rider{ID: "r2"}))

	assert.False(t, l.Contains(KindRider, "r2"))
	assert.Len(t, l.Riders(), 1)
	assert.Len(t, c.Riders(), 2)
}

func TestLedgerFrom_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := LedgerFrom([]Rider{{ID: "a"}, {ID: "a"}}, nil, nil)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestSortRiders(t *testing.T) {
	t.Parallel()

	riders := []Rider{
		{ID: "1", FirstName: "bob", LastName: "Zed"},
		{ID: "2", FirstName: "Alice", LastName: "smith"},
		{ID: "3", FirstName: "Bob", LastName: "adams"},
		{ID: "4", FirstName: "alice", LastName: "Jones"},
	}

	SortRiders(riders)

	ids := make([]string, len(riders))
	for i, r := range riders {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"4", "2", "3", "1"}, ids)
}

func TestLedger_ScrubRiderEmails(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	require.NoError(t, l.Append(Rider{ID: "r1", Email: gofakeit.Email()}))

	l.ScrubRiderEmails()
	assert.Empty(t, l.Riders()[0].Email)
}
