package public

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func ledger(t *testing.T) *model.Ledger {
	t.Helper()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l := model.NewLedger()
	for _, e := range []model.Entity{
		model.Rider{ID: "r1", FirstName: "Ann", LastName: "Bell", Name: "Ann Bell", Email: "ann@example.org", CreatedAt: now},
		model.Rider{ID: "r2", FirstName: "zed", LastName: "Arc", Name: "zed Arc", CreatedAt: now},
		model.Rider{ID: "r3", FirstName: "Bob", LastName: "Cole", Name: "Bob Cole", CreatedAt: now},
		model.Donation{ID: "d1", RecipientID: "r2", DonorName: "Dana", Amount: decimal.RequireFromString("25"), Currency: "CAD", CreatedAt: now},
		model.Donation{ID: "d2", RecipientID: "r2", DonorName: "Eli", Amount: decimal.RequireFromString("5.5"), Currency: "CAD", CreatedAt: now},
		model.Donation{ID: "d3", RecipientID: "r3", DonorName: "Fay", Amount: decimal.RequireFromString("10"), Currency: "CAD", CreatedAt: now},
		model.Donation{ID: "d4", DonorName: "Gus", Amount: decimal.RequireFromString("100"), Currency: "CAD", CreatedAt: now},
	} {
		require.NoError(t, l.Append(e))
	}
	return l
}

func TestRiders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order string
		want  []string
	}{
		{name: "by name", order: OrderName, want: []string{"r1", "r3", "r2"}},
		{name: "by raised", order: OrderRaised, want: []string{"r2", "r3", "r1"}},
		{name: "unknown order falls back to name", order: "bogus", want: []string{"r1", "r3", "r2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			views := Riders(ledger(t), tt.order)

			ids := make([]string, 0, len(views))
			for _, v := range views {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRiders_JSONHasNoEmail(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(Riders(ledger(t), OrderRaised))
	require.NoError(t, err)

	assert.NotContains(t, string(body), "ann@example.org")
	assert.NotContains(t, string(body), "email")
	assert.Contains(t, string(body), `"raised":30.50`)
}

func TestDonations(t *testing.T) {
	t.Parallel()

	views := Donations(ledger(t))
	require.Len(t, views, 4)
	assert.Equal(t, "r2", views[0].To)
	assert.Equal(t, "Dana", views[0].From)
	assert.Equal(t, json.Number("25.00"), views[0].Amount)
}
