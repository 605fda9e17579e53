package nvp

import (
	"net/url"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func TestSummariesFromValues(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"L_TRANSACTIONID0": {"TXN001"},
		"L_TYPE0":          {"Donation"},
		"L_TIMESTAMP0":     {"2015-05-03T10:00:00Z"},
		"L_NETAMT0":        {"9.41"},
		"L_TYPE1":          {"Payment"},
		"L_TIMESTAMP1":     {"2015-05-02T10:00:00Z"},
		"L_TRANSACTIONID2": {"TXN003"},
		"L_TIMESTAMP2":     {"yesterday"},
	}

	got, errs := SummariesFromValues(values)
	require.Len(t, got, 1)
	require.Len(t, errs, 2)

	assert.Equal(t, "TXN001", got[0].TransactionID)
	assert.Equal(t, TypeDonation, got[0].Type)
	assert.Equal(t, time.Date(2015, 5, 3, 10, 0, 0, 0, time.UTC), got[0].Timestamp)
	for _, err := range errs {
		assert.ErrorIs(t, err, model.ErrMalformedRecord)
	}
}

func TestDetailFromValues(t *testing.T) {
	t.Parallel()

	first, last := gofakeit.FirstName(), gofakeit.LastName()

	tests := []struct {
		name    string
		values  url.Values
		wantErr error
		check   func(t *testing.T, d model.TransactionDetail)
	}{
		{
			name: "full donation",
			values: url.Values{
				"TRANSACTIONID": {"TXN001"},
				"FIRSTNAME":     {first},
				"LASTNAME":      {last},
				"AMT":           {"10.00"},
				"CURRENCYCODE":  {"CAD"},
				"RECEIVEREMAIL": {"donate@example.org"},
				"L_NUMBER0":     {"a1b2c3d4e5"},
				"CUSTOM":        {"Go go go"},
				"PAYMENTSTATUS": {"Completed"},
			},
			check: func(t *testing.T, d model.TransactionDetail) {
				assert.Equal(t, first+" "+last, d.PayerName())
				assert.True(t, decimal.RequireFromString("10").Equal(d.Amount))
				assert.Equal(t, "a1b2c3d4e5", d.RecipientID)
				assert.Equal(t, "Go go go", d.Message)
				assert.Equal(t, []string{"donate@example.org"}, d.Receivers)
			},
		},
		{
			name:    "missing transaction id",
			values:  url.Values{"AMT": {"1.00"}},
			wantErr: model.ErrMalformedRecord,
		},
		{
			name:    "bad amount",
			values:  url.Values{"TRANSACTIONID": {"T"}, "AMT": {"ten"}},
			wantErr: model.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetailFromValues(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestDonationFromDetail(t *testing.T) {
	t.Parallel()

	now := time.Now()
	d := model.TransactionDetail{
		TransactionID: "TXN001",
		FirstName:     "Ada",
		Amount:        decimal.RequireFromString("25.50"),
		Currency:      "CAD",
		RecipientID:   "r1",
	}

	got := DonationFromDetail("abc", d, now)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "Ada", got.DonorName)
	assert.Equal(t, model.SourceSearch, got.RawSource)
	assert.Equal(t, now.UTC(), got.CreatedAt)
}
