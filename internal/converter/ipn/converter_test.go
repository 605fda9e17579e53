package ipn

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

type stubItems map[string]bool

func (s stubItems) IsRegistration(item string) bool { return s[item] }

func payload(t *testing.T, body string) model.VerifiedPayload {
	t.Helper()

	raw, err := model.ParseRawNotification([]byte(body))
	require.NoError(t, err)
	return model.NewVerifiedPayload(raw)
}

func TestTransactionFromPayload(t *testing.T) {
	t.Parallel()

	email := gofakeit.Email()
	items := stubItems{"REG2015": true}

	tests := []struct {
		name    string
		body    string
		wantErr error
		check   func(t *testing.T, tx model.VerifiedTransaction)
	}{
		{
			name: "donation",
			body: "txn_id=TXN001&mc_currency=CAD&mc_gross=10.00&receiver_email=donate%40example.org" +
				"&payer_email=" + email + "&first_name=Ada&last_name=Lovelace&item_number=a1b2c3d4e5" +
				"&payment_status=Completed&custom=Ride+on",
			check: func(t *testing.T, tx model.VerifiedTransaction) {
				assert.Equal(t, "TXN001", tx.TransactionID)
				assert.Equal(t, "CAD", tx.Currency)
				assert.True(t, decimal.RequireFromString("10").Equal(tx.GrossAmount))
				assert.Equal(t, []string{"donate@example.org"}, tx.ReceiverIdentity)
				assert.Equal(t, "Ada Lovelace", tx.PayerName)
				assert.Equal(t, model.TransactionDonation, tx.Kind)
				assert.Equal(t, "a1b2c3d4e5", tx.RecipientID)
				assert.Equal(t, "Ride on", tx.Message)
				assert.Equal(t, model.StatusCompleted, tx.Status)
			},
		},
		{
			name: "registration with options",
			body: "txn_id=TXN002&mc_currency=CAD&mc_gross=95.00&business=donate%40example.org" +
				"&item_number=REG2015&option_name1=Jersey&option_selection1=Yes&option_name2=Route" +
				"&option_selection2=Long&payment_status=Completed",
			check: func(t *testing.T, tx model.VerifiedTransaction) {
				assert.Equal(t, model.TransactionRegistration, tx.Kind)
				assert.Empty(t, tx.RecipientID)
				assert.Equal(t, map[string]string{"Jersey": "Yes", "Route": "Long"}, tx.Options)
			},
		},
		{
			name:    "missing txn id",
			body:    "mc_gross=1.00",
			wantErr: model.ErrMalformedRecord,
		},
		{
			name:    "unparseable gross",
			body:    "txn_id=T&mc_gross=abc",
			wantErr: model.ErrMalformedRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tx, err := TransactionFromPayload(payload(t, tt.body), items)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, tx)
		})
	}
}
