package kafka

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

type unknownEntity struct{}

func (unknownEntity) EntityID() string             { return "x" }
func (unknownEntity) EntityKind() model.EntityKind { return "mystery" }

func TestConverter_EntityToPayload(t *testing.T) {
	t.Parallel()

	conv := NewKafkaConverter()

	t.Run("donation", func(t *testing.T) {
		t.Parallel()

		out, err := conv.EntityToPayload(model.Donation{
			ID:          "d1",
			RecipientID: "r1",
			DonorName:   "Dana Donor",
			Amount:      decimal.RequireFromString("10"),
			Currency:    "CAD",
			RawSource:   model.SourceIPN,
		})
		require.NoError(t, err)

		var rec LedgerRecord
		require.NoError(t, json.Unmarshal(out, &rec))
		assert.Equal(t, EventLedgerRecorded, rec.EventType)
		assert.Equal(t, "donation", rec.Kind)
		assert.Equal(t, "d1", rec.EntityID)
		_, err = uuid.Parse(rec.EventID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"to":"r1","from":"Dana Donor","amount":"10.00","currency":"CAD","source":"paypal_ipn"}`, string(rec.Payload))
	})

	t.Run("rider email is not emitted", func(t *testing.T) {
		t.Parallel()

		out, err := conv.EntityToPayload(model.Rider{ID: "r1", FirstName: "Ann", Email: "ann@example.org"})
		require.NoError(t, err)
		assert.NotContains(t, string(out), "ann@example.org")
	})

	t.Run("unknown entity", func(t *testing.T) {
		t.Parallel()

		_, err := conv.EntityToPayload(unknownEntity{})
		require.ErrorIs(t, err, model.ErrUnknownKind)
	})
}
