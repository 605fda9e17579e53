package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// EventLedgerRecorded is emitted once for every entity appended to the ledger.
const EventLedgerRecorded = "ledger.recorded"

type LedgerRecord struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	Kind       string          `json:"kind"`
	EntityID   string          `json:"entity_id"`
	RecordedAt time.Time       `json:"recorded_at"`
	Payload    json.RawMessage `json:"payload"`
}

type riderPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
}

type donationPayload struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Source   string `json:"source"`
}

type paymentPayload struct {
	Item     string            `json:"item"`
	Options  map[string]string `json:"options,omitempty"`
	Amount   string            `json:"amount"`
	Currency string            `json:"currency"`
}

type converter struct {
	now func() time.Time
}

func NewKafkaConverter() *converter {
	return &converter{now: time.Now}
}

// EntityToPayload encodes one appended entity. Emails and payer names are
// never part of the event.
func (c *converter) EntityToPayload(e model.Entity) ([]byte, error) {
	var payload any
	switch v := e.(type) {
	case model.Rider:
		payload = riderPayload{FirstName: v.FirstName, LastName: v.LastName, Name: v.Name}
	case model.Donation:
		payload = donationPayload{
			To:       v.RecipientID,
			From:     v.DonorName,
			Amount:   v.Amount.StringFixed(2),
			Currency: v.Currency,
			Source:   string(v.RawSource),
		}
	case model.Payment:
		payload = paymentPayload{
			Item:     v.Item,
			Options:  v.Options,
			Amount:   v.Amount.StringFixed(2),
			Currency: v.Currency,
		}
	default:
		return nil, fmt.Errorf("converter.kafka.EntityToPayload: %w: %T", model.ErrUnknownKind, e)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("converter.kafka.EntityToPayload: %w", err)
	}

	record := LedgerRecord{
		EventID:    uuid.NewString(),
		EventType:  EventLedgerRecorded,
		Kind:       string(e.EntityKind()),
		EntityID:   e.EntityID(),
		RecordedAt: c.now().UTC(),
		Payload:    raw,
	}

	out, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("converter.kafka.EntityToPayload: %w", err)
	}

	return out, nil
}
