package model

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionDonation     TransactionKind = "donation"
	TransactionRegistration TransactionKind = "registration"
)

const StatusCompleted = "Completed"

type Field struct {
	Key   string
	Value string
}

// RawNotification is an inbound webhook payload as received. It is untrusted.
type RawNotification struct {
	Body   []byte
	Fields []Field
}

// ParseRawNotification keeps the original field order, which the postback must echo.
func ParseRawNotification(body []byte) (RawNotification, error) {
	raw := RawNotification{Body: append([]byte(nil), body...)}

	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return RawNotification{}, err
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return RawNotification{}, err
		}
		raw.Fields = append(raw.Fields, Field{Key: key, Value: val})
	}

	return raw, nil
}

func (r RawNotification) Get(key string) string {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// VerifiedPayload holds the fields of a notification the processor confirmed.
// Only the IPN verifier builds one.
type VerifiedPayload struct {
	fields map[string]string
}

func NewVerifiedPayload(raw RawNotification) VerifiedPayload {
	fields := make(map[string]string, len(raw.Fields))
	for _, f := range raw.Fields {
		if _, ok := fields[f.Key]; ok {
			continue
		}
		fields[f.Key] = f.Value
	}
	return VerifiedPayload{fields: fields}
}

func (p VerifiedPayload) Get(key string) string { return p.fields[key] }

func (p VerifiedPayload) Len() int { return len(p.fields) }

type VerifiedTransaction struct {
	TransactionID    string
	Currency         string
	ReceiverIdentity []string
	GrossAmount      decimal.Decimal
	PayerEmail       string
	PayerName        string
	ItemReference    string
	Status           string
	Kind             TransactionKind
	Options          map[string]string
	RecipientID      string
	Message          string
}
