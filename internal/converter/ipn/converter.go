package ipn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// Registrations carry at most this many option pairs (option_name1..7).
const maxOptions = 7

type RegistrationItems interface {
	IsRegistration(item string) bool
}

// TransactionFromPayload reads the typed transaction out of a verified IPN
// payload. Events whose item_number is a registration item become
// registrations, everything else is a donation to the rider in item_number.
func TransactionFromPayload(p model.VerifiedPayload, items RegistrationItems) (model.VerifiedTransaction, error) {
	const op = "converter.ipn.TransactionFromPayload"

	txnID := strings.TrimSpace(p.Get("txn_id"))
	if txnID == "" {
		return model.VerifiedTransaction{}, fmt.Errorf("%s: %w: missing txn_id", op, model.ErrMalformedRecord)
	}

	gross, err := decimal.NewFromString(strings.TrimSpace(p.Get("mc_gross")))
	if err != nil {
		return model.VerifiedTransaction{}, fmt.Errorf("%s: %w: mc_gross %q", op, model.ErrMalformedRecord, p.Get("mc_gross"))
	}

	tx := model.VerifiedTransaction{
		TransactionID: txnID,
		Currency:      strings.TrimSpace(p.Get("mc_currency")),
		ReceiverIdentity: lo.Compact([]string{
			strings.TrimSpace(p.Get("receiver_email")),
			strings.TrimSpace(p.Get("business")),
			strings.TrimSpace(p.Get("receiver_id")),
		}),
		GrossAmount:   gross,
		PayerEmail:    strings.TrimSpace(p.Get("payer_email")),
		PayerName:     payerName(p),
		ItemReference: strings.TrimSpace(p.Get("item_number")),
		Status:        p.Get("payment_status"),
		Message:       p.Get("custom"),
		Options:       options(p),
	}

	if items != nil && items.IsRegistration(tx.ItemReference) {
		tx.Kind = model.TransactionRegistration
	} else {
		tx.Kind = model.TransactionDonation
		tx.RecipientID = tx.ItemReference
	}

	return tx, nil
}

func payerName(p model.VerifiedPayload) string {
	return strings.TrimSpace(strings.TrimSpace(p.Get("first_name")) + " " + strings.TrimSpace(p.Get("last_name")))
}

func options(p model.VerifiedPayload) map[string]string {
	out := make(map[string]string)
	for i := 1; i <= maxOptions; i++ {
		n := strconv.Itoa(i)
		name := strings.TrimSpace(p.Get("option_name" + n))
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(p.Get("option_selection" + n))
	}
	return out
}
