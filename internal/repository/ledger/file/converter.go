package file

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func toDocument(l *model.Ledger) document {
	riders := l.Riders()
	model.SortRiders(riders)

	doc := document{
		Riders:    make([]riderRecord, 0, len(riders)),
		Donations: make([]donationRecord, 0, len(l.Donations())),
		Payments:  make([]paymentRecord, 0, len(l.Payments())),
	}

	for _, r := range riders {
		doc.Riders = append(doc.Riders, riderRecord{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Name:      r.Name,
			CreatedAt: r.CreatedAt,
		})
	}
	for _, d := range l.Donations() {
		doc.Donations = append(doc.Donations, donationRecord{
			ID:          d.ID,
			RecipientID: d.RecipientID,
			DonorName:   d.DonorName,
			Amount:      d.Amount.StringFixed(2),
			Currency:    d.Currency,
			Message:     d.Message,
			RawSource:   string(d.RawSource),
			CreatedAt:   d.CreatedAt,
		})
	}
	for _, p := range l.Payments() {
		doc.Payments = append(doc.Payments, paymentRecord{
			ID:        p.ID,
			PayerName: p.PayerName,
			Item:      p.Item,
			Options:   p.Options,
			Amount:    p.Amount.StringFixed(2),
			Currency:  p.Currency,
			CreatedAt: p.CreatedAt,
		})
	}

	return doc
}

func fromDocument(doc document) (*model.Ledger, error) {
	riders := make([]model.Rider, 0, len(doc.Riders))
	for _, r := range doc.Riders {
		riders = append(riders, model.Rider{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Name:      r.Name,
			CreatedAt: r.CreatedAt,
		})
	}

	donations := make([]model.Donation, 0, len(doc.Donations))
	for _, d := range doc.Donations {
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("donation %s: amount %q: %w", d.ID, d.Amount, err)
		}
		donations = append(donations, model.Donation{
			ID:          d.ID,
			RecipientID: d.RecipientID,
			DonorName:   d.DonorName,
			Amount:      amount,
			Currency:    d.Currency,
			Message:     d.Message,
			RawSource:   model.DonationSource(d.RawSource),
			CreatedAt:   d.CreatedAt,
		})
	}

	payments := make([]model.Payment, 0, len(doc.Payments))
	for _, p := range doc.Payments {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return nil, fmt.Errorf("payment %s: amount %q: %w", p.ID, p.Amount, err)
		}
		payments = append(payments, model.Payment{
			ID:        p.ID,
			PayerName: p.PayerName,
			Item:      p.Item,
			Options:   p.Options,
			Amount:    amount,
			Currency:  p.Currency,
			CreatedAt: p.CreatedAt,
		})
	}

	return model.LedgerFrom(riders, donations, payments)
}
