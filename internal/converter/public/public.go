// Package public renders the ledger as the documents the donation page reads.
// No email address ever reaches these views.
package public

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/csytan/triplecrownforheart/internal/model"
)

const (
	OrderName   = "name"
	OrderRaised = "raised"
)

type RiderView struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Name      string      `json:"name"`
	Raised    json.Number `json:"raised"`
	CreatedAt time.Time   `json:"created_at"`
}

type DonationView struct {
	ID        string      `json:"id"`
	To        string      `json:"to"`
	From      string      `json:"from"`
	Amount    json.Number `json:"amount"`
	Currency  string      `json:"currency"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

// Riders lists riders by first then last name, or by amount raised
// (largest first) when order is OrderRaised.
func Riders(l *model.Ledger, order string) []RiderView {
	riders := l.Riders()
	model.SortRiders(riders)

	raised := Raised(l.Donations())

	views := lo.Map(riders, func(r model.Rider, _ int) RiderView {
		return RiderView{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Name:      r.Name,
			Raised:    amount(raised[r.ID]),
			CreatedAt: r.CreatedAt,
		}
	})

	if order == OrderRaised {
		sort.SliceStable(views, func(i, j int) bool {
			return raised[views[i].ID].GreaterThan(raised[views[j].ID])
		})
	}

	return views
}

// Donations lists donations in the order they were recorded.
func Donations(l *model.Ledger) []DonationView {
	return lo.Map(l.Donations(), func(d model.Donation, _ int) DonationView {
		return DonationView{
			ID:        d.ID,
			To:        d.RecipientID,
			From:      d.DonorName,
			Amount:    amount(d.Amount),
			Currency:  d.Currency,
			Message:   d.Message,
			CreatedAt: d.CreatedAt,
		}
	})
}

// Raised totals donations per recipient id.
func Raised(donations []model.Donation) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, d := range donations {
		if d.RecipientID == "" {
			continue
		}
		out[d.RecipientID] = out[d.RecipientID].Add(d.Amount)
	}
	return out
}

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
