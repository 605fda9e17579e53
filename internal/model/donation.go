package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DonationSource string

const (
	SourceIPN    DonationSource = "paypal_ipn"
	SourceSearch DonationSource = "paypal_search"
)

// Donation is immutable once appended. Corrections are new records.
type Donation struct {
	// Hash of the processor transaction id.
	ID          string
	RecipientID string
	DonorName   string
	Amount      decimal.Decimal
	Currency    string
	Message     string
	RawSource   DonationSource
	CreatedAt   time.Time
}

func (d Donation) EntityID() string       { return d.ID }
func (d Donation) EntityKind() EntityKind { return KindDonation }

// Payment is a verified registration fee payment.
type Payment struct {
	ID        string
	PayerName string
	Item      string
	Options   map[string]string
	Amount    decimal.Decimal
	Currency  string
	CreatedAt time.Time
}

func (p Payment) EntityID() string       { return p.ID }
func (p Payment) EntityKind() EntityKind { return KindPayment }
