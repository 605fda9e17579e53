package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlatGroupedRecord is every attribute that shared one index in a flat NVP response.
type FlatGroupedRecord struct {
	Index string
	Attrs map[string]string
}

func (r FlatGroupedRecord) Get(attr string) string { return r.Attrs[attr] }

// TransactionSummary is one row of a TransactionSearch result.
type TransactionSummary struct {
	TransactionID string
	Type          string
	Status        string
	Timestamp     time.Time
	Name          string
	NetAmount     string
}

// SearchResult is every transaction a paged search returned.
type SearchResult struct {
	Summaries []TransactionSummary
	// Rows that could not be converted. They never abort the search.
	Malformed []error
	// Set when paging stopped because the search window stopped moving.
	Stalled bool
}

// TransactionDetail is the GetTransactionDetails response for one transaction.
type TransactionDetail struct {
	TransactionID string
	FirstName     string
	LastName      string
	Email         string
	Amount        decimal.Decimal
	Currency      string
	Receivers     []string
	RecipientID   string
	Message       string
	Status        string
}

func (d TransactionDetail) PayerName() string {
	switch {
	case d.FirstName == "":
		return d.LastName
	case d.LastName == "":
		return d.FirstName
	default:
		return d.FirstName + " " + d.LastName
	}
}
