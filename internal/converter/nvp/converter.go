package nvp

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// TimestampLayout is the UTC layout NVP uses for STARTDATE, ENDDATE and L_TIMESTAMPn.
const TimestampLayout = "2006-01-02T15:04:05Z"

// TypeDonation is the L_TYPE of donation transactions in TransactionSearch results.
const TypeDonation = "Donation"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SummaryFromRecord converts one TransactionSearch row.
func SummaryFromRecord(r model.FlatGroupedRecord) (model.TransactionSummary, error) {
	const op = "converter.nvp.SummaryFromRecord"

	txnID := strings.TrimSpace(r.Get("TRANSACTIONID"))
	if txnID == "" {
		return model.TransactionSummary{}, fmt.Errorf("%s: %w: row %s without TRANSACTIONID",
			op, model.ErrMalformedRecord, r.Index)
	}

	s := model.TransactionSummary{
		TransactionID: txnID,
		Type:          r.Get("TYPE"),
		Status:        r.Get("STATUS"),
		Name:          r.Get("NAME"),
		NetAmount:     r.Get("NETAMT"),
	}

	if ts := r.Get("TIMESTAMP"); ts != "" {
		parsed, err := time.Parse(TimestampLayout, ts)
		if err != nil {
			return model.TransactionSummary{}, fmt.Errorf("%s: %w: timestamp %q", op, model.ErrMalformedRecord, ts)
		}
		s.Timestamp = parsed
	}

	return s, nil
}

// SummariesFromValues converts a whole TransactionSearch response. Rows that
// cannot be converted are returned as errors next to the good ones.
func SummariesFromValues(values url.Values) ([]model.TransactionSummary, []error) {
	var (
		out  []model.TransactionSummary
		errs []error
	)
	for _, r := range ParseFlatRecords(values, ListMarker) {
		s, err := SummaryFromRecord(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

// DetailFromValues converts a GetTransactionDetails response. The recipient
// is the first item number, the message is the CUSTOM field.
func DetailFromValues(values url.Values) (model.TransactionDetail, error) {
	const op = "converter.nvp.DetailFromValues"

	txnID := values.Get("TRANSACTIONID")
	if txnID == "" {
		return model.TransactionDetail{}, fmt.Errorf("%s: %w: missing TRANSACTIONID", op, model.ErrMalformedRecord)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(values.Get("AMT")))
	if err != nil {
		return model.TransactionDetail{}, fmt.Errorf("%s: %w: AMT %q", op, model.ErrMalformedRecord, values.Get("AMT"))
	}

	d := model.TransactionDetail{
		TransactionID: txnID,
		FirstName:     strings.TrimSpace(values.Get("FIRSTNAME")),
		LastName:      strings.TrimSpace(values.Get("LASTNAME")),
		Email:         strings.TrimSpace(values.Get("EMAIL")),
		Amount:        amount,
		Currency:      values.Get("CURRENCYCODE"),
		Message:       values.Get("CUSTOM"),
		Status:        values.Get("PAYMENTSTATUS"),
		Receivers: lo.Compact([]string{
			values.Get("RECEIVEREMAIL"),
			values.Get("RECEIVERBUSINESS"),
			values.Get("RECEIVERID"),
		}),
	}

	if items := ParseFlatRecords(values, ListMarker); len(items) > 0 {
		d.RecipientID = strings.TrimSpace(items[0].Get("NUMBER"))
	}

	return d, nil
}

// DonationFromDetail builds the ledger record for a feed donation.
func DonationFromDetail(id string, d model.TransactionDetail, now time.Time) model.Donation {
	return model.Donation{
		ID:          id,
		RecipientID: d.RecipientID,
		DonorName:   d.PayerName(),
		Amount:      d.Amount,
		Currency:    d.Currency,
		Message:     d.Message,
		RawSource:   model.SourceSearch,
		CreatedAt:   now.UTC(),
	}
}
