package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeeSchedule prices registration items. It is configuration, not code: each year's
// event loads its own schedule.
type FeeSchedule struct {
	Items map[string]FeeItem
}

type FeeItem struct {
	Base decimal.Decimal
	// option name -> selection -> surcharge
	Options map[string]map[string]decimal.Decimal
}

func (s FeeSchedule) IsRegistration(item string) bool {
	_, ok := s.Items[normalizeFeeKey(item)]
	return ok
}

// Expected returns the exact fee for item with the registrant's selections.
// Every option the item prices must be selected with a known value; options the
// schedule does not price are ignored.
func (s FeeSchedule) Expected(item string, selections map[string]string) (decimal.Decimal, error) {
	fi, ok := s.Items[normalizeFeeKey(item)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown registration item %q", ErrBusinessRule, item)
	}

	normalized := make(map[string]string, len(selections))
	for k, v := range selections {
		normalized[normalizeFeeKey(k)] = normalizeFeeKey(v)
	}

	total := fi.Base
	for name, prices := range fi.Options {
		sel, ok := normalized[name]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: option %q not selected", ErrBusinessRule, name)
		}
		price, ok := prices[sel]
		if !ok {
			return decimal.Zero, fmt.Errorf("%w: option %q has unknown selection %q", ErrBusinessRule, name, sel)
		}
		total = total.Add(price)
	}

	return total, nil
}

func normalizeFeeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewFeeItem normalizes option keys so lookups are case-insensitive.
func NewFeeItem(base decimal.Decimal, options map[string]map[string]decimal.Decimal) FeeItem {
	opts := make(map[string]map[string]decimal.Decimal, len(options))
	for name, prices := range options {
		p := make(map[string]decimal.Decimal, len(prices))
		for sel, price := range prices {
			p[normalizeFeeKey(sel)] = price
		}
		opts[normalizeFeeKey(name)] = p
	}
	return FeeItem{Base: base, Options: opts}
}

func NewFeeSchedule(items map[string]FeeItem) FeeSchedule {
	out := make(map[string]FeeItem, len(items))
	for k, v := range items {
		out[normalizeFeeKey(k)] = v
	}
	return FeeSchedule{Items: out}
}
