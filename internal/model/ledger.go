package model

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Ledger is the in-memory set of already-processed entities. It is not safe for
// concurrent use; service/ledger serializes writers.
type Ledger struct {
	riders    []Rider
	donations []Donation
	payments  []Payment

	ids map[EntityKind]map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{ids: map[EntityKind]map[string]struct{}{
		KindRider:    {},
		KindDonation: {},
		KindPayment:  {},
	}}
}

// LedgerFrom rebuilds a ledger from persisted collections.
func LedgerFrom(riders []Rider, donations []Donation, payments []Payment) (*Ledger, error) {
	l := NewLedger()
	for _, r := range riders {
		if err := l.Append(r); err != nil {
			return nil, err
		}
	}
	for _, d := range donations {
		if err := l.Append(d); err != nil {
			return nil, err
		}
	}
	for _, p := range payments {
		if err := l.Append(p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) Contains(kind EntityKind, id string) bool {
	_, ok := l.ids[kind][id]
	return ok
}

func (l *Ledger) Append(e Entity) error {
	kind, id := e.EntityKind(), e.EntityID()
	if id == "" {
		return fmt.Errorf("%w: empty %s id", ErrMalformedRecord, kind)
	}
	if l.Contains(kind, id) {
		return fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id)
	}

	switch v := e.(type) {
	case Rider:
		l.riders = append(l.riders, v)
	case Donation:
		l.donations = append(l.donations, v)
	case Payment:
		l.payments = append(l.payments, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, e)
	}

	l.ids[kind][id] = struct{}{}
	return nil
}

func (l *Ledger) Riders() []Rider       { return slices.Clone(l.riders) }
func (l *Ledger) Donations() []Donation { return slices.Clone(l.donations) }
func (l *Ledger) Payments() []Payment   { return slices.Clone(l.payments) }

func (l *Ledger) IDs(kind EntityKind) map[string]struct{} {
	return maps.Clone(l.ids[kind])
}

func (l *Ledger) Len() int {
	return len(l.riders) + len(l.donations) + len(l.payments)
}

// ScrubRiderEmails drops raw emails once they are no longer needed.
func (l *Ledger) ScrubRiderEmails() {
	for i := range l.riders {
		l.riders[i].Email = ""
	}
}

// SortRiders orders riders by first name, then last name, case-insensitively.
// The order is user-visible.
func SortRiders(riders []Rider) {
	sort.SliceStable(riders, func(i, j int) bool {
		fi, fj := strings.ToLower(riders[i].FirstName), strings.ToLower(riders[j].FirstName)
		if fi != fj {
			return fi < fj
		}
		return strings.ToLower(riders[i].LastName) < strings.ToLower(riders[j].LastName)
	})
}

func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		riders:    slices.Clone(l.riders),
		donations: slices.Clone(l.donations),
		payments:  slices.Clone(l.payments),
		ids:       make(map[EntityKind]map[string]struct{}, len(l.ids)),
	}
	for k, v := range l.ids {
		c.ids[k] = maps.Clone(v)
	}
	return c
}
