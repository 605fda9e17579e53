package model

type EntityKind string

const (
	KindRider    EntityKind = "rider"
	KindDonation EntityKind = "donation"
	KindPayment  EntityKind = "payment"
)

// Entity is anything the ledger stores. The id is always a hashed identifier.
type Entity interface {
	EntityID() string
	EntityKind() EntityKind
}
