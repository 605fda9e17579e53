package model

import "time"

type Rider struct {
	// Hash of the rider email. Stable for the lifetime of the ledger.
	ID        string
	FirstName string
	LastName  string
	Name      string
	// Raw email, kept only until the welcome notification is sent. Never persisted.
	Email     string
	CreatedAt time.Time
}

func (r Rider) EntityID() string       { return r.ID }
func (r Rider) EntityKind() EntityKind { return KindRider }

// RegistrationEntry is one submission of the registration form.
type RegistrationEntry struct {
	EntryID   string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}
