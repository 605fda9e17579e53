package file

import "time"

// document is the hand-auditable on-disk shape of the ledger.
type document struct {
	Riders    []riderRecord    `yaml:"riders"`
	Donations []donationRecord `yaml:"donations"`
	Payments  []paymentRecord  `yaml:"payments"`
}

type riderRecord struct {
	ID        string    `yaml:"id"`
	FirstName string    `yaml:"first_name"`
	LastName  string    `yaml:"last_name"`
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
}

type donationRecord struct {
	ID          string    `yaml:"id"`
	RecipientID string    `yaml:"to"`
	DonorName   string    `yaml:"from"`
	Amount      string    `yaml:"amount"`
	Currency    string    `yaml:"currency,omitempty"`
	Message     string    `yaml:"message"`
	RawSource   string    `yaml:"source,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty"`
}

type paymentRecord struct {
	ID        string            `yaml:"id"`
	PayerName string            `yaml:"payer"`
	Item      string            `yaml:"item"`
	Options   map[string]string `yaml:"options,omitempty"`
	Amount    string            `yaml:"amount"`
	Currency  string            `yaml:"currency,omitempty"`
	CreatedAt time.Time         `yaml:"created_at,omitempty"`
}
