package model

// IPNResult is what happened to a verified notification.
type IPNResult string

const (
	IPNApplied   IPNResult = "applied"
	IPNDuplicate IPNResult = "duplicate"
	IPNIgnored   IPNResult = "ignored"
)

// CycleReport summarizes one reconciliation cycle.
type CycleReport struct {
	NewRiders    int
	NewDonations int
	// Candidates deferred to the next cycle or rejected.
	Skipped int
	// Rows the feed returned that could not be read.
	Malformed int
	Stalled   bool
}

func (r CycleReport) Appended() int { return r.NewRiders + r.NewDonations }
