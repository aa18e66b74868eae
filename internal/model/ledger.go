package model

import "github.com/moalamir52/Operations-Portal/internal/dates"

// LedgerEntry is one odometer interval. OUT <= IN is enforced on entry.
type LedgerEntry struct {
	Date dates.Date `json:"date"`
	Out  int        `json:"out"`
	In   int        `json:"in"`
}

// Distance is the kilometers covered by this interval.
func (e LedgerEntry) Distance() int {
	return e.In - e.Out
}

// ContractInfo is the reference-sheet block shown next to the ledger.
type ContractInfo struct {
	Booking  string `json:"booking"`
	Contract string `json:"contract"`
	Customer string `json:"customer"`
}

// MileageSummary is the derived accrual report for one booking.
type MileageSummary struct {
	ElapsedDays int `json:"elapsedDays"`
	AllowedKm   int `json:"allowedKm"`
	UsedKm      int `json:"usedKm"`
	ExceededKm  int `json:"exceededKm"`
}

// LedgerSnapshot is the persisted single-slot state of the mileage view.
type LedgerSnapshot struct {
	Booking     string        `json:"booking"`
	Contract    *ContractInfo `json:"contract,omitempty"`
	StartDate   dates.Date    `json:"startDate"`
	StartLocked bool          `json:"startLocked"`
	Entries     []LedgerEntry `json:"entries"`
}
