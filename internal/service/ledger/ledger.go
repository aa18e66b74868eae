package ledger

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/moalamir52/Operations-Portal/internal/dates"
	"github.com/moalamir52/Operations-Portal/internal/model"
)

// ErrorKind identifies which validation check rejected an entry.
type ErrorKind string

const (
	MissingField ErrorKind = "missing_field"
	NonNumeric   ErrorKind = "non_numeric"
	Negative     ErrorKind = "negative"
	OutExceedsIn ErrorKind = "out_exceeds_in"
)

// ValidationError is an inline, operator-facing rejection of one entry.
// The ledger is left untouched when it is returned.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Ledger accumulates odometer intervals for exactly one booking and
// derives the time-prorated mileage allowance. All methods are plain
// synchronous state transitions; the caller owns locking if it shares
// an instance.
type Ledger struct {
	booking     string
	contract    *model.ContractInfo
	startDate   dates.Date
	startLocked bool
	entries     []model.LedgerEntry

	// MonthlyAllowanceKm is the entitlement accrued per 30 elapsed days.
	monthlyAllowanceKm int
	now                func() dates.Date
}

// New creates an empty ledger. now may be nil, defaulting to the wall
// clock; tests inject a fixed date.
func New(monthlyAllowanceKm int, now func() dates.Date) *Ledger {
	if now == nil {
		now = dates.Today
	}
	return &Ledger{
		monthlyAllowanceKm: monthlyAllowanceKm,
		now:                now,
	}
}

// Booking returns the governing booking identifier, "" when unset.
func (l *Ledger) Booking() string {
	return l.booking
}

// Entries returns a copy of the recorded intervals.
func (l *Ledger) Entries() []model.LedgerEntry {
	out := make([]model.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// StartDate returns the contract start date and whether it is locked.
func (l *Ledger) StartDate() (dates.Date, bool) {
	return l.startDate, l.startLocked
}

// SetBooking switches the governing identifier. Mileage accrual is
// meaningless mixed across contracts, so any change wipes all entries
// and unlocks the start date. Setting the same id again is a no-op.
func (l *Ledger) SetBooking(id string, info *model.ContractInfo) {
	id = strings.TrimSpace(id)
	if id == l.booking {
		l.contract = info
		return
	}
	log.Info().Str("booking", id).Msg("booking changed, clearing mileage ledger")
	l.booking = id
	l.contract = info
	l.entries = nil
	l.startDate = dates.Date{}
	l.startLocked = false
}

// Contract returns the reference info block for the current booking.
func (l *Ledger) Contract() *model.ContractInfo {
	return l.contract
}

// LockStartDate fixes the contract start date from a reference record.
// Once locked the date is immutable; further calls are ignored rather
// than rejected.
func (l *Ledger) LockStartDate(d dates.Date) {
	if l.startLocked {
		return
	}
	l.startDate = d
	l.startLocked = true
}

// AddEntry validates and records one odometer interval.
//
// Check order mirrors the operator form: all fields present, both
// readings numeric, both non-negative, OUT not above IN. The first
// failing check short-circuits and nothing is recorded. dateRaw may be
// empty once the start date is locked, in which case the locked date is
// used; the first accepted entry locks the start date if a reference
// record has not already done so.
func (l *Ledger) AddEntry(dateRaw, outRaw, inRaw string) (model.LedgerEntry, *ValidationError) {
	dateRaw = strings.TrimSpace(dateRaw)
	entryDate := l.startDate
	hasDate := l.startLocked
	if dateRaw != "" {
		d, err := dates.ParseISO(dateRaw)
		if err != nil {
			return model.LedgerEntry{}, &ValidationError{Kind: NonNumeric, Message: "Entry date is not a valid date."}
		}
		entryDate = d
		hasDate = true
	}

	if !hasDate || strings.TrimSpace(outRaw) == "" || strings.TrimSpace(inRaw) == "" {
		return model.LedgerEntry{}, &ValidationError{Kind: MissingField, Message: "Please enter all fields."}
	}

	outNum, errOut := strconv.Atoi(strings.TrimSpace(outRaw))
	inNum, errIn := strconv.Atoi(strings.TrimSpace(inRaw))
	if errOut != nil || errIn != nil {
		return model.LedgerEntry{}, &ValidationError{Kind: NonNumeric, Message: "OUT and IN must be numbers."}
	}
	if outNum < 0 || inNum < 0 {
		return model.LedgerEntry{}, &ValidationError{Kind: Negative, Message: "OUT and IN must be positive numbers."}
	}
	if outNum > inNum {
		return model.LedgerEntry{}, &ValidationError{Kind: OutExceedsIn, Message: "OUT cannot be greater than IN."}
	}

	entry := model.LedgerEntry{Date: entryDate, Out: outNum, In: inNum}
	l.entries = append(l.entries, entry)
	if !l.startLocked {
		l.startDate = entryDate
		l.startLocked = true
	}
	return entry, nil
}

// firstEntryDate is the calendar minimum across all entries, not the
// insertion order.
func (l *Ledger) firstEntryDate() (dates.Date, bool) {
	if len(l.entries) == 0 {
		return dates.Date{}, false
	}
	first := l.entries[0].Date
	for _, e := range l.entries[1:] {
		if e.Date.Before(first) {
			first = e.Date
		}
	}
	return first, true
}

// Summary derives the accrual report. endOverride, when non-nil,
// replaces "today" as the end of the elapsed interval.
//
// The allowance is a straight linear proration truncated toward zero:
// floor(elapsedDays / 30 * monthlyAllowance). There is deliberately no
// day-zero floor, so same-day usage shows fully exceeded until a day
// boundary passes.
func (l *Ledger) Summary(endOverride *dates.Date) model.MileageSummary {
	var s model.MileageSummary
	for _, e := range l.entries {
		s.UsedKm += e.Distance()
	}

	first, ok := l.firstEntryDate()
	if ok {
		end := l.now()
		if endOverride != nil {
			end = *endOverride
		}
		s.ElapsedDays = dates.DaysBetween(first, end)
	}

	s.AllowedKm = s.ElapsedDays * l.monthlyAllowanceKm / 30
	s.ExceededKm = s.UsedKm - s.AllowedKm
	if s.ExceededKm < 0 {
		s.ExceededKm = 0
	}
	return s
}

// Snapshot captures the full persistable state.
func (l *Ledger) Snapshot() model.LedgerSnapshot {
	return model.LedgerSnapshot{
		Booking:     l.booking,
		Contract:    l.contract,
		StartDate:   l.startDate,
		StartLocked: l.startLocked,
		Entries:     l.Entries(),
	}
}

// Restore replaces the ledger state with a saved snapshot.
func (l *Ledger) Restore(snap model.LedgerSnapshot) {
	l.booking = snap.Booking
	l.contract = snap.Contract
	l.startDate = snap.StartDate
	l.startLocked = snap.StartLocked
	l.entries = make([]model.LedgerEntry, len(snap.Entries))
	copy(l.entries, snap.Entries)
}
