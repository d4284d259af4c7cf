// Package selection models the interactive check-in/check-out picker used
// by the booking calendar. It is pure state: the caller feeds clicked days
// and an occupancy view, and reacts to the returned outcome (for example by
// launching an alternative-property search when a range turns out taken).
package selection

import (
	"github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// State is the picker's position in the selection flow.
type State int

const (
	StateEmpty State = iota
	StateFirstPicked
	StateRangeConfirmed
)

// Outcome describes what a click produced.
type Outcome int

const (
	// OutcomePicked means a first day was selected and the picker awaits
	// the closing click.
	OutcomePicked Outcome = iota
	// OutcomeConfirmed means a bookable range was completed.
	OutcomeConfirmed
	// OutcomeUnavailable means the completed range overlapped occupied
	// days. The picker has already reset to empty: an invalid selection is
	// never retained.
	OutcomeUnavailable
)

// Picker accumulates calendar clicks into a confirmed stay range.
type Picker struct {
	state State
	first calendar.Date

	checkIn  calendar.Date
	checkOut calendar.Date
}

// State returns the current selection state.
func (p *Picker) State() State { return p.state }

// Range returns the confirmed check-in/check-out pair. Only meaningful
// after OutcomeConfirmed.
func (p *Picker) Range() (calendar.Date, calendar.Date) {
	return p.checkIn, p.checkOut
}

// Reset clears any selection in progress.
func (p *Picker) Reset() {
	*p = Picker{}
}

// Click advances the picker with a clicked day.
//
// The second click may land before the first; the pair is reordered so the
// earlier day becomes check-in. If the resulting range is not bookable the
// picker resets and reports OutcomeUnavailable. A click after a confirmed
// range starts a fresh selection with the clicked day.
func (p *Picker) Click(day calendar.Date, occ availability.Occupancy) Outcome {
	switch p.state {
	case StateEmpty, StateRangeConfirmed:
		p.first = day
		p.checkIn, p.checkOut = "", ""
		p.state = StateFirstPicked
		return OutcomePicked
	case StateFirstPicked:
		checkIn, checkOut := p.first, day
		if day < p.first {
			checkIn, checkOut = day, p.first
		}
		if !occ.IsRangeBookable(checkIn, checkOut) {
			p.Reset()
			return OutcomeUnavailable
		}
		p.checkIn, p.checkOut = checkIn, checkOut
		p.state = StateRangeConfirmed
		return OutcomeConfirmed
	}
	return OutcomePicked
}
