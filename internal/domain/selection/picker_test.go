package selection

import (
	"testing"

	"github.com/dev-master21/nova-site-sub000/internal/domain/availability"
)

func occupancyWithBooking(t *testing.T) availability.Occupancy {
	t.Helper()
	return availability.BuildOccupancy(nil, []availability.BookingRange{
		{CheckIn: "2025-07-10", CheckOut: "2025-07-15"},
	})
}

func TestPickerConfirmsFreeRange(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	if got := p.Click("2025-07-01", occ); got != OutcomePicked {
		t.Fatalf("first click outcome = %v, want OutcomePicked", got)
	}
	if p.State() != StateFirstPicked {
		t.Fatalf("state = %v, want StateFirstPicked", p.State())
	}
	if got := p.Click("2025-07-05", occ); got != OutcomeConfirmed {
		t.Fatalf("second click outcome = %v, want OutcomeConfirmed", got)
	}
	in, out := p.Range()
	if in != "2025-07-01" || out != "2025-07-05" {
		t.Fatalf("range = %s..%s, want 2025-07-01..2025-07-05", in, out)
	}
}

func TestPickerReordersBackwardSelection(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	p.Click("2025-07-05", occ)
	if got := p.Click("2025-07-01", occ); got != OutcomeConfirmed {
		t.Fatalf("outcome = %v, want OutcomeConfirmed", got)
	}
	in, out := p.Range()
	if in != "2025-07-01" || out != "2025-07-05" {
		t.Fatalf("range = %s..%s, want reordered 2025-07-01..2025-07-05", in, out)
	}
}

func TestPickerResetsOnUnavailableRange(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	p.Click("2025-07-08", occ)
	if got := p.Click("2025-07-13", occ); got != OutcomeUnavailable {
		t.Fatalf("outcome = %v, want OutcomeUnavailable", got)
	}
	// The invalid selection must not be retained.
	if p.State() != StateEmpty {
		t.Fatalf("state = %v, want StateEmpty after unavailable range", p.State())
	}
	in, out := p.Range()
	if in != "" || out != "" {
		t.Fatalf("range = %s..%s, want cleared", in, out)
	}
}

func TestPickerRestartsAfterConfirmation(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	p.Click("2025-07-01", occ)
	p.Click("2025-07-05", occ)
	if got := p.Click("2025-07-20", occ); got != OutcomePicked {
		t.Fatalf("click after confirmation = %v, want OutcomePicked", got)
	}
	if p.State() != StateFirstPicked {
		t.Fatalf("state = %v, want a fresh StateFirstPicked", p.State())
	}
	if got := p.Click("2025-07-22", occ); got != OutcomeConfirmed {
		t.Fatalf("outcome = %v, want OutcomeConfirmed", got)
	}
	in, out := p.Range()
	if in != "2025-07-20" || out != "2025-07-22" {
		t.Fatalf("range = %s..%s, want 2025-07-20..2025-07-22", in, out)
	}
}

func TestPickerRejectsImpossibleDay(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	// A day that matches the date shape but does not exist on the calendar
	// must end the selection, not hang the range check.
	p.Click("2025-02-28", occ)
	if got := p.Click("2025-02-30", occ); got != OutcomeUnavailable {
		t.Fatalf("outcome = %v, want OutcomeUnavailable", got)
	}
	if p.State() != StateEmpty {
		t.Fatalf("state = %v, want StateEmpty", p.State())
	}
}

func TestPickerAllowsStayEndingAtNextCheckIn(t *testing.T) {
	occ := occupancyWithBooking(t)
	var p Picker

	// Checking out the day the existing stay begins is fine.
	p.Click("2025-07-07", occ)
	if got := p.Click("2025-07-10", occ); got != OutcomeConfirmed {
		t.Fatalf("outcome = %v, want OutcomeConfirmed for back-to-back stay", got)
	}
}
