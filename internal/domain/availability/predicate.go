package availability

import "github.com/dev-master21/nova-site-sub000/internal/domain/calendar"

// IsDateBookable decides whether day can serve as part of a new stay.
// Rules, in order:
//
//  1. A day with an explicit blocked record is never bookable. This beats
//     the free-first-day override: a lone admin block forms a single-day
//     period whose first day is the block itself, not anyone's checkout
//     morning.
//  2. A period's first day is otherwise bookable even though the raw
//     union marks it occupied. It is the checkout morning of a stay, so a
//     new arrival may start there.
//  3. A day inside any booking's [check-in, check-out) is not bookable.
//     Note the exclusive end: checkout days are naturally free here, the
//     override only matters when the raw union swallows them.
//  4. Everything else is bookable.
func (o Occupancy) IsDateBookable(day calendar.Date) bool {
	if _, blocked := o.blocked[day]; blocked {
		return false
	}
	if o.IsFreeFirstDay(day) {
		return true
	}
	for _, b := range o.bookings {
		if b.Contains(day) {
			return false
		}
	}
	return true
}

// IsRangeBookable reports whether every day in [checkIn, checkOut) is
// bookable. Callers guarantee checkOut > checkIn. Boundaries that only
// look like dates (such as 2025-02-30) are rejected up front, otherwise
// the day walk below would never terminate.
func (o Occupancy) IsRangeBookable(checkIn, checkOut calendar.Date) bool {
	if !checkIn.Valid() || !checkOut.Valid() {
		return false
	}
	for d := checkIn; d < checkOut; d = calendar.AddDays(d, 1) {
		if !o.IsDateBookable(d) {
			return false
		}
	}
	return true
}
