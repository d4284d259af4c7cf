package availability

import (
	"sort"

	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// Period is a maximal run of consecutive occupied days.
type Period struct {
	Days     []calendar.Date
	FirstDay calendar.Date
	LastDay  calendar.Date
}

// Occupancy is the merged view of a property's blocked days and bookings.
// It is a pure derived value: rebuilt from source records on every change,
// never mutated in place.
type Occupancy struct {
	occupied      map[calendar.Date]struct{}
	blocked       map[calendar.Date]struct{}
	bookings      []BookingRange
	periods       []Period
	freeFirstDays map[calendar.Date]struct{}
}

// BuildOccupancy merges blocked-date records and booking ranges into the
// occupied-day union and groups it into maximal periods.
//
// Booking expansion is inclusive of the checkout day: the raw union marks
// the departure day occupied so that back-to-back stays render as one
// contiguous period. The first day of every period is collected into the
// free-first-day set, which the bookability predicate uses to re-admit
// those "half blocked" days as check-in candidates.
//
// Records with a missing or unparseable day are skipped, never raised:
// upstream data is heterogeneous by nature and one bad record must not
// break the whole calendar.
func BuildOccupancy(blocked []BlockedRecord, bookings []BookingRange) Occupancy {
	occ := Occupancy{
		occupied:      make(map[calendar.Date]struct{}),
		blocked:       make(map[calendar.Date]struct{}),
		freeFirstDays: make(map[calendar.Date]struct{}),
	}

	for _, rec := range blocked {
		if !rec.Date.Valid() {
			continue
		}
		occ.blocked[rec.Date] = struct{}{}
		occ.occupied[rec.Date] = struct{}{}
	}

	for _, b := range bookings {
		if !b.Valid() {
			continue
		}
		occ.bookings = append(occ.bookings, b)
		for d := b.CheckIn; d <= b.CheckOut; d = calendar.AddDays(d, 1) {
			occ.occupied[d] = struct{}{}
		}
	}

	days := make([]calendar.Date, 0, len(occ.occupied))
	for d := range occ.occupied {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var current []calendar.Date
	flush := func() {
		if len(current) == 0 {
			return
		}
		p := Period{
			Days:     current,
			FirstDay: current[0],
			LastDay:  current[len(current)-1],
		}
		occ.periods = append(occ.periods, p)
		occ.freeFirstDays[p.FirstDay] = struct{}{}
		current = nil
	}
	for _, d := range days {
		if len(current) > 0 && calendar.DaysDiff(current[len(current)-1], d) != 1 {
			flush()
		}
		current = append(current, d)
	}
	flush()

	return occ
}

// Periods returns the maximal occupied periods in chronological order.
func (o Occupancy) Periods() []Period { return o.periods }

// Bookings returns the normalized booking ranges that entered the merge.
func (o Occupancy) Bookings() []BookingRange { return o.bookings }

// IsOccupied reports raw occupied-union membership, before the
// free-first-day override is applied.
func (o Occupancy) IsOccupied(day calendar.Date) bool {
	_, ok := o.occupied[day]
	return ok
}

// IsFreeFirstDay reports whether day starts an occupied period.
func (o Occupancy) IsFreeFirstDay(day calendar.Date) bool {
	_, ok := o.freeFirstDays[day]
	return ok
}

// OccupiedDays returns the sorted raw occupied union.
func (o Occupancy) OccupiedDays() []calendar.Date {
	out := make([]calendar.Date, 0, len(o.occupied))
	for _, p := range o.periods {
		out = append(out, p.Days...)
	}
	return out
}

// FreeFirstDays returns the sorted set of period first days.
func (o Occupancy) FreeFirstDays() []calendar.Date {
	out := make([]calendar.Date, 0, len(o.freeFirstDays))
	for _, p := range o.periods {
		out = append(out, p.FirstDay)
	}
	return out
}
