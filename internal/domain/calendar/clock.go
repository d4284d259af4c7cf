package calendar

import "time"

// The property market operates on Bangkok wall-clock days. A fixed offset is
// used instead of a tzdata lookup so date math never depends on the host
// machine's timezone database or locale.
const bangkokOffsetSeconds = 7 * 60 * 60

var bangkokZone = time.FixedZone("ICT", bangkokOffsetSeconds)

// Clock resolves "today" and month grids in the fixed business timezone.
// The zero value uses the real wall clock; tests override Now.
type Clock struct {
	Now func() time.Time
}

func (c Clock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today returns the current calendar day in Bangkok.
func (c Clock) Today() Date {
	return Date(c.now().In(bangkokZone).Format(dateLayout))
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (Date, Date) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Date(first.Format(dateLayout)), Date(last.Format(dateLayout))
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
