package calendar

import (
	"time"
)

// Date is a canonical calendar day in YYYY-MM-DD form. It is the only date
// representation the availability core operates on; lexicographic order of
// Dates matches chronological order because the format is zero-padded.
type Date string

const dateLayout = "2006-01-02"

// ParseDate accepts a string whose first ten characters form a YYYY-MM-DD
// literal. Longer strings (timestamps, ISO datetimes) are truncated to the
// day; anything else reports not-ok.
func ParseDate(s string) (Date, bool) {
	if len(s) < 10 || !isDateLiteral(s[:10]) {
		return "", false
	}
	return Date(s[:10]), true
}

// ExtractDateStr resolves a calendar day out of a loosely typed upstream
// value. Plain strings are parsed directly; decoded JSON objects are probed
// under the known field names in priority order. Nil, numbers and anything
// unrecognized report not-ok rather than failing.
func ExtractDateStr(value any) (Date, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return ParseDate(v)
	case Date:
		return ParseDate(string(v))
	case map[string]any:
		for _, key := range []string{"blocked_date", "date"} {
			raw, ok := v[key]
			if !ok {
				continue
			}
			if d, ok := ExtractDateStr(raw); ok {
				return d, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// Time converts d to midnight UTC. The boolean is false when d is not a
// valid canonical date.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Valid reports whether d parses as a real calendar day.
func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// AddDays returns d shifted by n whole days. Arithmetic is done on midnight
// UTC instants, so results are exact across month, year and leap boundaries.
// Invalid input yields the empty Date.
func AddDays(d Date, n int) Date {
	t, ok := d.Time()
	if !ok {
		return ""
	}
	return Date(t.AddDate(0, 0, n).Format(dateLayout))
}

// DaysDiff returns the number of whole days from a to b, positive when b is
// after a. Invalid input yields zero.
func DaysDiff(a, b Date) int {
	ta, okA := a.Time()
	tb, okB := b.Time()
	if !okA || !okB {
		return 0
	}
	return int(tb.Sub(ta) / (24 * time.Hour))
}

func isDateLiteral(s string) bool {
	for i := 0; i < 10; i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return false
			}
		default:
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
	}
	return true
}
