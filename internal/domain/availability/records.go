package availability

import (
	"encoding/json"

	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// BlockedRecord is one calendar day explicitly taken out of availability,
// e.g. an admin block or an external calendar sync entry. The upstream
// payload carries it either as a bare date string or as an object with the
// day under "blocked_date" or "date".
type BlockedRecord struct {
	Date   calendar.Date
	Reason string
}

// UnmarshalJSON accepts both upstream shapes. Records whose day cannot be
// resolved decode to a zero Date and are skipped by the merger; decoding
// never fails on shape alone.
func (r *BlockedRecord) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if d, ok := calendar.ExtractDateStr(raw); ok {
		r.Date = d
	}
	if obj, ok := raw.(map[string]any); ok {
		if reason, ok := obj["reason"].(string); ok {
			r.Reason = reason
		}
	}
	return nil
}

// BookingRange is a reserved stay. CheckIn is the arrival day (inclusive),
// CheckOut the departure day (exclusive for blocking purposes: the guest
// leaves that morning and a new arrival may check in the same day).
type BookingRange struct {
	CheckIn  calendar.Date
	CheckOut calendar.Date
}

// Valid reports whether both boundaries are present and in order.
func (b BookingRange) Valid() bool {
	return b.CheckIn.Valid() && b.CheckOut.Valid() && b.CheckIn < b.CheckOut
}

// Nights returns the length of the stay in nights.
func (b BookingRange) Nights() int {
	return calendar.DaysDiff(b.CheckIn, b.CheckOut)
}

// Contains reports whether day falls within [CheckIn, CheckOut).
func (b BookingRange) Contains(day calendar.Date) bool {
	return day >= b.CheckIn && day < b.CheckOut
}

// UnmarshalJSON accepts both upstream field conventions: check_in/check_out
// and check_in_date/check_out_date. A missing or unparseable boundary leaves
// the corresponding field zero; the merger skips such ranges entirely.
func (b *BookingRange) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.CheckIn = firstDateField(raw, "check_in", "check_in_date")
	b.CheckOut = firstDateField(raw, "check_out", "check_out_date")
	return nil
}

func firstDateField(obj map[string]any, keys ...string) calendar.Date {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if d, ok := calendar.ExtractDateStr(raw); ok {
			return d
		}
	}
	return ""
}
