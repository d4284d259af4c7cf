package availability

import (
	"errors"
	"time"

	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

var (
	ErrInvalidNights = errors.New("availability: nights count must be at least 1")
	ErrInvalidWindow = errors.New("availability: search window is empty or malformed")
)

// SearchMode selects how a SearchWindow describes its day range.
type SearchMode string

const (
	SearchByMonth  SearchMode = "month"
	SearchByPeriod SearchMode = "period"
)

// SearchWindow describes a slot search: either a whole calendar month or an
// explicit day range, plus the minimum stay length and a result cap.
type SearchWindow struct {
	Mode  SearchMode
	Year  int
	Month time.Month
	Start calendar.Date
	End   calendar.Date

	Nights int
	Limit  int
}

// Bounds resolves the window to an inclusive first/last day pair.
func (w SearchWindow) Bounds() (calendar.Date, calendar.Date, error) {
	switch w.Mode {
	case SearchByMonth:
		if w.Year < 1 || w.Month < time.January || w.Month > time.December {
			return "", "", ErrInvalidWindow
		}
		first, last := calendar.MonthBounds(w.Year, w.Month)
		return first, last, nil
	case SearchByPeriod:
		if !w.Start.Valid() || !w.End.Valid() || w.End < w.Start {
			return "", "", ErrInvalidWindow
		}
		return w.Start, w.End, nil
	default:
		return "", "", ErrInvalidWindow
	}
}

// Slot is a candidate bookable stay. Prices are attached later by callers
// that consult the pricing collaborator; the finder itself is pure.
type Slot struct {
	CheckIn  calendar.Date `json:"check_in"`
	CheckOut calendar.Date `json:"check_out"`
	Nights   int           `json:"nights"`
}

// FindSlots walks the window day by day, accumulates maximal runs of
// bookable days and emits one slot per valid start within each run. A run
// of K consecutive bookable days spans K-1 nights; when that covers the
// requested stay, every start from the run's first day through
// runEnd-nights+1 is surfaced, not just the earliest, so the UI can offer
// each alternative. The list is chronological and capped at Limit.
//
// An empty result is a normal outcome; it is what triggers the
// alternative-property search upstream.
func FindSlots(w SearchWindow, occ Occupancy) ([]Slot, error) {
	if w.Nights < 1 {
		return nil, ErrInvalidNights
	}
	first, last, err := w.Bounds()
	if err != nil {
		return nil, err
	}

	limit := w.Limit
	if limit <= 0 {
		limit = defaultSlotLimit
	}

	slots := make([]Slot, 0)
	var run []calendar.Date
	flush := func() {
		defer func() { run = nil }()
		if len(run)-1 < w.Nights {
			return
		}
		for i := 0; i+w.Nights <= len(run) && len(slots) < limit; i++ {
			start := run[i]
			slots = append(slots, Slot{
				CheckIn:  start,
				CheckOut: calendar.AddDays(start, w.Nights),
				Nights:   w.Nights,
			})
		}
	}

	end := calendar.AddDays(last, 1)
	for d := first; d != end; d = calendar.AddDays(d, 1) {
		if occ.IsDateBookable(d) {
			run = append(run, d)
			continue
		}
		flush()
		if len(slots) >= limit {
			return slots, nil
		}
	}
	flush()
	return slots, nil
}

const defaultSlotLimit = 30

// PeriodReport summarizes the availability of one requested range.
type PeriodReport struct {
	FullyAvailable     bool            `json:"is_fully_available"`
	PartiallyAvailable bool            `json:"is_partially_available"`
	TotalDays          int             `json:"total_days"`
	FreeDays           int             `json:"free_days"`
	OccupiedDays       int             `json:"occupied_days"`
	OccupiedDates      []calendar.Date `json:"occupied_dates,omitempty"`
	NearestSlots       []Slot          `json:"nearest_slots,omitempty"`
}

const nearestSlotLimit = 5

// CheckPeriod classifies the stay [checkIn, checkOut) against the
// occupancy. When the range is not fully available, OccupiedDates lists
// every non-bookable day for UI disclosure and NearestSlots proposes
// replacement stays within the same window.
func CheckPeriod(checkIn, checkOut calendar.Date, occ Occupancy, nights int) (PeriodReport, error) {
	if nights < 1 {
		return PeriodReport{}, ErrInvalidNights
	}
	if !checkIn.Valid() || !checkOut.Valid() || checkOut <= checkIn {
		return PeriodReport{}, ErrInvalidWindow
	}

	report := PeriodReport{TotalDays: calendar.DaysDiff(checkIn, checkOut)}
	for d := checkIn; d < checkOut; d = calendar.AddDays(d, 1) {
		if occ.IsDateBookable(d) {
			report.FreeDays++
			continue
		}
		report.OccupiedDays++
		report.OccupiedDates = append(report.OccupiedDates, d)
	}
	report.FullyAvailable = report.OccupiedDays == 0
	report.PartiallyAvailable = !report.FullyAvailable && report.FreeDays > 0

	if !report.FullyAvailable {
		slots, err := FindSlots(SearchWindow{
			Mode:   SearchByPeriod,
			Start:  checkIn,
			End:    checkOut,
			Nights: nights,
			Limit:  nearestSlotLimit,
		}, occ)
		if err != nil {
			return PeriodReport{}, err
		}
		report.NearestSlots = slots
	}
	return report, nil
}
