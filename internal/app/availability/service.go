// Package availability wires the pure date-availability core to the
// service's storage and collaborator adapters. Every surface that shows
// availability (calendar grid, slot search, period check, alternatives)
// goes through this package so occupancy semantics cannot drift between
// them.
package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

var ErrPropertyRequired = errors.New("availability: property id is required")

// BlockedStore provides the admin-owned blocked-date records.
type BlockedStore interface {
	ListBlocked(ctx context.Context, propertyID string) ([]domain.BlockedRecord, error)
	AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error
	RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error
}

// BookingStore provides the booking read model mirrored from the booking
// backend's lifecycle events.
type BookingStore interface {
	ListBookings(ctx context.Context, propertyID string) ([]domain.BookingRange, error)
}

// Service computes merged occupancy views per property.
type Service struct {
	Blocked  BlockedStore
	Bookings BookingStore
	Clock    calendar.Clock
	Logger   *slog.Logger
}

// Occupancy loads both record sources for the property and merges them.
func (s *Service) Occupancy(ctx context.Context, propertyID string) (domain.Occupancy, error) {
	if propertyID == "" {
		return domain.Occupancy{}, ErrPropertyRequired
	}
	blocked, err := s.Blocked.ListBlocked(ctx, propertyID)
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("load blocked dates: %w", err)
	}
	bookings, err := s.Bookings.ListBookings(ctx, propertyID)
	if err != nil {
		return domain.Occupancy{}, fmt.Errorf("load bookings: %w", err)
	}
	return domain.BuildOccupancy(blocked, bookings), nil
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date         calendar.Date `json:"date"`
	Bookable     bool          `json:"bookable"`
	Occupied     bool          `json:"occupied"`
	CheckoutOnly bool          `json:"checkout_only"`
}

// MonthCalendar describes a property's availability over one month, the
// shape the booking calendar renders from.
type MonthCalendar struct {
	PropertyID    string          `json:"property_id"`
	Days          []CalendarDay   `json:"days"`
	FreeFirstDays []calendar.Date `json:"free_first_days"`
	Today         calendar.Date   `json:"today"`
}

// Calendar builds the month grid for the given property.
func (s *Service) Calendar(ctx context.Context, propertyID string, year int, month int) (MonthCalendar, error) {
	occ, err := s.Occupancy(ctx, propertyID)
	if err != nil {
		return MonthCalendar{}, err
	}
	w := domain.SearchWindow{Mode: domain.SearchByMonth, Year: year, Month: time.Month(month)}
	first, last, err := w.Bounds()
	if err != nil {
		return MonthCalendar{}, err
	}

	cal := MonthCalendar{
		PropertyID:    propertyID,
		FreeFirstDays: occ.FreeFirstDays(),
		Today:         s.Clock.Today(),
	}
	end := calendar.AddDays(last, 1)
	for d := first; d != end; d = calendar.AddDays(d, 1) {
		cal.Days = append(cal.Days, CalendarDay{
			Date:         d,
			Bookable:     occ.IsDateBookable(d),
			Occupied:     occ.IsOccupied(d),
			CheckoutOnly: occ.IsFreeFirstDay(d),
		})
	}
	return cal, nil
}

// FindSlots runs the slot finder against the property's occupancy.
func (s *Service) FindSlots(ctx context.Context, propertyID string, w domain.SearchWindow) ([]domain.Slot, error) {
	occ, err := s.Occupancy(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return domain.FindSlots(w, occ)
}

// CheckPeriod reports how a requested stay intersects the property's
// occupancy, including the nearest replacement slots when it does not fit.
func (s *Service) CheckPeriod(ctx context.Context, propertyID string, checkIn, checkOut calendar.Date, nights int) (domain.PeriodReport, error) {
	occ, err := s.Occupancy(ctx, propertyID)
	if err != nil {
		return domain.PeriodReport{}, err
	}
	return domain.CheckPeriod(checkIn, checkOut, occ, nights)
}