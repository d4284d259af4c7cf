package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

type fakeBlockedStore struct {
	records map[string][]domain.BlockedRecord
	err     error
	errFor  map[string]error
}

func (f *fakeBlockedStore) ListBlocked(ctx context.Context, propertyID string) ([]domain.BlockedRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errFor[propertyID]; err != nil {
		return nil, err
	}
	return f.records[propertyID], nil
}

func (f *fakeBlockedStore) AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error {
	if f.records == nil {
		f.records = make(map[string][]domain.BlockedRecord)
	}
	f.records[propertyID] = append(f.records[propertyID], rec)
	return nil
}

func (f *fakeBlockedStore) RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error {
	kept := f.records[propertyID][:0]
	for _, rec := range f.records[propertyID] {
		if rec.Date != day {
			kept = append(kept, rec)
		}
	}
	f.records[propertyID] = kept
	return nil
}

type fakeBookingStore struct {
	bookings map[string][]domain.BookingRange
	err      error
}

func (f *fakeBookingStore) ListBookings(ctx context.Context, propertyID string) ([]domain.BookingRange, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[propertyID], nil
}

func fixedClock() calendar.Clock {
	return calendar.Clock{Now: func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}}
}

func newTestService(blocked *fakeBlockedStore, bookings *fakeBookingStore) *Service {
	return &Service{Blocked: blocked, Bookings: bookings, Clock: fixedClock()}
}

func TestServiceOccupancyMergesBothSources(t *testing.T) {
	svc := newTestService(
		&fakeBlockedStore{records: map[string][]domain.BlockedRecord{
			"villa-1": {{Date: "2025-06-10"}},
		}},
		&fakeBookingStore{bookings: map[string][]domain.BookingRange{
			"villa-1": {{CheckIn: "2025-06-20", CheckOut: "2025-06-22"}},
		}},
	)

	occ, err := svc.Occupancy(context.Background(), "villa-1")
	if err != nil {
		t.Fatal(err)
	}
	if occ.IsDateBookable("2025-06-10") {
		t.Fatal("blocked day leaked through the merge")
	}
	if occ.IsDateBookable("2025-06-21") {
		t.Fatal("booked day leaked through the merge")
	}
	if !occ.IsDateBookable("2025-06-15") {
		t.Fatal("free day reported unbookable")
	}
}

func TestServiceOccupancyRequiresProperty(t *testing.T) {
	svc := newTestService(&fakeBlockedStore{}, &fakeBookingStore{})
	if _, err := svc.Occupancy(context.Background(), ""); !errors.Is(err, ErrPropertyRequired) {
		t.Fatalf("err = %v, want ErrPropertyRequired", err)
	}
}

func TestServiceOccupancyWrapsStoreErrors(t *testing.T) {
	storeErr := errors.New("mongo down")
	svc := newTestService(&fakeBlockedStore{err: storeErr}, &fakeBookingStore{})
	if _, err := svc.Occupancy(context.Background(), "villa-1"); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}

func TestServiceCalendarMarksDayKinds(t *testing.T) {
	svc := newTestService(
		&fakeBlockedStore{},
		&fakeBookingStore{bookings: map[string][]domain.BookingRange{
			"villa-1": {{CheckIn: "2025-06-10", CheckOut: "2025-06-13"}},
		}},
	)

	cal, err := svc.Calendar(context.Background(), "villa-1", 2025, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(cal.Days) != 30 {
		t.Fatalf("June grid has %d days, want 30", len(cal.Days))
	}
	if cal.Today != "2025-06-15" {
		t.Fatalf("today = %s, want fixed 2025-06-15", cal.Today)
	}

	byDate := make(map[calendar.Date]CalendarDay, len(cal.Days))
	for _, day := range cal.Days {
		byDate[day.Date] = day
	}
	if d := byDate["2025-06-10"]; !d.Occupied || !d.CheckoutOnly || !d.Bookable {
		t.Fatalf("period first day flags = %+v", d)
	}
	if d := byDate["2025-06-11"]; !d.Occupied || d.Bookable {
		t.Fatalf("mid-stay day flags = %+v", d)
	}
	if d := byDate["2025-06-13"]; !d.Occupied || !d.Bookable || d.CheckoutOnly {
		t.Fatalf("checkout day flags = %+v", d)
	}
	if d := byDate["2025-06-20"]; d.Occupied || !d.Bookable {
		t.Fatalf("free day flags = %+v", d)
	}
}

func TestServiceFindSlotsAndCheckPeriod(t *testing.T) {
	svc := newTestService(
		&fakeBlockedStore{},
		&fakeBookingStore{bookings: map[string][]domain.BookingRange{
			"villa-1": {{CheckIn: "2025-06-05", CheckOut: "2025-06-25"}},
		}},
	)

	slots, err := svc.FindSlots(context.Background(), "villa-1", domain.SearchWindow{
		Mode:   domain.SearchByMonth,
		Year:   2025,
		Month:  time.June,
		Nights: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	// The head run 06-01..06-05 spans only 4 nights. The tail run
	// 06-25..06-30 spans 5 and admits starts 06-25 and 06-26.
	if len(slots) != 2 || slots[0].CheckIn != "2025-06-25" || slots[1].CheckIn != "2025-06-26" {
		t.Fatalf("slots = %v", slots)
	}

	report, err := svc.CheckPeriod(context.Background(), "villa-1", "2025-06-01", "2025-06-08", 7)
	if err != nil {
		t.Fatal(err)
	}
	if report.FullyAvailable {
		t.Fatal("overlapping stay reported fully available")
	}
	if report.OccupiedDays != 2 {
		t.Fatalf("occupied days = %d, want 2 (06-06, 06-07)", report.OccupiedDays)
	}
}
