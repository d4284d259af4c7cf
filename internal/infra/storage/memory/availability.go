// Package memory provides in-memory implementations of the availability
// stores for dev mode and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// BlockedDateStore keeps blocked days per property behind a mutex.
type BlockedDateStore struct {
	mu    sync.RWMutex
	items map[string]map[calendar.Date]domain.BlockedRecord
}

func NewBlockedDateStore() *BlockedDateStore {
	return &BlockedDateStore{items: make(map[string]map[calendar.Date]domain.BlockedRecord)}
}

func (s *BlockedDateStore) ListBlocked(ctx context.Context, propertyID string) ([]domain.BlockedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]domain.BlockedRecord, 0, len(s.items[propertyID]))
	for _, rec := range s.items[propertyID] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records, nil
}

func (s *BlockedDateStore) AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDay, ok := s.items[propertyID]
	if !ok {
		byDay = make(map[calendar.Date]domain.BlockedRecord)
		s.items[propertyID] = byDay
	}
	byDay[rec.Date] = rec
	return nil
}

func (s *BlockedDateStore) RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items[propertyID], day)
	return nil
}

type mirroredBooking struct {
	propertyID string
	rng        domain.BookingRange
	status     string
}

// BookingMirrorStore is the in-memory counterpart of the Mongo booking
// mirror.
type BookingMirrorStore struct {
	mu    sync.RWMutex
	items map[string]mirroredBooking
}

func NewBookingMirrorStore() *BookingMirrorStore {
	return &BookingMirrorStore{items: make(map[string]mirroredBooking)}
}

func (s *BookingMirrorStore) ListBookings(ctx context.Context, propertyID string) ([]domain.BookingRange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []domain.BookingRange
	for _, b := range s.items {
		if b.propertyID != propertyID || b.status == "cancelled" {
			continue
		}
		bookings = append(bookings, b.rng)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CheckIn < bookings[j].CheckIn })
	return bookings, nil
}

func (s *BookingMirrorStore) UpsertBooking(ctx context.Context, bookingID, propertyID string, rng domain.BookingRange, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[bookingID] = mirroredBooking{propertyID: propertyID, rng: rng, status: status}
	return nil
}

func (s *BookingMirrorStore) RemoveBooking(ctx context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, bookingID)
	return nil
}
