package kafka

import (
	"context"
	"testing"

	"github.com/IBM/sarama"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

type mirrorCall struct {
	bookingID  string
	propertyID string
	rng        domain.BookingRange
	status     string
}

type fakeMirror struct {
	upserts []mirrorCall
	removes []string
}

func (f *fakeMirror) UpsertBooking(ctx context.Context, bookingID, propertyID string, rng domain.BookingRange, status string) error {
	f.upserts = append(f.upserts, mirrorCall{bookingID, propertyID, rng, status})
	return nil
}

func (f *fakeMirror) RemoveBooking(ctx context.Context, bookingID string) error {
	f.removes = append(f.removes, bookingID)
	return nil
}

type blockedCall struct {
	propertyID string
	day        calendar.Date
	reason     string
}

type fakeBlockedWriter struct {
	added   []blockedCall
	removed []blockedCall
}

func (f *fakeBlockedWriter) AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error {
	f.added = append(f.added, blockedCall{propertyID, rec.Date, rec.Reason})
	return nil
}

func (f *fakeBlockedWriter) RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error {
	f.removed = append(f.removed, blockedCall{propertyID: propertyID, day: day})
	return nil
}

func newSyncHandler() (*SyncHandler, *fakeMirror, *fakeBlockedWriter) {
	mirror := &fakeMirror{}
	blocked := &fakeBlockedWriter{}
	h := &SyncHandler{
		BookingTopic:  "booking.events",
		CalendarTopic: "calendar.sync",
		Mirror:        mirror,
		Blocked:       blocked,
	}
	return h, mirror, blocked
}

func bookingMsg(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "booking.events", Value: []byte(value)}
}

func calendarMsg(value string) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "calendar.sync", Value: []byte(value)}
}

func TestSyncHandlerUpsertsConfirmedBooking(t *testing.T) {
	h, mirror, _ := newSyncHandler()
	err := h.Handle(context.Background(), bookingMsg(
		`{"booking_id":"b-1","property_id":"villa-1","status":"confirmed","check_in":"2025-07-01","check_out":"2025-07-05"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(mirror.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(mirror.upserts))
	}
	call := mirror.upserts[0]
	if call.bookingID != "b-1" || call.propertyID != "villa-1" || call.status != "confirmed" {
		t.Fatalf("upsert = %+v", call)
	}
	if call.rng.CheckIn != "2025-07-01" || call.rng.CheckOut != "2025-07-05" {
		t.Fatalf("range = %+v", call.rng)
	}
}

func TestSyncHandlerAcceptsDateSuffixedFields(t *testing.T) {
	h, mirror, _ := newSyncHandler()
	err := h.Handle(context.Background(), bookingMsg(
		`{"booking_id":"b-2","property_id":"villa-1","status":"paid","check_in_date":"2025-08-01T14:00:00Z","check_out_date":"2025-08-04T11:00:00Z"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(mirror.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(mirror.upserts))
	}
	if rng := mirror.upserts[0].rng; rng.CheckIn != "2025-08-01" || rng.CheckOut != "2025-08-04" {
		t.Fatalf("range = %+v", rng)
	}
}

func TestSyncHandlerRemovesCancelledBooking(t *testing.T) {
	h, mirror, _ := newSyncHandler()
	err := h.Handle(context.Background(), bookingMsg(
		`{"booking_id":"b-1","property_id":"villa-1","status":"cancelled"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(mirror.removes) != 1 || mirror.removes[0] != "b-1" {
		t.Fatalf("removes = %v, want [b-1]", mirror.removes)
	}
	if len(mirror.upserts) != 0 {
		t.Fatal("cancellation must not upsert")
	}
}

func TestSyncHandlerDropsMalformedBookingEvents(t *testing.T) {
	h, mirror, _ := newSyncHandler()
	payloads := []string{
		`not json`,
		`{"property_id":"villa-1","status":"confirmed"}`,
		`{"booking_id":"b-3","property_id":"villa-1","status":"confirmed","check_in":"2025-07-05","check_out":"2025-07-01"}`,
	}
	for _, payload := range payloads {
		if err := h.Handle(context.Background(), bookingMsg(payload)); err != nil {
			t.Fatalf("payload %q must be dropped, not returned as error: %v", payload, err)
		}
	}
	if len(mirror.upserts) != 0 || len(mirror.removes) != 0 {
		t.Fatal("malformed events must not touch the mirror")
	}
}

func TestSyncHandlerBlocksAndUnblocksDates(t *testing.T) {
	h, _, blocked := newSyncHandler()

	err := h.Handle(context.Background(), calendarMsg(
		`{"property_id":"villa-1","action":"block","blocked_date":"2025-09-10","reason":"owner stay"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	// Action defaults to block and the date key may also be plain "date".
	err = h.Handle(context.Background(), calendarMsg(
		`{"property_id":"villa-1","date":"2025-09-11T00:00:00Z"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	err = h.Handle(context.Background(), calendarMsg(
		`{"property_id":"villa-1","action":"unblock","date":"2025-09-10"}`,
	))
	if err != nil {
		t.Fatal(err)
	}

	if len(blocked.added) != 2 {
		t.Fatalf("added = %v, want 2 entries", blocked.added)
	}
	if blocked.added[0].day != "2025-09-10" || blocked.added[0].reason != "owner stay" {
		t.Fatalf("first block = %+v", blocked.added[0])
	}
	if blocked.added[1].day != "2025-09-11" {
		t.Fatalf("second block = %+v", blocked.added[1])
	}
	if len(blocked.removed) != 1 || blocked.removed[0].day != "2025-09-10" {
		t.Fatalf("removed = %v", blocked.removed)
	}
}

func TestSyncHandlerIgnoresUnknownTopics(t *testing.T) {
	h, mirror, blocked := newSyncHandler()
	msg := &sarama.ConsumerMessage{Topic: "somebody.else", Value: []byte(`{"x":1}`)}
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if len(mirror.upserts)+len(mirror.removes)+len(blocked.added)+len(blocked.removed) != 0 {
		t.Fatal("foreign topics must be ignored")
	}
}
