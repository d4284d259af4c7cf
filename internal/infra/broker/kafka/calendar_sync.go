package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// BookingMirror is the write side of the booking read model.
type BookingMirror interface {
	UpsertBooking(ctx context.Context, bookingID, propertyID string, rng domain.BookingRange, status string) error
	RemoveBooking(ctx context.Context, bookingID string) error
}

// BlockedWriter applies external-calendar block/unblock entries.
type BlockedWriter interface {
	AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error
	RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error
}

// SyncHandler routes consumed messages by topic: booking lifecycle events
// update the booking mirror, calendar sync entries update the blocked-date
// store. Malformed payloads are logged and dropped so one bad event never
// wedges the partition.
type SyncHandler struct {
	BookingTopic  string
	CalendarTopic string
	Mirror        BookingMirror
	Blocked       BlockedWriter
	Logger        *slog.Logger
}

func (h *SyncHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case h.BookingTopic:
		return h.handleBookingEvent(ctx, msg.Value)
	case h.CalendarTopic:
		return h.handleCalendarSync(ctx, msg.Value)
	default:
		return nil
	}
}

type bookingEvent struct {
	BookingID  string `json:"booking_id"`
	PropertyID string `json:"property_id"`
	Status     string `json:"status"`
}

func (h *SyncHandler) handleBookingEvent(ctx context.Context, value []byte) error {
	var event bookingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		h.logDrop("booking event undecodable", err)
		return nil
	}
	if event.BookingID == "" || event.PropertyID == "" {
		h.logDrop("booking event missing ids", nil)
		return nil
	}

	if event.Status == "cancelled" {
		return h.Mirror.RemoveBooking(ctx, event.BookingID)
	}

	// The range decoder accepts both check_in/check_out and the *_date
	// variants of the upstream payload.
	var rng domain.BookingRange
	if err := json.Unmarshal(value, &rng); err != nil {
		h.logDrop("booking event undecodable", err)
		return nil
	}
	if !rng.Valid() {
		h.logDrop("booking event without a usable range", nil)
		return nil
	}
	return h.Mirror.UpsertBooking(ctx, event.BookingID, event.PropertyID, rng, event.Status)
}

type calendarSyncEvent struct {
	PropertyID string `json:"property_id"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (h *SyncHandler) handleCalendarSync(ctx context.Context, value []byte) error {
	var event calendarSyncEvent
	if err := json.Unmarshal(value, &event); err != nil {
		h.logDrop("calendar sync undecodable", err)
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(value, &raw); err != nil {
		h.logDrop("calendar sync undecodable", err)
		return nil
	}
	day, ok := calendar.ExtractDateStr(raw)
	if !ok || event.PropertyID == "" {
		h.logDrop("calendar sync without property or date", nil)
		return nil
	}

	switch event.Action {
	case "unblock":
		return h.Blocked.RemoveBlocked(ctx, event.PropertyID, day)
	case "block", "":
		return h.Blocked.AddBlocked(ctx, event.PropertyID, domain.BlockedRecord{Date: day, Reason: event.Reason})
	default:
		h.logDrop(fmt.Sprintf("calendar sync with unknown action %q", event.Action), nil)
		return nil
	}
}

func (h *SyncHandler) logDrop(msg string, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Warn(msg, "error", err)
		return
	}
	h.Logger.Warn(msg)
}
