package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/dev-master21/nova-site-sub000/internal/domain/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
)

// BlockedDateRepository stores admin-imposed blocked days, one document per
// property/day pair.
type BlockedDateRepository struct {
	col *mongo.Collection
}

func NewBlockedDateRepository(db *mongo.Database) *BlockedDateRepository {
	return &BlockedDateRepository{col: db.Collection("blocked_dates")}
}

type blockedDateDocument struct {
	PropertyID  string `bson:"property_id"`
	BlockedDate string `bson:"blocked_date"`
	Reason      string `bson:"reason,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
}

func (r *BlockedDateRepository) ListBlocked(ctx context.Context, propertyID string) ([]domain.BlockedRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{"property_id": propertyID},
		options.Find().SetSort(bson.D{{Key: "blocked_date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.BlockedRecord
	for cursor.Next(ctx) {
		var doc blockedDateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		day, ok := calendar.ParseDate(doc.BlockedDate)
		if !ok {
			continue
		}
		records = append(records, domain.BlockedRecord{Date: day, Reason: doc.Reason})
	}
	return records, cursor.Err()
}

func (r *BlockedDateRepository) AddBlocked(ctx context.Context, propertyID string, rec domain.BlockedRecord) error {
	filter := bson.M{"property_id": propertyID, "blocked_date": string(rec.Date)}
	update := bson.M{"$set": blockedDateDocument{
		PropertyID:  propertyID,
		BlockedDate: string(rec.Date),
		Reason:      rec.Reason,
		CreatedAt:   time.Now().UnixMilli(),
	}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *BlockedDateRepository) RemoveBlocked(ctx context.Context, propertyID string, day calendar.Date) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"property_id": propertyID, "blocked_date": string(day)})
	return err
}

// BookingMirrorRepository keeps the read model of stays persisted by the
// external booking backend, maintained from its lifecycle events. Only
// active (blocking) bookings are listed for the merger.
type BookingMirrorRepository struct {
	col *mongo.Collection
}

func NewBookingMirrorRepository(db *mongo.Database) *BookingMirrorRepository {
	return &BookingMirrorRepository{col: db.Collection("booking_mirror")}
}

type bookingMirrorDocument struct {
	ID         string `bson:"_id"`
	PropertyID string `bson:"property_id"`
	CheckIn    string `bson:"check_in"`
	CheckOut   string `bson:"check_out"`
	Status     string `bson:"status"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (r *BookingMirrorRepository) ListBookings(ctx context.Context, propertyID string) ([]domain.BookingRange, error) {
	filter := bson.M{"property_id": propertyID, "status": bson.M{"$ne": "cancelled"}}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.BookingRange
	for cursor.Next(ctx) {
		var doc bookingMirrorDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		checkIn, okIn := calendar.ParseDate(doc.CheckIn)
		checkOut, okOut := calendar.ParseDate(doc.CheckOut)
		if !okIn || !okOut {
			continue
		}
		bookings = append(bookings, domain.BookingRange{CheckIn: checkIn, CheckOut: checkOut})
	}
	return bookings, cursor.Err()
}

func (r *BookingMirrorRepository) UpsertBooking(ctx context.Context, bookingID, propertyID string, rng domain.BookingRange, status string) error {
	doc := bookingMirrorDocument{
		ID:         bookingID,
		PropertyID: propertyID,
		CheckIn:    string(rng.CheckIn),
		CheckOut:   string(rng.CheckOut),
		Status:     status,
		UpdatedAt:  time.Now().UnixMilli(),
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": bookingID}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

func (r *BookingMirrorRepository) RemoveBooking(ctx context.Context, bookingID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": bookingID})
	return err
}
