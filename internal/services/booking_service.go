package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/db"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// IBookingService defines the interface for booking-related operations.
type IBookingService interface {
	// FindByObjectAndRange returns all bookings of an object whose stay
	// overlaps [from, to), sorted by creation time ascending.
	FindByObjectAndRange(ctx context.Context, objectID int, from, to time.Time) ([]models.Booking, error)
	// FindByObjectAndMonth returns bookings of an object whose stay touches
	// the given month. A non-nil roomID restricts to a single room.
	FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Booking, error)
}

const bookingsCollection = "bookings"

// bookingService implements IBookingService.
type bookingService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewBookingService creates a new BookingService.
func NewBookingService(db *mongo.Database, cfg *config.Config) IBookingService {
	return &bookingService{db: db, cfg: cfg}
}

func (s *bookingService) FindByObjectAndRange(ctx context.Context, objectID int, from, to time.Time) ([]models.Booking, error) {
	filter := bson.M{
		"object_id": objectID,
		"arrival":   bson.M{"$lt": to},
		"departure": bson.M{"$gt": from},
	}
	return s.find(ctx, filter)
}

func (s *bookingService) FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Booking, error) {
	first, last := utils.MonthRange(month)
	filter := bson.M{
		"object_id": objectID,
		"arrival":   bson.M{"$lt": last.AddDate(0, 0, 1)},
		"departure": bson.M{"$gt": first},
	}
	if roomID != nil {
		filter["room_id"] = *roomID
	}
	return s.find(ctx, filter)
}

func (s *bookingService) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	collection := s.db.Collection(bookingsCollection)
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var bookings []models.Booking
	operation := func() error {
		cursor, err := collection.Find(ctx, filter, findOptions)
		if err != nil {
			return fmt.Errorf("failed to find bookings: %w", err)
		}
		defer cursor.Close(ctx)

		bookings = nil
		if err := cursor.All(ctx, &bookings); err != nil {
			return fmt.Errorf("failed to decode bookings: %w", err)
		}
		return nil
	}

	if err := db.Try(operation); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
