package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/db"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// IObjectService defines the interface for rental object lookups.
type IObjectService interface {
	// FindByIDs returns the objects for the given IDs, preserving the request
	// order. IDs with no matching object are silently dropped.
	FindByIDs(ctx context.Context, ids []int) ([]models.RentalObject, error)
}

const objectsCollection = "objects"

// objectService implements IObjectService.
type objectService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewObjectService creates a new ObjectService.
func NewObjectService(db *mongo.Database, cfg *config.Config) IObjectService {
	return &objectService{db: db, cfg: cfg}
}

func (s *objectService) FindByIDs(ctx context.Context, ids []int) ([]models.RentalObject, error) {
	collection := s.db.Collection(objectsCollection)

	var fetched []models.RentalObject
	operation := func() error {
		cursor, err := collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return fmt.Errorf("failed to find objects: %w", err)
		}
		defer cursor.Close(ctx)

		fetched = nil
		if err := cursor.All(ctx, &fetched); err != nil {
			return fmt.Errorf("failed to decode objects: %w", err)
		}
		return nil
	}

	if err := db.Try(operation); err != nil {
		return nil, err
	}

	// Mongo returns documents in index order. Reorder to match the request.
	byID := make(map[int]models.RentalObject, len(fetched))
	for _, object := range fetched {
		byID[object.ID] = object
	}
	objects := make([]models.RentalObject, 0, len(fetched))
	for _, id := range ids {
		if object, ok := byID[id]; ok {
			objects = append(objects, object)
		}
	}
	return objects, nil
}
