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

// ICategoryService defines the interface for transaction category lookups.
type ICategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	// DivisibilityMap returns category name -> divisibility tag for every
	// category that carries one.
	DivisibilityMap(ctx context.Context) (map[string]string, error)
}

const categoriesCollection = "categories"

// categoryService implements ICategoryService.
type categoryService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *mongo.Database, cfg *config.Config) ICategoryService {
	return &categoryService{db: db, cfg: cfg}
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	collection := s.db.Collection(categoriesCollection)

	var categories []models.Category
	operation := func() error {
		cursor, err := collection.Find(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to find categories: %w", err)
		}
		defer cursor.Close(ctx)

		categories = nil
		if err := cursor.All(ctx, &categories); err != nil {
			return fmt.Errorf("failed to decode categories: %w", err)
		}
		return nil
	}

	if err := db.Try(operation); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *categoryService) DivisibilityMap(ctx context.Context) (map[string]string, error) {
	categories, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	divisibility := make(map[string]string)
	for _, category := range categories {
		if category.Divisibility != "" {
			divisibility[category.Name] = category.Divisibility
		}
	}
	return divisibility, nil
}
