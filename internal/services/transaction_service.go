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

// ITransactionService defines the interface for ledger transaction lookups.
type ITransactionService interface {
	// FindByObjectAndMonth returns all transactions of an object dated within
	// the given month. A non-nil roomID restricts to a single room.
	FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Transaction, error)
}

const transactionsCollection = "transactions"

// transactionService implements ITransactionService.
type transactionService struct {
	db  *mongo.Database
	cfg *config.Config
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(db *mongo.Database, cfg *config.Config) ITransactionService {
	return &transactionService{db: db, cfg: cfg}
}

func (s *transactionService) FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Transaction, error) {
	first, last := utils.MonthRange(month)
	filter := bson.M{
		"object_id": objectID,
		"date": bson.M{
			"$gte": first,
			"$lt":  last.AddDate(0, 0, 1),
		},
	}
	if roomID != nil {
		filter["room_id"] = *roomID
	}

	collection := s.db.Collection(transactionsCollection)
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	var transactions []models.Transaction
	operation := func() error {
		cursor, err := collection.Find(ctx, filter, findOptions)
		if err != nil {
			return fmt.Errorf("failed to find transactions: %w", err)
		}
		defer cursor.Close(ctx)

		transactions = nil
		if err := cursor.All(ctx, &transactions); err != nil {
			return fmt.Errorf("failed to decode transactions: %w", err)
		}
		return nil
	}

	if err := db.Try(operation); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}
