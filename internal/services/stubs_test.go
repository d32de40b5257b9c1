package services

import (
	"context"
	"time"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// stubObjectService serves a fixed object set keyed by id.
type stubObjectService struct {
	objects map[int]models.RentalObject
	err     error
}

func (s *stubObjectService) FindByIDs(ctx context.Context, ids []int) ([]models.RentalObject, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.RentalObject
	for _, id := range ids {
		if object, ok := s.objects[id]; ok {
			out = append(out, object)
		}
	}
	return out, nil
}

// stubBookingService serves fixed bookings keyed by object id. failFor makes
// lookups for that object fail.
type stubBookingService struct {
	byObject map[int][]models.Booking
	failFor  int
	err      error
}

func (s *stubBookingService) FindByObjectAndRange(ctx context.Context, objectID int, from, to time.Time) ([]models.Booking, error) {
	if s.err != nil && objectID == s.failFor {
		return nil, s.err
	}
	return s.byObject[objectID], nil
}

func (s *stubBookingService) FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Booking, error) {
	if s.err != nil && objectID == s.failFor {
		return nil, s.err
	}
	bookings := s.byObject[objectID]
	if roomID == nil {
		return bookings, nil
	}
	var out []models.Booking
	for _, b := range bookings {
		if b.RoomID == *roomID {
			out = append(out, b)
		}
	}
	return out, nil
}

// stubTransactionService serves a fixed transaction list.
type stubTransactionService struct {
	transactions []models.Transaction
	err          error
}

func (s *stubTransactionService) FindByObjectAndMonth(ctx context.Context, objectID int, roomID *int, month time.Time) ([]models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	if roomID == nil {
		return s.transactions, nil
	}
	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.RoomID == *roomID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// stubCategoryService serves a fixed category list.
type stubCategoryService struct {
	categories []models.Category
	err        error
}

func (s *stubCategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.categories, nil
}

func (s *stubCategoryService) DivisibilityMap(ctx context.Context) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	divisibility := make(map[string]string)
	for _, category := range s.categories {
		if category.Divisibility != "" {
			divisibility[category.Name] = category.Divisibility
		}
	}
	return divisibility, nil
}
