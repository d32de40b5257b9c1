package services

import (
	"context"
	"fmt"

	"github.com/YaSanyaBeats/baseline-sub000/internal/config"
	"github.com/YaSanyaBeats/baseline-sub000/internal/engine"
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// ICommissionService defines the interface for monthly commission reports.
type ICommissionService interface {
	BuildReport(ctx context.Context, req models.CommissionRequest) (*models.CommissionReport, error)
}

// commissionService implements ICommissionService.
type commissionService struct {
	cfg                *config.Config
	bookingService     IBookingService
	transactionService ITransactionService
	categoryService    ICategoryService
}

// NewCommissionService creates a new CommissionService.
func NewCommissionService(cfg *config.Config, bookingService IBookingService, transactionService ITransactionService, categoryService ICategoryService) ICommissionService {
	return &commissionService{
		cfg:                cfg,
		bookingService:     bookingService,
		transactionService: transactionService,
		categoryService:    categoryService,
	}
}

func (s *commissionService) BuildReport(ctx context.Context, req models.CommissionRequest) (*models.CommissionReport, error) {
	month, err := utils.ParseMonth(req.MonthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid monthKey %q", engine.ErrInvalidArgument, req.MonthKey)
	}

	// An absent roomId unmarshals to the zero selector; treat it as "all".
	var roomID *int
	if !req.RoomID.All && req.RoomID.ID != 0 {
		id := req.RoomID.ID
		roomID = &id
	}

	bookings, err := s.bookingService.FindByObjectAndMonth(ctx, req.ObjectID, roomID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	transactions, err := s.transactionService.FindByObjectAndMonth(ctx, req.ObjectID, roomID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	divisibility, err := s.categoryService.DivisibilityMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	report := &models.CommissionReport{Results: []models.CommissionResult{}}

	// Bucket the ledger by booking; transactions without a booking feed the
	// unlinked totals only.
	type bucket struct {
		income            float64
		expenses          float64
		expenseByCategory map[string]float64
	}
	byBooking := make(map[int]*bucket)
	for _, tx := range transactions {
		if tx.BookingID == nil {
			switch tx.Type {
			case models.CategoryTypeIncome:
				report.UnlinkedIncome += tx.Amount
			case models.CategoryTypeExpense:
				report.UnlinkedExpenses += tx.Amount
			}
			continue
		}
		b, ok := byBooking[*tx.BookingID]
		if !ok {
			b = &bucket{expenseByCategory: make(map[string]float64)}
			byBooking[*tx.BookingID] = b
		}
		switch tx.Type {
		case models.CategoryTypeIncome:
			b.income += tx.Amount
		case models.CategoryTypeExpense:
			b.expenses += tx.Amount
			b.expenseByCategory[tx.Category] += tx.Amount
		}
	}

	matched := make(map[int]bool, len(byBooking))
	for _, booking := range bookings {
		if booking.IsBlack() || booking.Status == models.StatusInquiry {
			continue
		}
		in := models.CommissionInput{
			Booking:      booking,
			Nights:       booking.Nights(),
			Divisibility: divisibility,
		}
		if b, ok := byBooking[booking.ID]; ok {
			in.Income = b.income
			in.Expenses = b.expenses
			in.ExpenseByCategory = b.expenseByCategory
			matched[booking.ID] = true
		}

		result, err := engine.CalculateCommission(in, req.SchemeID)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, result)
		report.TotalCommission += result.Commission
		report.TotalIncome += result.Income
		report.TotalExpenses += result.Expenses
	}

	// Transactions pointing at a booking that produced no result row (stale
	// id, or a black/inquiry booking) are not attached to any booking in
	// this month's report; their money must not vanish.
	for id, b := range byBooking {
		if matched[id] {
			continue
		}
		report.UnlinkedIncome += b.income
		report.UnlinkedExpenses += b.expenses
	}

	return report, nil
}
