package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// agentKeywords drives the OTA/co-agent category classification. Matching
// is case-insensitive containment; extend the list here, the formulas never
// inspect category names directly.
var agentKeywords = []string{
	"ota",
	"commission ota",
	"co-agent",
	"ko-agent",
}

// IsAgentCategory reports whether a category name denotes OTA or co-agent
// expenses.
func IsAgentCategory(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range agentKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// IsDivisibleTag reports whether a category's divisibility tag marks it as
// shared between operator and owner.
func IsDivisibleTag(tag string) bool {
	return tag == models.DivisibilityHalf || tag == models.DivisibilityThird
}

// Stay-length tier boundaries in nights.
const (
	schemeOneShortStayNights = 30
	longStayNights           = 182
)

// CalculateCommission applies one of the four revenue-share schemes to a
// booking's month financials, emitting every intermediate value to the
// audit steps ledger in computation order.
//
// Scheme 1 is the only scheme that subtracts divisible expenses instead of
// OTA/co-agent expenses on its short tier. That asymmetry is an intentional
// contract rule, not a bug.
func CalculateCommission(in models.CommissionInput, schemeID int) (models.CommissionResult, error) {
	result := models.CommissionResult{
		BookingID: in.Booking.ID,
		Nights:    in.Nights,
		Income:    in.Income,
		Expenses:  in.Expenses,
		Steps:     []models.CommissionStep{},
	}

	var rate float64
	var deduction float64
	var deductionLabel string

	switch schemeID {
	case 1:
		switch {
		case in.Nights <= schemeOneShortStayNights:
			rate = 0.30
			deduction = divisibleExpenses(in)
			deductionLabel = "Divisible expenses"
		case in.Nights <= longStayNights:
			rate = 0.20
		default:
			rate = 0.15
		}
	case 2, 4:
		if in.Nights <= longStayNights {
			rate = 0.20
			deduction = agentExpenses(in)
			deductionLabel = "OTA and co-agent expenses"
		} else {
			rate = 0.15
		}
	case 3:
		if in.Nights <= longStayNights {
			rate = 0.25
			deduction = agentExpenses(in)
			deductionLabel = "OTA and co-agent expenses"
		} else {
			rate = 0.15
		}
	default:
		return models.CommissionResult{}, fmt.Errorf("%w: unknown commission scheme %d", ErrInvalidArgument, schemeID)
	}

	appendStep(&result.Steps, "Stay length, nights", float64(in.Nights), "")
	appendStep(&result.Steps, "Monthly income", in.Income, "")

	base := in.Income
	if deductionLabel != "" {
		appendStep(&result.Steps, deductionLabel, deduction, "")
		base = in.Income - deduction
	}
	base = math.Max(0, base)
	if deductionLabel != "" {
		appendStep(&result.Steps, "Commission base", base, fmt.Sprintf("max(0, %.2f - %.2f)", in.Income, deduction))
	} else {
		appendStep(&result.Steps, "Commission base", base, "max(0, income)")
	}

	appendStep(&result.Steps, "Commission rate, %", rate*100, "")

	result.Commission = base * rate
	appendStep(&result.Steps, "Commission", result.Commission, fmt.Sprintf("%.2f x %.0f%%", base, rate*100))

	return result, nil
}

func appendStep(steps *[]models.CommissionStep, description string, value float64, formula string) {
	v := value
	*steps = append(*steps, models.CommissionStep{
		Description: description,
		Value:       &v,
		Formula:     formula,
	})
}

// agentExpenses sums the month's expenses in OTA/co-agent categories.
func agentExpenses(in models.CommissionInput) float64 {
	total := 0.0
	for category, amount := range in.ExpenseByCategory {
		if IsAgentCategory(category) {
			total += amount
		}
	}
	return total
}

// divisibleExpenses sums the month's expenses in categories tagged /2 or /3.
func divisibleExpenses(in models.CommissionInput) float64 {
	total := 0.0
	for category, amount := range in.ExpenseByCategory {
		if IsDivisibleTag(in.Divisibility[category]) {
			total += amount
		}
	}
	return total
}
