package models

import "time"

// Category types for income/expense classification.
const (
	CategoryTypeExpense = "expense"
	CategoryTypeIncome  = "income"
)

// Divisibility tags a category can carry. A tagged category participates in
// the divisible-expense deduction of commission scheme 1.
const (
	DivisibilityHalf  = "/2"
	DivisibilityThird = "/3"
)

// Category is a bookkeeping category configured by the portfolio operator.
type Category struct {
	Name         string `bson:"name" json:"name"`
	Type         string `bson:"type" json:"type"`
	Divisibility string `bson:"divisibility,omitempty" json:"divisibility,omitempty"`
}

// Transaction is a single income or expense entry booked against an object,
// optionally linked to a reservation. Entries with no booking link surface
// in commission reports as "unlinked" totals.
type Transaction struct {
	ID        int       `bson:"_id" json:"id"`
	ObjectID  int       `bson:"object_id" json:"objectId"`
	RoomID    int       `bson:"room_id,omitempty" json:"roomId,omitempty"`
	BookingID *int      `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Category  string    `bson:"category" json:"category"`
	Type      string    `bson:"type" json:"type"`
	Amount    float64   `bson:"amount" json:"amount"`
	Date      time.Time `bson:"date" json:"date"`
}
