package models

import (
	"math"
	"time"
)

// Booking statuses as delivered by the reservation provider. Statuses other
// than the two below ("booking", "confirmed", ...) are passed through and
// treated as regular revenue stays.
const (
	// StatusInquiry marks a tentative request. Excluded from every
	// calculation.
	StatusInquiry = "inquiry"
	// StatusBlack marks an owner block. Counts as unavailable inventory but
	// never as revenue.
	StatusBlack = "black"
)

// InvoiceItemTypeCharge is the line item type carrying the booking price.
const InvoiceItemTypeCharge = "charge"

// InvoiceItem is a single invoice line on a booking.
type InvoiceItem struct {
	Type      string  `bson:"type" json:"type"`
	LineTotal float64 `bson:"line_total" json:"lineTotal"`
}

// Booking is a reservation record for one room, synchronized from the
// external provider. The engine trusts these as-is.
type Booking struct {
	ID        int           `bson:"_id" json:"id"`
	RoomID    int           `bson:"room_id" json:"roomId"`
	ObjectID  int           `bson:"object_id" json:"objectId"`
	Arrival   time.Time     `bson:"arrival" json:"arrival"`
	Departure time.Time     `bson:"departure" json:"departure"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	Status    string        `bson:"status" json:"status"`
	Items     []InvoiceItem `bson:"items,omitempty" json:"items,omitempty"`
}

// Price returns the booking price: the maximum "charge" line item total.
// Zero when the booking carries no charge lines.
func (b *Booking) Price() float64 {
	price := 0.0
	for _, item := range b.Items {
		if item.Type == InvoiceItemTypeCharge && item.LineTotal > price {
			price = item.LineTotal
		}
	}
	return price
}

// Nights returns the full stay length in nights (departure exclusive).
func (b *Booking) Nights() int {
	return int(math.Ceil(b.Departure.Sub(b.Arrival).Hours() / 24))
}

// IsBlack reports whether the booking is an owner block.
func (b *Booking) IsBlack() bool {
	return b.Status == StatusBlack
}
