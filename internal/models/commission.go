package models

import (
	"encoding/json"
	"fmt"
)

// CommissionStep is one line of the audit ledger emitted by the commission
// calculator. Values and formulas are optional; descriptions are always
// present.
type CommissionStep struct {
	Description string   `json:"description"`
	Value       *float64 `json:"value,omitempty"`
	Formula     string   `json:"formula,omitempty"`
}

// CommissionInput is the pre-joined material for one booking's commission:
// the booking itself, its stay length, and its same-month financials.
type CommissionInput struct {
	Booking           Booking
	Nights            int
	Income            float64
	Expenses          float64
	ExpenseByCategory map[string]float64
	// Divisibility maps category name to its divisibility tag ("/2", "/3").
	Divisibility map[string]string
}

// CommissionResult is the computed commission for one booking with the
// ordered audit steps and the component totals that produced it.
type CommissionResult struct {
	BookingID  int              `json:"bookingId"`
	Nights     int              `json:"nights"`
	Income     float64          `json:"income"`
	Expenses   float64          `json:"expenses"`
	Commission float64          `json:"commission"`
	Steps      []CommissionStep `json:"steps"`
}

// RoomSelector is a request field that is either a concrete room id or the
// literal string "all".
type RoomSelector struct {
	All bool
	ID  int
}

// UnmarshalJSON accepts either an integer room id or the string "all".
func (r *RoomSelector) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "all" {
			return fmt.Errorf("invalid room selector %q: want an id or \"all\"", s)
		}
		r.All = true
		r.ID = 0
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid room selector %s: want an id or \"all\"", string(data))
	}
	r.All = false
	r.ID = id
	return nil
}

// MarshalJSON mirrors UnmarshalJSON.
func (r RoomSelector) MarshalJSON() ([]byte, error) {
	if r.All {
		return json.Marshal("all")
	}
	return json.Marshal(r.ID)
}

// CommissionRequest is the commission report request for one object and one
// calendar month.
type CommissionRequest struct {
	ObjectID int          `json:"objectId" binding:"required"`
	RoomID   RoomSelector `json:"roomId"`
	MonthKey string       `json:"monthKey" binding:"required"`
	SchemeID int          `json:"schemeId" binding:"required"`
}

// CommissionReport is the per-booking results plus portfolio totals for the
// requested month. Unlinked figures cover transactions not attached to any
// booking in that month.
type CommissionReport struct {
	Results          []CommissionResult `json:"results"`
	TotalCommission  float64            `json:"totalCommission"`
	TotalIncome      float64            `json:"totalIncome"`
	TotalExpenses    float64            `json:"totalExpenses"`
	UnlinkedIncome   float64            `json:"unlinkedIncome"`
	UnlinkedExpenses float64            `json:"unlinkedExpenses"`
}
