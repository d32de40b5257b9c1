package models

import (
	"time"

	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// Period modes accepted by the analytics request.
const (
	PeriodModeFixedSeason = "fixed-season"
	PeriodModeCustom      = "custom"
)

// Period is one reporting bucket. LastNight is the final night of the
// bucket, so a period covers LastNight-FirstNight+1 nights.
type Period struct {
	FirstNight time.Time `bson:"first_night" json:"firstNight"`
	LastNight  time.Time `bson:"last_night" json:"lastNight"`
}

// Nights returns the number of nights the period spans, last night
// included.
func (p Period) Nights() int {
	return utils.DaysBetween(p.FirstNight, p.LastNight) + 1
}

// Overlaps reports whether a stay [arrival, departure) touches the period.
func (p Period) Overlaps(arrival, departure time.Time) bool {
	return !arrival.After(p.LastNight) && departure.After(p.FirstNight)
}

// RoomPeriodResult holds the derived metrics for one room over one period.
type RoomPeriodResult struct {
	Period            Period    `json:"period"`
	Busyness          float64   `json:"busyness"`
	MiddlePrice       float64   `json:"middlePrice"`
	StartMedianResult int       `json:"startMedianResult"`
	EndMedianResult   int       `json:"endMedianResult"`
	Disable           bool      `json:"disable"`
	Error             bool      `json:"error"`
	Warning           bool      `json:"warning"`
	Bookings          []Booking `json:"bookings"`
}

// RoomResult is the full period series for one room plus rolled-up flags.
type RoomResult struct {
	RoomID  int                `json:"roomId"`
	Name    string             `json:"name"`
	Periods []RoomPeriodResult `json:"periods"`
	Error   bool               `json:"error"`
	Warning bool               `json:"warning"`
}

// ObjectPeriodResult aggregates all of an object's rooms for one period.
// The grow flags compare the object against the portfolio header baseline.
type ObjectPeriodResult struct {
	Period            Period    `json:"period"`
	Busyness          float64   `json:"busyness"`
	MiddlePrice       float64   `json:"middlePrice"`
	StartMedianResult int       `json:"startMedianResult"`
	EndMedianResult   int       `json:"endMedianResult"`
	Disable           bool      `json:"disable"`
	Error             bool      `json:"error"`
	Warning           bool      `json:"warning"`
	BusynessGrow      bool      `json:"busynessGrow"`
	PriceGrow         bool      `json:"priceGrow"`
	Bookings          []Booking `json:"bookings"`
}

// ObjectResult is the per-object report: the aggregated period series plus
// the room-by-room breakdown. Error/Warning are ORs of the child flags.
type ObjectResult struct {
	ObjectID int                  `json:"objectId"`
	Name     string               `json:"name"`
	Periods  []ObjectPeriodResult `json:"periods"`
	Rooms    []RoomResult         `json:"rooms"`
	Error    bool                 `json:"error"`
	Warning  bool                 `json:"warning"`
}

// HeaderRow is the portfolio-wide baseline for one period: the unweighted
// mean of every enabled room's metrics.
type HeaderRow struct {
	Period      Period  `json:"period"`
	Busyness    float64 `json:"busyness"`
	MiddlePrice float64 `json:"middlePrice"`
}

// AnalyticsRequest is the analytics report request. Field names are part of
// the wire contract and must not change.
type AnalyticsRequest struct {
	Objects     []int   `json:"objects" binding:"required,min=1"`
	StartMedian float64 `json:"startMedian"`
	EndMedian   float64 `json:"endMedian"`
	StartDate   string  `json:"startDate" binding:"required"`
	EndDate     string  `json:"endDate" binding:"required"`
	Step        int     `json:"step"`
	PeriodMode  string  `json:"periodMode" binding:"required"`
}

// AnalyticsResponse pairs the header baseline with the per-object results.
type AnalyticsResponse struct {
	Header []HeaderRow    `json:"header"`
	Data   []ObjectResult `json:"data"`
}
