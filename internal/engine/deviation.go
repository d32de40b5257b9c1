package engine

import (
	"math"
	"sort"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// ApplyDeviation runs the comparison pass once the header baseline exists:
// grow flags against the header, price deviation warnings against the
// same-object period median, overbooking warnings, and the flag roll-ups
// from periods through rooms to objects. maxDeviationPct is the warning
// threshold in percent (50 unless reconfigured).
func ApplyDeviation(objects []*models.ObjectResult, header []models.HeaderRow, maxDeviationPct float64) {
	for _, object := range objects {
		for i := range object.Periods {
			cell := &object.Periods[i]
			if cell.Disable || i >= len(header) {
				continue
			}
			cell.BusynessGrow = cell.Busyness > header[i].Busyness
			cell.PriceGrow = cell.MiddlePrice > header[i].MiddlePrice
			// Busyness above 1 means overlapping source bookings: a data
			// artifact worth reviewing, never a computation failure.
			if cell.Busyness > 1 {
				cell.Warning = true
			}
		}

		// The same overbooking check per room: a single unit above 1 must
		// surface even when the object aggregate stays below 1.
		for ri := range object.Rooms {
			room := &object.Rooms[ri]
			for i := range room.Periods {
				cell := &room.Periods[i]
				if cell.Disable {
					continue
				}
				if cell.Busyness > 1 {
					cell.Warning = true
				}
			}
		}

		applyPriceDeviation(object, maxDeviationPct)
		rollUpFlags(object)
	}
}

// applyPriceDeviation flags rooms whose price strays too far from the
// median of the object's non-zero room prices in the same period. Rooms
// without a price never warn; an empty period is not an anomaly.
func applyPriceDeviation(object *models.ObjectResult, maxDeviationPct float64) {
	periodCount := 0
	for ri := range object.Rooms {
		if len(object.Rooms[ri].Periods) > periodCount {
			periodCount = len(object.Rooms[ri].Periods)
		}
	}

	for i := 0; i < periodCount; i++ {
		median := periodMedianPrice(object, i)
		if median == 0 {
			continue
		}
		for ri := range object.Rooms {
			room := &object.Rooms[ri]
			if i >= len(room.Periods) {
				continue
			}
			cell := &room.Periods[i]
			if cell.Disable || cell.MiddlePrice == 0 {
				continue
			}
			deviation := math.Abs(cell.MiddlePrice-median) / median * 100
			if deviation > maxDeviationPct {
				cell.Warning = true
			}
		}
	}
}

// periodMedianPrice is the ordinary value median of the object's non-zero
// room prices for one period: sort()[floor(n/2)], matching the historical
// selection on even counts.
func periodMedianPrice(object *models.ObjectResult, periodIndex int) float64 {
	prices := make([]float64, 0, len(object.Rooms))
	for ri := range object.Rooms {
		room := &object.Rooms[ri]
		if periodIndex >= len(room.Periods) {
			continue
		}
		if price := room.Periods[periodIndex].MiddlePrice; price != 0 {
			prices = append(prices, price)
		}
	}
	if len(prices) == 0 {
		return 0
	}
	sort.Float64s(prices)
	return prices[len(prices)/2]
}

// rollUpFlags ORs warnings and errors upward: period → room → object.
func rollUpFlags(object *models.ObjectResult) {
	for ri := range object.Rooms {
		room := &object.Rooms[ri]
		for i := range room.Periods {
			if room.Periods[i].Warning {
				room.Warning = true
			}
			if room.Periods[i].Error {
				room.Error = true
			}
		}
		if room.Warning {
			object.Warning = true
		}
		if room.Error {
			object.Error = true
		}
	}
	for i := range object.Periods {
		if object.Periods[i].Warning {
			object.Warning = true
		}
		if object.Periods[i].Error {
			object.Error = true
		}
	}
}
