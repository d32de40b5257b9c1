package engine

import (
	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

// BuildHeader produces the portfolio-wide baseline row for every period:
// the unweighted mean of busyness and middle price across all enabled
// rooms in the result set. Two independent denominators are kept, the
// price mean counts only rooms with a non-zero price so priceless periods
// do not dilute it.
func BuildHeader(periods []models.Period, objects []models.ObjectResult) []models.HeaderRow {
	header := make([]models.HeaderRow, len(periods))
	for i, period := range periods {
		row := models.HeaderRow{Period: period}

		busySum := 0.0
		busyCount := 0
		priceSum := 0.0
		priceCount := 0
		for oi := range objects {
			object := &objects[oi]
			if i >= len(object.Periods) {
				continue
			}
			if object.Periods[i].Disable {
				continue
			}
			for ri := range object.Rooms {
				room := &object.Rooms[ri]
				if i >= len(room.Periods) || room.Periods[i].Disable {
					continue
				}
				busySum += room.Periods[i].Busyness
				busyCount++
				if price := room.Periods[i].MiddlePrice; price != 0 {
					priceSum += price
					priceCount++
				}
			}
		}

		if busyCount > 0 {
			row.Busyness = busySum / float64(busyCount)
		}
		if priceCount > 0 {
			row.MiddlePrice = priceSum / float64(priceCount)
		}
		header[i] = row
	}
	return header
}
