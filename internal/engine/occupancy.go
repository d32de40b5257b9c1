package engine

import (
	"sort"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// OccupancyParams is the input for one room-or-object × period aggregation.
type OccupancyParams struct {
	Period models.Period
	// Bookings overlapping the period, ordered by creation date, inquiries
	// already excluded.
	Bookings []models.Booking
	// UnitsCount is 1 for a single room, or the number of enabled units for
	// an object-level aggregate.
	UnitsCount int
	// StartMedian/EndMedian are the two booking-window thresholds as
	// fractions of occupied time in [0, 1].
	StartMedian float64
	EndMedian   float64
	// LowPriceThreshold is the currency-unit floor below which a fully
	// booked period is flagged as a data-quality error.
	LowPriceThreshold float64
}

// clippedNights returns the number of a booking's nights that fall inside
// the period, clipping the stay to the period bounds. Departure is
// exclusive, and the period's exclusive bound is the morning after its
// last night, so a stay spanning the whole bucket yields Period.Nights().
func clippedNights(b *models.Booking, p models.Period) int {
	start := b.Arrival
	if start.Before(p.FirstNight) {
		start = p.FirstNight
	}
	end := b.Departure
	if checkout := p.LastNight.AddDate(0, 0, 1); end.After(checkout) {
		end = checkout
	}
	nights := utils.DaysBetween(start, end)
	if nights < 0 {
		return 0
	}
	return nights
}

// AggregateOccupancy computes occupancy ratio, average booking price and
// the booking-window estimate for one room (or object aggregate) over one
// period.
//
// Owner blocks ("black") subtract their clipped nights from the available
// denominator but contribute neither occupancy nor price. Guarded
// divisions resolve to zero: a period with no enabled units or no priced
// bookings is an expected state, not an error.
func AggregateOccupancy(p OccupancyParams) models.RoomPeriodResult {
	result := models.RoomPeriodResult{
		Period:   p.Period,
		Bookings: p.Bookings,
	}
	if result.Bookings == nil {
		result.Bookings = []models.Booking{}
	}
	if p.UnitsCount <= 0 {
		return result
	}

	blackTime := 0
	for i := range p.Bookings {
		if p.Bookings[i].IsBlack() {
			blackTime += clippedNights(&p.Bookings[i], p.Period)
		}
	}
	totalTime := p.Period.Nights()*p.UnitsCount - blackTime

	sumTime := 0
	sumPrice := 0.0
	bookingCount := 0
	for i := range p.Bookings {
		b := &p.Bookings[i]
		if b.IsBlack() {
			continue
		}
		nightsInPeriod := clippedNights(b, p.Period)
		sumTime += nightsInPeriod
		if stayNights := b.Nights(); stayNights > 0 {
			sumPrice += b.Price() / float64(stayNights) * float64(nightsInPeriod)
		}
		bookingCount++
	}

	if totalTime > 0 {
		result.Busyness = float64(sumTime) / float64(totalTime)
	}
	if bookingCount > 0 {
		result.MiddlePrice = sumPrice / float64(bookingCount)
	}

	result.StartMedianResult, result.EndMedianResult = bookingWindow(p, totalTime)

	// Occupied but unpriced, or fully booked at an implausibly low price:
	// suspicious source data, surfaced for human review.
	if result.Busyness > 0 && result.MiddlePrice == 0 {
		result.Error = true
	}
	if result.Busyness == 1 && result.MiddlePrice < p.LowPriceThreshold {
		result.Error = true
	}

	return result
}

// bookingWindow runs the first-crossing estimator over the
// creation-ordered bookings: occupied time accumulates booking by booking
// until it first exceeds totalTime × threshold, and the booking at the
// crossing point supplies the distance (in days) from the period start to
// its creation date. This is deliberately not a true weighted percentile;
// downstream consumers depend on the crossing behavior, ties resolved by
// insertion order.
func bookingWindow(p OccupancyParams, totalTime int) (startResult, endResult int) {
	acc := 0
	startDone, endDone := false, false
	for i := range p.Bookings {
		b := &p.Bookings[i]
		if b.IsBlack() {
			continue
		}
		acc += clippedNights(b, p.Period)
		if !startDone && float64(acc) > float64(totalTime)*p.StartMedian {
			startResult = utils.DaysBetween(p.Period.FirstNight, b.CreatedAt)
			startDone = true
		}
		if !endDone && float64(acc) > float64(totalTime)*p.EndMedian {
			endResult = utils.DaysBetween(p.Period.FirstNight, b.CreatedAt)
			endDone = true
		}
		if startDone && endDone {
			break
		}
	}
	return startResult, endResult
}

// BuildObjectResult computes the full report for one object: every room's
// period series plus the object-level aggregate across its enabled rooms.
// Header comparison and deviation flags are applied later, once all
// objects are known.
func BuildObjectResult(object models.RentalObject, bookings []models.Booking, periods []models.Period, startMedian, endMedian, lowPriceThreshold float64) models.ObjectResult {
	kept := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != models.StatusInquiry {
			kept = append(kept, b)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].CreatedAt.Before(kept[j].CreatedAt)
	})

	firstSeen := FirstSeen(kept)

	byRoom := make(map[int][]models.Booking)
	for _, b := range kept {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	result := models.ObjectResult{
		ObjectID: object.ID,
		Name:     object.Name,
		Periods:  make([]models.ObjectPeriodResult, 0, len(periods)),
		Rooms:    make([]models.RoomResult, 0, len(object.Rooms)),
	}

	for _, room := range object.Rooms {
		roomResult := models.RoomResult{
			RoomID:  room.ID,
			Name:    room.Name,
			Periods: make([]models.RoomPeriodResult, 0, len(periods)),
		}
		for _, period := range periods {
			if RoomDisabled(firstSeen, room.ID, period) {
				roomResult.Periods = append(roomResult.Periods, models.RoomPeriodResult{
					Period:   period,
					Disable:  true,
					Bookings: []models.Booking{},
				})
				continue
			}
			cell := AggregateOccupancy(OccupancyParams{
				Period:            period,
				Bookings:          overlapping(byRoom[room.ID], period),
				UnitsCount:        1,
				StartMedian:       startMedian,
				EndMedian:         endMedian,
				LowPriceThreshold: lowPriceThreshold,
			})
			roomResult.Periods = append(roomResult.Periods, cell)
		}
		result.Rooms = append(result.Rooms, roomResult)
	}

	for _, period := range periods {
		units := EnabledUnits(firstSeen, object.Rooms, period)
		if units == 0 {
			result.Periods = append(result.Periods, models.ObjectPeriodResult{
				Period:   period,
				Disable:  true,
				Bookings: []models.Booking{},
			})
			continue
		}
		cell := AggregateOccupancy(OccupancyParams{
			Period:            period,
			Bookings:          overlapping(kept, period),
			UnitsCount:        units,
			StartMedian:       startMedian,
			EndMedian:         endMedian,
			LowPriceThreshold: lowPriceThreshold,
		})
		result.Periods = append(result.Periods, models.ObjectPeriodResult{
			Period:            cell.Period,
			Busyness:          cell.Busyness,
			MiddlePrice:       cell.MiddlePrice,
			StartMedianResult: cell.StartMedianResult,
			EndMedianResult:   cell.EndMedianResult,
			Error:             cell.Error,
			Bookings:          cell.Bookings,
		})
	}

	return result
}

// overlapping picks the bookings touching the period, preserving order.
func overlapping(bookings []models.Booking, p models.Period) []models.Booking {
	picked := make([]models.Booking, 0)
	for _, b := range bookings {
		if p.Overlaps(b.Arrival, b.Departure) {
			picked = append(picked, b)
		}
	}
	return picked
}
