package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
)

func deviationObject(prices ...float64) *models.ObjectResult {
	p := january2024()
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods:  []models.ObjectPeriodResult{{Period: p}},
	}
	for i, price := range prices {
		object.Rooms = append(object.Rooms, models.RoomResult{
			RoomID:  10 + i,
			Periods: []models.RoomPeriodResult{cell(p, 0.5, price, false)},
		})
	}
	return object
}

func TestApplyDeviation_PriceOutliers(t *testing.T) {
	// Non-zero prices [100 300 400 500 700]: median element is 400.
	object := deviationObject(100, 300, 400, 500, 700)
	header := []models.HeaderRow{{Period: january2024()}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.True(t, object.Rooms[0].Periods[0].Warning, "100 deviates 75%%")
	assert.False(t, object.Rooms[1].Periods[0].Warning, "300 deviates 25%%")
	assert.False(t, object.Rooms[2].Periods[0].Warning, "400 is the median")
	assert.False(t, object.Rooms[3].Periods[0].Warning, "500 deviates 25%%")
	assert.True(t, object.Rooms[4].Periods[0].Warning, "700 deviates 75%%")

	// Warnings roll up to the room and to the object.
	assert.True(t, object.Rooms[0].Warning)
	assert.False(t, object.Rooms[1].Warning)
	assert.True(t, object.Warning)
}

func TestApplyDeviation_LowerMiddleMedian(t *testing.T) {
	// sort()[floor(n/2)] of [100 300 500] picks 300; 500 then deviates 66%.
	object := deviationObject(100, 300, 500)
	header := []models.HeaderRow{{Period: january2024()}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.True(t, object.Rooms[0].Periods[0].Warning)
	assert.False(t, object.Rooms[1].Periods[0].Warning)
	assert.True(t, object.Rooms[2].Periods[0].Warning)
}

func TestApplyDeviation_PricelessRoomsNeverWarn(t *testing.T) {
	object := deviationObject(0, 1000, 1000)
	header := []models.HeaderRow{{Period: january2024()}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	// An empty (priceless) room is not an anomaly, whatever the median.
	assert.False(t, object.Rooms[0].Periods[0].Warning)
	assert.False(t, object.Warning)
}

func TestApplyDeviation_GrowFlagsAgainstHeader(t *testing.T) {
	p := january2024()
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods: []models.ObjectPeriodResult{
			{Period: p, Busyness: 0.8, MiddlePrice: 900},
		},
	}
	header := []models.HeaderRow{{Period: p, Busyness: 0.5, MiddlePrice: 1200}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.True(t, object.Periods[0].BusynessGrow)
	assert.False(t, object.Periods[0].PriceGrow)
}

func TestApplyDeviation_OverbookingWarnsObjectPeriod(t *testing.T) {
	p := january2024()
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods: []models.ObjectPeriodResult{
			{Period: p, Busyness: 41.0 / 31.0, MiddlePrice: 1000},
		},
	}
	header := []models.HeaderRow{{Period: p, Busyness: 0.4, MiddlePrice: 1000}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.True(t, object.Periods[0].Warning)
	assert.True(t, object.Warning)
}

func TestApplyDeviation_OverbookingWarnsRoomPeriod(t *testing.T) {
	p := january2024()
	// One unit of three is overbooked; the object aggregate stays below 1.
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods: []models.ObjectPeriodResult{
			{Period: p, Busyness: 40.0 / 93.0, MiddlePrice: 1000},
		},
		Rooms: []models.RoomResult{
			{RoomID: 10, Periods: []models.RoomPeriodResult{cell(p, 35.0/31.0, 1000, false)}},
			{RoomID: 11, Periods: []models.RoomPeriodResult{cell(p, 5.0/31.0, 1000, false)}},
			{RoomID: 12, Periods: []models.RoomPeriodResult{cell(p, 0, 1000, false)}},
		},
	}
	header := []models.HeaderRow{{Period: p, Busyness: 0.4, MiddlePrice: 1000}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.False(t, object.Periods[0].Warning)
	assert.True(t, object.Rooms[0].Periods[0].Warning)
	assert.False(t, object.Rooms[1].Periods[0].Warning)
	assert.True(t, object.Rooms[0].Warning)
	assert.True(t, object.Warning)
}

func TestApplyDeviation_ErrorRollsUpFromRooms(t *testing.T) {
	p := january2024()
	erroredCell := cell(p, 0.5, 0, false)
	erroredCell.Error = true
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods:  []models.ObjectPeriodResult{{Period: p}},
		Rooms: []models.RoomResult{
			{RoomID: 10, Periods: []models.RoomPeriodResult{erroredCell}},
			{RoomID: 11, Periods: []models.RoomPeriodResult{cell(p, 0.5, 1000, false)}},
		},
	}
	header := []models.HeaderRow{{Period: p}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	require.True(t, object.Rooms[0].Error)
	assert.False(t, object.Rooms[1].Error)
	assert.True(t, object.Error)
}

func TestApplyDeviation_DisabledPeriodsUntouched(t *testing.T) {
	p := january2024()
	object := &models.ObjectResult{
		ObjectID: 1,
		Periods:  []models.ObjectPeriodResult{{Period: p, Disable: true}},
	}
	header := []models.HeaderRow{{Period: p, Busyness: 0.5}}

	ApplyDeviation([]*models.ObjectResult{object}, header, 50)

	assert.False(t, object.Periods[0].BusynessGrow)
	assert.False(t, object.Periods[0].Warning)
}
