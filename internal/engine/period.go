package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/YaSanyaBeats/baseline-sub000/internal/models"
	"github.com/YaSanyaBeats/baseline-sub000/internal/utils"
)

// ErrInvalidArgument marks caller mistakes (bad period mode, inverted date
// range, non-positive step). The HTTP layer maps it to a 400 response.
var ErrInvalidArgument = errors.New("invalid argument")

// seasonStart marks the first night of one seasonal slice within a calendar
// year. A slice runs until the night before the next slice starts; the last
// slice runs until the night before the winter-holidays slice of the next
// year (Dec 24). The first slice belongs to the year it ends in, so its
// start date falls in the previous year.
type seasonStart struct {
	name  string
	month time.Month
	day   int
}

var seasonTemplate = [14]seasonStart{
	{"winter-holidays", time.December, 25}, // Dec 25 of the previous year .. Jan 15
	{"late-january", time.January, 16},
	{"february", time.February, 1},
	{"early-march", time.March, 1},
	{"late-march", time.March, 16},
	{"april", time.April, 1},
	{"may", time.May, 1},
	{"june", time.June, 1},
	{"july", time.July, 1},
	{"august", time.August, 1},
	{"september", time.September, 1},
	{"october", time.October, 1},
	{"autumn-low", time.November, 1},
	{"pre-holidays", time.December, 10}, // .. Dec 24
}

// GeneratePeriods turns a date range and a mode into the ordered,
// non-overlapping sequence of reporting buckets. step is only consulted in
// custom mode. Dates are truncated to whole days before any arithmetic.
func GeneratePeriods(mode string, startDate, endDate time.Time, step int) ([]models.Period, error) {
	start := utils.Day(startDate)
	end := utils.Day(endDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidArgument, start.Format(utils.DayLayout), end.Format(utils.DayLayout))
	}

	switch mode {
	case models.PeriodModeCustom:
		return customPeriods(start, end, step)
	case models.PeriodModeFixedSeason:
		return seasonPeriods(start, end), nil
	default:
		return nil, fmt.Errorf("%w: unknown period mode %q", ErrInvalidArgument, mode)
	}
}

// customPeriods tiles [start, end] with fixed-size buckets, clipping the
// final one to the end date.
func customPeriods(start, end time.Time, step int) ([]models.Period, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidArgument, step)
	}

	var periods []models.Period
	for cursor := start; !cursor.After(end); {
		last := cursor.AddDate(0, 0, step-1)
		if last.After(end) {
			last = end
		}
		periods = append(periods, models.Period{FirstNight: cursor, LastNight: last})
		cursor = last.AddDate(0, 0, 1)
	}
	return periods, nil
}

// seasonPeriods instantiates the season template once per calendar year
// spanning [start.year-1, end.year+1], clips every slice to the requested
// window and keeps only slices that still overlap it.
func seasonPeriods(start, end time.Time) []models.Period {
	var periods []models.Period
	for year := start.Year() - 1; year <= end.Year()+1; year++ {
		for i, season := range seasonTemplate {
			first := seasonSliceStart(year, i, season)

			var lastExclusive time.Time
			if i == len(seasonTemplate)-1 {
				// The year's last slice ends the night before next year's
				// winter-holidays slice begins.
				lastExclusive = seasonSliceStart(year+1, 0, seasonTemplate[0])
			} else {
				lastExclusive = seasonSliceStart(year, i+1, seasonTemplate[i+1])
			}
			last := lastExclusive.AddDate(0, 0, -1)

			if first.Before(start) {
				first = start
			}
			if last.After(end) {
				last = end
			}
			if first.After(last) {
				continue // no overlap with the requested window
			}
			periods = append(periods, models.Period{FirstNight: first, LastNight: last})
		}
	}
	return periods
}

func seasonSliceStart(year, index int, season seasonStart) time.Time {
	if index == 0 {
		year-- // winter solstice season crosses the year boundary
	}
	return time.Date(year, season.month, season.day, 0, 0, 0, 0, time.UTC)
}
