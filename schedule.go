package gitredate

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Generated times always fall in the evening, between firstHour:00:00 and
// lastHour:59:59.
const (
	firstHour = 16
	lastHour  = 23
)

// DayLayout is the layout for the civil days bounding the date window.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD civil day as midnight in loc.
func ParseDay(str string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, str, loc)
}

// GenerateTimes produces n timestamps spread across the inclusive day window
// [start, end], sorted ascending. start and end must be midnights in the same
// fixed zone, obtained from [ParseDay].
//
// The window is divided into n roughly equal slices. The i-th time lands on
// day i*span/n, nudged by a jitter of -1, 0 or +1 days and clamped back into
// the window, with the time of day drawn uniformly from the evening hours.
// The jitter can invert neighboring slices, so the result is sorted before it
// is returned.
//
// n of 0 yields an empty slice. A window of a single day forces every jitter
// to clamp back to that day.
func GenerateTimes(start, end time.Time, n int, rng *rand.Rand) []time.Time {
	result := make([]time.Time, 0, n)

	span := int(end.Sub(start).Hours()/24) + 1

	for i := 0; i < n; i++ {
		dayoffset := i*span/n + rng.IntN(3) - 1
		if dayoffset < 0 {
			dayoffset = 0
		}
		if dayoffset > span-1 {
			dayoffset = span - 1
		}

		day := start.AddDate(0, 0, dayoffset)

		hour := firstHour + rng.IntN(lastHour-firstHour+1)
		minute := rng.IntN(60)
		second := rng.IntN(60)

		result = append(result,
			time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location()))
	}

	slices.SortFunc(result, func(a, b time.Time) int { return a.Compare(b) })

	return result
}
