package booking

import "time"

// DefaultSlotIntervalMinutes applies when no specific barber is chosen.
const DefaultSlotIntervalMinutes = 30

// The shop offers bookable start times in two daily windows, morning
// and afternoon/evening. Each window is [first, last] inclusive.
type slotWindow struct {
	first string
	last  string
}

var slotWindows = []slotWindow{
	{first: "09:00", last: "11:30"},
	{first: "14:00", last: "19:30"},
}

// SlotTimes enumerates bookable "HH:MM" start times at the given
// interval. Non-positive intervals fall back to the default.
func SlotTimes(intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotIntervalMinutes
	}
	step := time.Duration(intervalMinutes) * time.Minute

	var out []string
	for _, w := range slotWindows {
		first, _ := time.Parse("15:04", w.first)
		last, _ := time.Parse("15:04", w.last)

		for cur := first; !cur.After(last); cur = cur.Add(step) {
			out = append(out, cur.Format("15:04"))
		}
	}
	return out
}

// IsBookableTime reports whether clock is one of the enumerated start
// times for the interval.
func IsBookableTime(clock string, intervalMinutes int) bool {
	for _, t := range SlotTimes(intervalMinutes) {
		if t == clock {
			return true
		}
	}
	return false
}
