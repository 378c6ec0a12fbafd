package batch

import "github.com/samber/lo"

// HoursPreset is one to ten hours.
func HoursPreset() []int {
	out := make([]int, 0, 10)
	for h := 1; h <= 10; h++ {
		out = append(out, h*3600)
	}
	return out
}

// IntervalsPreset is 10, 20 and 30 seconds, every minute up to ten, then
// every five minutes up to an hour.
func IntervalsPreset() []int {
	out := []int{10, 20, 30}
	for m := 1; m <= 10; m++ {
		out = append(out, m*60)
	}
	for m := 10; m <= 60; m += 5 {
		out = append(out, m*60)
	}
	return lo.Uniq(out)
}

// ShortPreset renders in seconds; useful for smoke runs.
func ShortPreset() []int {
	return []int{5, 10}
}
