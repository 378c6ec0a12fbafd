package countdown

import "fmt"

// Clock is a whole-second time split into hours, minutes and seconds.
// Hours has no upper bound.
type Clock struct {
	Hours   int
	Minutes int
	Seconds int
}

// Decompose splits seconds into a Clock. Negative input is treated as zero.
func Decompose(seconds int) Clock {
	if seconds < 0 {
		seconds = 0
	}
	return Clock{
		Hours:   seconds / 3600,
		Minutes: (seconds % 3600) / 60,
		Seconds: seconds % 60,
	}
}

// Total converts the clock back to seconds.
func (c Clock) Total() int {
	return c.Hours*3600 + c.Minutes*60 + c.Seconds
}

// FormatClock renders HH:MM:SS when hours are present (or forced), MM:SS otherwise.
// Hours widen past two digits instead of being truncated.
func FormatClock(c Clock, alwaysHours bool) string {
	if c.Hours > 0 || alwaysHours {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	}
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

func (c Clock) String() string {
	return FormatClock(c, false)
}
