package countdown

import (
	"fmt"
	"strings"
)

// OutputName is the base file name (no extension) of a job's video. It depends
// on duration, font, variant and layout; the optional display modes add a
// suffix only when enabled so the default name stays stable. Job.Validate
// restricts font ids to letters, digits and '-', so distinct jobs never share
// a name.
func OutputName(j Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "countdown_timer_%ds_font_%s_%s_%s", j.DurationSeconds, j.FontID, j.Variant, j.Layout)
	if j.CountUp {
		b.WriteString("_up")
	}
	if j.EndOnZero {
		b.WriteString("_zero")
	}
	if j.AlwaysShowHours {
		b.WriteString("_hms")
	}
	if j.ShowStats {
		b.WriteString("_stats")
	}
	return b.String()
}
