package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"countdown/batch"
	"countdown/countdown"
)

// DurationPresets maps friendly names to duration lists in seconds
var DurationPresets = map[string]func() []int{
	"intervals": batch.IntervalsPreset,
	"hours":     batch.HoursPreset,
	"short":     batch.ShortPreset,
}

// PresetNames lists the preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(DurationPresets))
	for name := range DurationPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePreset resolves a duration preset name to its durations.
// Anything else is parsed as a comma-separated duration list.
func ResolvePreset(input string) ([]int, error) {
	if preset, exists := DurationPresets[strings.ToLower(strings.TrimSpace(input))]; exists {
		return preset(), nil
	}
	return ParseDurations(input)
}

// ParseDurations parses a comma-separated list of durations. Bare numbers are
// seconds; values with a unit use time.ParseDuration ("90s", "5m", "1h30m").
func ParseDurations(input string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		secs, err := parseSeconds(field)
		if err != nil {
			return nil, fmt.Errorf("%w: duration %q: %w", countdown.ErrConfiguration, field, err)
		}
		out = append(out, secs)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no durations in %q (presets: %s)", countdown.ErrConfiguration, input, strings.Join(PresetNames(), ", "))
	}
	return out, nil
}

func parseSeconds(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("must be >= 0")
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 || d%time.Second != 0 {
		return 0, fmt.Errorf("must be a non-negative whole number of seconds")
	}
	return int(d / time.Second), nil
}
