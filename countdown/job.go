package countdown

import (
	"fmt"
	"strings"
)

// ColorVariant selects the background/foreground pair of a job.
type ColorVariant int

const (
	Light ColorVariant = iota
	Dark
)

func (v ColorVariant) String() string {
	switch v {
	case Light:
		return "light_bg"
	case Dark:
		return "dark_bg"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant accepts "light", "dark" and their "_bg" forms.
func ParseVariant(s string) (ColorVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "light_bg":
		return Light, nil
	case "dark", "dark_bg":
		return Dark, nil
	default:
		return 0, fmt.Errorf("%w: unknown color variant %q (expected light|dark)", ErrConfiguration, s)
	}
}

// Layout controls whether and how progress rings are drawn.
type Layout int

const (
	// Plain draws only the clock text.
	Plain Layout = iota
	// RingsCentered draws all three rings from 0 degrees, even at zero sweep.
	RingsCentered
	// RingsRotated starts the rings at -90 degrees and hides rings at zero sweep.
	RingsRotated
)

func (l Layout) String() string {
	switch l {
	case Plain:
		return "plain"
	case RingsCentered:
		return "rings"
	case RingsRotated:
		return "rotated"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// ParseLayout maps a layout name to its value.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return Plain, nil
	case "rings", "rings_centered", "centered":
		return RingsCentered, nil
	case "rotated", "rings_rotated":
		return RingsRotated, nil
	default:
		return 0, fmt.Errorf("%w: unknown layout %q (expected plain|rings|rotated)", ErrConfiguration, s)
	}
}

// HasRings reports whether frames of this layout carry ring angles.
func (l Layout) HasRings() bool {
	return l == RingsCentered || l == RingsRotated
}

// StartAngle is the ring start offset in degrees.
func (l Layout) StartAngle() float64 {
	if l == RingsRotated {
		return -90
	}
	return 0
}

// HidesEmptyRings reports whether a ring with a zero sweep is left out.
func (l Layout) HidesEmptyRings() bool {
	return l == RingsRotated
}

// EstimatePolicy decides how ProgressSample.EstimatedFinish is derived.
type EstimatePolicy int

const (
	// EstimateReanchor uses now + remaining, recomputed at every sample.
	EstimateReanchor EstimatePolicy = iota
	// EstimateFromStart uses job start + remaining.
	EstimateFromStart
	// EstimateFrozen holds job start + duration for the whole job.
	EstimateFrozen
)

func (p EstimatePolicy) String() string {
	switch p {
	case EstimateReanchor:
		return "reanchor"
	case EstimateFromStart:
		return "start"
	case EstimateFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("estimate(%d)", int(p))
	}
}

// ParseEstimate maps a policy name to its value.
func ParseEstimate(s string) (EstimatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reanchor", "now":
		return EstimateReanchor, nil
	case "start":
		return EstimateFromStart, nil
	case "frozen":
		return EstimateFrozen, nil
	default:
		return 0, fmt.Errorf("%w: unknown estimate policy %q (expected reanchor|start|frozen)", ErrConfiguration, s)
	}
}

// MaxHourBase caps the hour ring normalization.
const MaxHourBase = 24

// Job is the immutable description of one countdown video.
type Job struct {
	DurationSeconds int
	FPS             int
	Variant         ColorVariant
	// FontID is handed to the text renderer untouched.
	FontID string
	Layout Layout
	// RingsMaxHours is the hour ring base. Zero derives it from the duration.
	RingsMaxHours int

	// CountUp displays elapsed time instead of remaining time.
	CountUp bool
	// EndOnZero appends one simulated second showing 00:00.
	EndOnZero bool
	// AlwaysShowHours forces HH:MM:SS even when hours is zero.
	AlwaysShowHours bool
	// ShowStats draws the last progress sample onto every frame.
	ShowStats bool
	Estimate  EstimatePolicy
}

// Validate checks that the job can be rendered.
func (j Job) Validate() error {
	if j.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration must be >= 0, got %d", ErrConfiguration, j.DurationSeconds)
	}
	if j.FPS < 1 {
		return fmt.Errorf("%w: fps must be >= 1, got %d", ErrConfiguration, j.FPS)
	}
	if j.RingsMaxHours < 0 {
		return fmt.Errorf("%w: rings max hours must be >= 0, got %d", ErrConfiguration, j.RingsMaxHours)
	}
	if strings.TrimSpace(j.FontID) == "" {
		return fmt.Errorf("%w: font id is required", ErrConfiguration)
	}
	if !validFontID(j.FontID) {
		return fmt.Errorf("%w: font id %q may only contain letters, digits and '-'", ErrConfiguration, j.FontID)
	}
	switch j.Layout {
	case Plain, RingsCentered, RingsRotated:
	default:
		return fmt.Errorf("%w: unknown layout %d", ErrConfiguration, int(j.Layout))
	}
	switch j.Variant {
	case Light, Dark:
	default:
		return fmt.Errorf("%w: unknown color variant %d", ErrConfiguration, int(j.Variant))
	}
	return nil
}

// TotalFrames is the fixed frame count of the job.
func (j Job) TotalFrames() int {
	seconds := j.DurationSeconds
	if j.EndOnZero {
		seconds++
	}
	return seconds * j.FPS
}

// HourBase is the hour ring normalization base, or 0 when no hour ring is drawn.
func (j Job) HourBase() int {
	base := j.RingsMaxHours
	if base == 0 {
		base = j.DurationSeconds / 3600
	}
	return min(base, MaxHourBase)
}

// validFontID reports whether id can appear verbatim in an output name.
func validFontID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
