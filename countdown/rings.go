package countdown

// Ring identifies one of the three concentric progress arcs.
type Ring int

const (
	HourRing Ring = iota
	MinuteRing
	SecondRing
)

func (r Ring) String() string {
	switch r {
	case HourRing:
		return "hour"
	case MinuteRing:
		return "minute"
	case SecondRing:
		return "second"
	default:
		return "ring"
	}
}

// RingAngles holds the sweep of each ring in degrees, each in [0, 360).
// HasHour is false when the job is shorter than one hour.
type RingAngles struct {
	Hour    float64
	Minute  float64
	Second  float64
	HasHour bool
}

// ComputeRings derives ring sweeps from a clock. hourBase is the value of
// Job.HourBase; zero disables the hour ring. Hours beyond the base wrap.
func ComputeRings(c Clock, hourBase int) RingAngles {
	a := RingAngles{
		Minute: 360 * float64(c.Minutes) / 60,
		Second: 360 * float64(c.Seconds) / 60,
	}
	if hourBase > 0 {
		a.HasHour = true
		a.Hour = 360 * float64(c.Hours%hourBase) / float64(hourBase)
	}
	return a
}

// Arc is one ring ready for the arc renderer.
type Arc struct {
	Ring   Ring
	Radius int
	Start  float64
	Sweep  float64
}

// RingRadii returns n nested radii starting at outer, each one two stroke
// widths inside the previous so rings keep a constant gap.
func RingRadii(outer, thickness, n int) []int {
	radii := make([]int, n)
	for i := range radii {
		radii[i] = outer - 2*thickness*i
	}
	return radii
}

// Arcs lays out the rings of a frame for the given layout. Radii are fixed per
// ring, so a missing hour ring leaves its slot empty.
func (a RingAngles) Arcs(layout Layout, outer, thickness int) []Arc {
	if !layout.HasRings() {
		return nil
	}
	radii := RingRadii(outer, thickness, 3)
	candidates := []struct {
		ring    Ring
		sweep   float64
		present bool
	}{
		{HourRing, a.Hour, a.HasHour},
		{MinuteRing, a.Minute, true},
		{SecondRing, a.Second, true},
	}

	arcs := make([]Arc, 0, len(candidates))
	for i, c := range candidates {
		if !c.present || radii[i] <= 0 {
			continue
		}
		if c.sweep == 0 && layout.HidesEmptyRings() {
			continue
		}
		arcs = append(arcs, Arc{
			Ring:   c.ring,
			Radius: radii[i],
			Start:  layout.StartAngle(),
			Sweep:  c.sweep,
		})
	}
	return arcs
}
