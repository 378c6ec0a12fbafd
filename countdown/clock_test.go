package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeRoundTrips(t *testing.T) {
	for _, total := range []int{0, 1, 59, 60, 61, 3599, 3600, 3601, 86399, 86400, 359999, 360000, 1_000_000} {
		c := Decompose(total)
		require.Equal(t, total, c.Hours*3600+c.Minutes*60+c.Seconds, "Decompose(%d) = %+v", total, c)
		require.True(t, c.Minutes >= 0 && c.Minutes < 60, "minutes out of range: %+v", c)
		require.True(t, c.Seconds >= 0 && c.Seconds < 60, "seconds out of range: %+v", c)
	}
	for total := 0; total < 2*3600; total++ {
		if got := Decompose(total).Total(); got != total {
			require.Equal(t, total, got, "Decompose(%d).Total()", total)
		}
	}
}

func TestDecomposeNegativeIsZero(t *testing.T) {
	assert.Equal(t, Clock{}, Decompose(-5))
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		name        string
		seconds     int
		alwaysHours bool
		want        string
	}{
		{"zero", 0, false, "00:00"},
		{"seconds only", 5, false, "00:05"},
		{"minutes", 754, false, "12:34"},
		{"one hour", 3600, false, "01:00:00"},
		{"forced hours", 65, true, "00:01:05"},
		{"three digit hours", 100*3600 + 61, false, "100:01:01"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FormatClock(Decompose(c.seconds), c.alwaysHours))
		})
	}
}

func TestFormatSwitchesAtHourBoundary(t *testing.T) {
	gen, err := NewGenerator(Job{DurationSeconds: 3601, FPS: 2, FontID: "mono"})
	require.NoError(t, err)

	switched := -1
	for {
		fs, ok := gen.Next()
		if !ok {
			break
		}
		long := len(fs.Text) == len("00:00:00")
		if fs.Clock.Hours > 0 {
			require.True(t, long, "frame %d: %q lost the hour field", fs.Index, fs.Text)
		} else {
			require.False(t, long, "frame %d: %q kept the hour field", fs.Index, fs.Text)
		}
		if !long && switched < 0 {
			switched = fs.Index
		}
	}
	// remaining drops to 3599 at the start of the third simulated second
	assert.Equal(t, 4, switched)
}
