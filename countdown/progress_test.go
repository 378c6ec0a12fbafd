package countdown

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDelta(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{5 * time.Second, "0:00:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{25 * time.Hour, "1 day, 1:00:00"},
		{50 * time.Hour, "2 days, 2:00:00"},
		{-90 * time.Second, "-0:01:30"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDelta(c.d), "FormatDelta(%v)", c.d)
	}
}

func TestEstimatePolicies(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	later := start.Add(30 * time.Second)

	cases := []struct {
		policy EstimatePolicy
		want   time.Time
	}{
		{EstimateReanchor, later.Add(40 * time.Second)},
		{EstimateFromStart, start.Add(40 * time.Second)},
		{EstimateFrozen, start.Add(100 * time.Second)},
	}
	for _, c := range cases {
		t.Run(c.policy.String(), func(t *testing.T) {
			calls := 0
			s := sampler{
				job: Job{DurationSeconds: 100, FPS: 1, Estimate: c.policy},
				now: func() time.Time {
					calls++
					if calls == 1 {
						return start
					}
					return later
				},
			}
			s.start()
			got := s.sample(60, 40)
			assert.True(t, got.EstimatedFinish.Equal(c.want), "estimate = %v; want %v", got.EstimatedFinish, c.want)
			assert.Equal(t, 30*time.Second, got.RenderElapsed)
			assert.Equal(t, 60.0, got.Percent)
		})
	}
}

func TestFormatStats(t *testing.T) {
	s := ProgressSample{
		Elapsed:         5 * time.Second,
		Remaining:       65 * time.Second,
		Percent:         7.142857,
		EstimatedFinish: time.Date(2024, 5, 1, 21, 7, 9, 0, time.UTC),
	}
	want := strings.Join([]string{
		"Time Passed: 0:00:05",
		"Time Remaining: 0:01:05",
		"Estimated Finish: 21:07:09",
		"Completion: 7.14%",
	}, "\n")
	assert.Equal(t, want, FormatStats(s))
}

func TestParseEnums(t *testing.T) {
	l, err := ParseLayout("Rotated")
	require.NoError(t, err)
	assert.Equal(t, RingsRotated, l)

	v, err := ParseVariant("dark_bg")
	require.NoError(t, err)
	assert.Equal(t, Dark, v)

	p, err := ParseEstimate("")
	require.NoError(t, err)
	assert.Equal(t, EstimateReanchor, p)

	_, err = ParseLayout("spiral")
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseVariant("sepia")
	assert.ErrorIs(t, err, ErrConfiguration)
	_, err = ParseEstimate("soon")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSamplePercent(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	job := Job{DurationSeconds: 10, FPS: 2, FontID: "mono"}
	got := Sample(job, 5, 8, start, start.Add(time.Second))
	assert.Equal(t, 25.0, got.Percent)
	assert.Equal(t, 2*time.Second, got.Elapsed)
	assert.Equal(t, 8*time.Second, got.Remaining)
	assert.Equal(t, 20, got.TotalFrames)
}
