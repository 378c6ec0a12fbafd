package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/countdown"
)

func TestJobsEnumerationOrder(t *testing.T) {
	r := Registry{
		Durations: []int{10, 20, 10},
		Fonts:     []string{"mono", "bold", "mono"},
		Variants:  []countdown.ColorVariant{countdown.Light, countdown.Dark},
		Options:   JobOptions{FPS: 30, Layout: countdown.RingsRotated, ShowStats: true},
	}
	jobs := r.Jobs()
	require.Len(t, jobs, 8)

	type key struct {
		font string
		dur  int
		v    countdown.ColorVariant
	}
	var got []key
	for _, j := range jobs {
		got = append(got, key{j.FontID, j.DurationSeconds, j.Variant})
		assert.Equal(t, 30, j.FPS)
		assert.Equal(t, countdown.RingsRotated, j.Layout)
		assert.True(t, j.ShowStats)
	}
	assert.Equal(t, []key{
		{"mono", 10, countdown.Light}, {"mono", 10, countdown.Dark},
		{"mono", 20, countdown.Light}, {"mono", 20, countdown.Dark},
		{"bold", 10, countdown.Light}, {"bold", 10, countdown.Dark},
		{"bold", 20, countdown.Light}, {"bold", 20, countdown.Dark},
	}, got)
}

func TestRegistryValidate(t *testing.T) {
	ok := Registry{
		Durations: []int{5},
		Fonts:     []string{"mono"},
		Variants:  []countdown.ColorVariant{countdown.Dark},
		Options:   JobOptions{FPS: 1},
	}
	assert.NoError(t, ok.Validate())

	empty := ok
	empty.Fonts = nil
	assert.ErrorIs(t, empty.Validate(), countdown.ErrConfiguration)

	badFPS := ok
	badFPS.Options.FPS = 0
	assert.ErrorIs(t, badFPS.Validate(), countdown.ErrConfiguration)

	negative := ok
	negative.Durations = []int{-1}
	assert.ErrorIs(t, negative.Validate(), countdown.ErrConfiguration)
}

func TestPresets(t *testing.T) {
	hours := HoursPreset()
	require.Len(t, hours, 10)
	assert.Equal(t, 3600, hours[0])
	assert.Equal(t, 36000, hours[9])

	iv := IntervalsPreset()
	require.Len(t, iv, 23)
	assert.Equal(t, []int{10, 20, 30, 60}, iv[:4])
	assert.Equal(t, 3600, iv[len(iv)-1])
	for i := 1; i < len(iv); i++ {
		assert.Greater(t, iv[i], iv[i-1])
	}

	assert.Equal(t, []int{5, 10}, ShortPreset())
}
