package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/batch"
	"countdown/countdown"
)

func TestResolvePreset(t *testing.T) {
	hours, err := ResolvePreset("Hours")
	require.NoError(t, err)
	assert.Equal(t, batch.HoursPreset(), hours)

	custom, err := ResolvePreset("15, 1m30s, 1h")
	require.NoError(t, err)
	assert.Equal(t, []int{15, 90, 3600}, custom)

	_, err = ResolvePreset("forever")
	assert.ErrorIs(t, err, countdown.ErrConfiguration)

	_, err = ResolvePreset(" , ")
	assert.ErrorIs(t, err, countdown.ErrConfiguration)

	_, err = ResolvePreset("1.5s")
	assert.ErrorIs(t, err, countdown.ErrConfiguration)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"hours", "intervals", "short"}, PresetNames())
}
