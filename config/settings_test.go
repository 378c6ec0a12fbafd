package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countdown/countdown"
	"countdown/render"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse(nil, envMap(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, s.OutputDir)
	assert.Equal(t, 1920, s.Width)
	assert.Equal(t, 1080, s.Height)
	assert.Equal(t, 60, s.FPS)
	assert.Equal(t, render.Fonts(), s.Fonts)
	assert.Equal(t, []string{"light", "dark"}, s.Variants)
	assert.Equal(t, "ffmpeg", s.Sink)

	r, err := s.Registry()
	require.NoError(t, err)
	assert.Len(t, r.Jobs(), 23*8*2)
}

func TestFlagsOverrideEnv(t *testing.T) {
	env := envMap(map[string]string{
		"COUNTDOWN_FPS":        "24",
		"COUNTDOWN_LAYOUT":     "rings",
		"COUNTDOWN_FONTS":      "mono, bold",
		"COUNTDOWN_SHOW_STATS": "true",
		"COUNTDOWN_DURATIONS":  "5,10",
	})
	s, err := Parse([]string{"-fps", "30", "-durations", "90,2m", "-variants", "dark"}, env, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 30, s.FPS)
	assert.Equal(t, "rings", s.Layout)
	assert.Equal(t, []string{"mono", "bold"}, s.Fonts)
	assert.True(t, s.ShowStats)
	assert.Equal(t, []int{90, 120}, s.Durations)

	r, err := s.Registry()
	require.NoError(t, err)
	jobs := r.Jobs()
	require.Len(t, jobs, 4)
	assert.Equal(t, countdown.Job{
		DurationSeconds: 90,
		FPS:             30,
		Variant:         countdown.Dark,
		FontID:          "mono",
		Layout:          countdown.RingsCentered,
		ShowStats:       true,
	}, jobs[0])
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"odd width", []string{"-width", "1919"}, nil},
		{"zero fps", []string{"-fps", "0"}, nil},
		{"unknown font", []string{"-fonts", "comic"}, nil},
		{"unknown layout", []string{"-layout", "spiral"}, nil},
		{"unknown variant", []string{"-variants", "sepia"}, nil},
		{"unknown sink", []string{"-sink", "gif"}, nil},
		{"bad duration", []string{"-durations", "soon"}, nil},
		{"negative duration", []string{"-durations", "-5"}, nil},
		{"hour base", []string{"-rings-max-hours", "25"}, nil},
		{"bad env int", nil, map[string]string{"COUNTDOWN_WIDTH": "wide"}},
		{"bad env bool", nil, map[string]string{"COUNTDOWN_TUI": "maybe"}},
		{"unknown flag", []string{"-nope"}, nil},
		{"stray argument", []string{"extra"}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.args, envMap(c.env), io.Discard)
			assert.ErrorIs(t, err, countdown.ErrConfiguration)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	s, err := Parse(nil, envMap(nil), io.Discard)
	require.NoError(t, err)
	s.Width, s.Sink = 3, "tape"
	err = s.Validate()
	require.ErrorIs(t, err, countdown.ErrConfiguration)
	assert.Contains(t, err.Error(), "Settings.Width")
	assert.Contains(t, err.Error(), "Settings.Sink")
}

func TestEncoderAndLevel(t *testing.T) {
	s, err := Parse([]string{"-ffmpeg", "/usr/local/bin/ffmpeg", "-video-preset", "veryfast", "-log-level", "debug"}, envMap(nil), io.Discard)
	require.NoError(t, err)
	enc := s.Encoder()
	assert.Equal(t, "/usr/local/bin/ffmpeg", enc.FFmpegPath)
	assert.Equal(t, "veryfast", enc.Preset)
	assert.Equal(t, "libx264", enc.Codec)
	assert.Equal(t, "debug", s.Level().String())
}
