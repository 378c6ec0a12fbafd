package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"countdown/batch"
	"countdown/countdown"
	"countdown/render"
	"countdown/video"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	OutputDir string `validate:"required"`
	Width     int    `validate:"gt=0,even"`
	Height    int    `validate:"gt=0,even"`
	FPS       int    `validate:"gte=1,lte=240"`

	// Preset is a preset name or a duration list; Durations overrides it.
	Preset    string
	Durations []int    `validate:"dive,gte=0"`
	Layout    string   `validate:"required,oneof=plain rings rotated"`
	Fonts     []string `validate:"required,min=1,dive,font"`
	Variants  []string `validate:"required,min=1,dive,oneof=light dark light_bg dark_bg"`
	Estimate  string   `validate:"required,oneof=reanchor start frozen"`

	RingsMaxHours   int `validate:"gte=0,lte=24"`
	CountUp         bool
	EndOnZero       bool
	AlwaysShowHours bool
	ShowStats       bool
	StopOnError     bool

	Sink        string `validate:"required,oneof=ffmpeg png"`
	FFmpegPath  string
	VideoCodec  string `validate:"required"`
	PixFmt      string `validate:"required"`
	VideoPreset string `validate:"required"`

	TUI      bool
	LogLevel string `validate:"required,oneof=trace debug info warn error disabled"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
	_ = v.RegisterValidation("font", func(fl validator.FieldLevel) bool {
		return render.HasFont(fl.Field().String())
	})
	return v
}

// Validate checks every field and reports all violations at once.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", countdown.ErrConfiguration, err)
	}
	msgs := lo.Map(verrs, func(e validator.FieldError, _ int) string {
		if e.Param() != "" {
			return fmt.Sprintf("%s: %s=%s (got %v)", e.Namespace(), e.Tag(), e.Param(), e.Value())
		}
		return fmt.Sprintf("%s: %s (got %v)", e.Namespace(), e.Tag(), e.Value())
	})
	return fmt.Errorf("%w: %s", countdown.ErrConfiguration, strings.Join(msgs, "; "))
}

// Load reads .env (if present), the environment and then args, and validates
// the result.
func Load(args []string) (*Settings, error) {
	_ = godotenv.Load()
	return Parse(args, os.Getenv, os.Stderr)
}

// Parse builds settings from getenv and args. Flag usage is written to usage.
func Parse(args []string, getenv func(string) string, usage io.Writer) (*Settings, error) {
	env := envReader{getenv: getenv}
	s := &Settings{
		OutputDir:       env.str("OUTPUT_DIR", DefaultOutputDir),
		Width:           env.integer("WIDTH", DefaultWidth),
		Height:          env.integer("HEIGHT", DefaultHeight),
		FPS:             env.integer("FPS", DefaultFPS),
		Preset:          env.str("PRESET", DefaultPreset),
		Layout:          env.str("LAYOUT", DefaultLayout),
		Estimate:        env.str("ESTIMATE", DefaultEstimate),
		RingsMaxHours:   env.integer("RINGS_MAX_HOURS", 0),
		CountUp:         env.boolean("COUNT_UP", false),
		EndOnZero:       env.boolean("END_ON_ZERO", false),
		AlwaysShowHours: env.boolean("ALWAYS_HOURS", false),
		ShowStats:       env.boolean("SHOW_STATS", false),
		StopOnError:     env.boolean("STOP_ON_ERROR", false),
		Sink:            env.str("SINK", DefaultSink),
		FFmpegPath:      env.str("FFMPEG_PATH", ""),
		VideoCodec:      env.str("VIDEO_CODEC", DefaultVideoCodec),
		PixFmt:          env.str("PIX_FMT", DefaultPixFmt),
		VideoPreset:     env.str("VIDEO_PRESET", DefaultVideoPreset),
		TUI:             env.boolean("TUI", false),
		LogLevel:        env.str("LOG_LEVEL", DefaultLogLevel),
	}
	durations := env.str("DURATIONS", "")
	fonts := env.str("FONTS", AllFonts)
	variants := env.str("VARIANTS", DefaultVariants)
	if env.err != nil {
		return nil, env.err
	}

	fs := flag.NewFlagSet("countdown", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&s.OutputDir, "out", s.OutputDir, "Directory finished videos are written to")
	fs.IntVar(&s.Width, "width", s.Width, "Frame width in pixels (even)")
	fs.IntVar(&s.Height, "height", s.Height, "Frame height in pixels (even)")
	fs.IntVar(&s.FPS, "fps", s.FPS, "Frames per second")
	fs.StringVar(&s.Preset, "preset", s.Preset, "Duration preset ("+strings.Join(PresetNames(), "|")+") or a comma-separated duration list")
	fs.StringVar(&durations, "durations", durations, "Comma-separated durations (e.g. 90,5m,1h); overrides -preset")
	fs.StringVar(&s.Layout, "layout", s.Layout, "Frame layout (plain|rings|rotated)")
	fs.StringVar(&fonts, "fonts", fonts, "Comma-separated font ids or 'all' ("+strings.Join(render.Fonts(), ",")+")")
	fs.StringVar(&variants, "variants", variants, "Comma-separated color variants (light,dark)")
	fs.StringVar(&s.Estimate, "estimate", s.Estimate, "Finish estimate policy (reanchor|start|frozen)")
	fs.IntVar(&s.RingsMaxHours, "rings-max-hours", s.RingsMaxHours, "Hour ring base in hours; 0 derives it from the duration")
	fs.BoolVar(&s.CountUp, "count-up", s.CountUp, "Show elapsed instead of remaining time")
	fs.BoolVar(&s.EndOnZero, "end-on-zero", s.EndOnZero, "Append one second showing 00:00")
	fs.BoolVar(&s.AlwaysShowHours, "always-hours", s.AlwaysShowHours, "Always print HH:MM:SS")
	fs.BoolVar(&s.ShowStats, "stats", s.ShowStats, "Draw progress statistics onto frames")
	fs.BoolVar(&s.StopOnError, "stop-on-error", s.StopOnError, "Stop the batch at the first failed job")
	fs.StringVar(&s.Sink, "sink", s.Sink, "Frame sink (ffmpeg|png)")
	fs.StringVar(&s.FFmpegPath, "ffmpeg", s.FFmpegPath, "Path to the ffmpeg binary")
	fs.StringVar(&s.VideoCodec, "codec", s.VideoCodec, "Video codec")
	fs.StringVar(&s.PixFmt, "pix-fmt", s.PixFmt, "Encoded pixel format")
	fs.StringVar(&s.VideoPreset, "video-preset", s.VideoPreset, "Encoder speed preset")
	fs.BoolVar(&s.TUI, "tui", s.TUI, "Show the terminal UI")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "Log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", countdown.ErrConfiguration, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", countdown.ErrConfiguration, fs.Args())
	}

	if strings.TrimSpace(durations) != "" {
		d, err := ParseDurations(durations)
		if err != nil {
			return nil, err
		}
		s.Durations = d
	}
	s.Fonts = splitList(fonts)
	if len(s.Fonts) == 1 && strings.EqualFold(s.Fonts[0], AllFonts) {
		s.Fonts = render.Fonts()
	}
	s.Variants = splitList(variants)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Registry converts the settings into the job table of a batch.
func (s *Settings) Registry() (batch.Registry, error) {
	durations := s.Durations
	if len(durations) == 0 {
		d, err := ResolvePreset(s.Preset)
		if err != nil {
			return batch.Registry{}, err
		}
		durations = d
	}
	layout, err := countdown.ParseLayout(s.Layout)
	if err != nil {
		return batch.Registry{}, err
	}
	estimate, err := countdown.ParseEstimate(s.Estimate)
	if err != nil {
		return batch.Registry{}, err
	}
	variants := make([]countdown.ColorVariant, 0, len(s.Variants))
	for _, name := range s.Variants {
		v, err := countdown.ParseVariant(name)
		if err != nil {
			return batch.Registry{}, err
		}
		variants = append(variants, v)
	}

	r := batch.Registry{
		Durations: durations,
		Fonts:     s.Fonts,
		Variants:  variants,
		Options: batch.JobOptions{
			FPS:             s.FPS,
			Layout:          layout,
			RingsMaxHours:   s.RingsMaxHours,
			CountUp:         s.CountUp,
			EndOnZero:       s.EndOnZero,
			AlwaysShowHours: s.AlwaysShowHours,
			ShowStats:       s.ShowStats,
			Estimate:        estimate,
		},
	}
	return r, r.Validate()
}

// Encoder returns the ffmpeg options of the settings.
func (s *Settings) Encoder() video.EncoderOptions {
	return video.EncoderOptions{
		FFmpegPath: s.FFmpegPath,
		Codec:      s.VideoCodec,
		PixFmt:     s.PixFmt,
		Preset:     s.VideoPreset,
	}
}

// Level is the parsed zerolog level.
func (s *Settings) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func splitList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}

// envReader reads prefixed variables, keeping the first parse error.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, defaultVal string) string {
	if v := strings.TrimSpace(e.getenv(EnvPrefix + key)); v != "" {
		return v
	}
	return defaultVal
}

func (e *envReader) integer(key string, defaultVal int) int {
	v := e.str(key, "")
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("%w: %s%s=%q is not an integer", countdown.ErrConfiguration, EnvPrefix, key, v)
	}
	if err != nil {
		return defaultVal
	}
	return n
}

func (e *envReader) boolean(key string, defaultVal bool) bool {
	v := e.str(key, "")
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("%w: %s%s=%q is not a boolean", countdown.ErrConfiguration, EnvPrefix, key, v)
		}
		return defaultVal
	}
	return b
}
