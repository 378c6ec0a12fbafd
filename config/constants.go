package config

// Output Constants
const (
	// DefaultOutputDir is where finished videos are published
	DefaultOutputDir = "render"

	// DefaultWidth is the frame width in pixels
	DefaultWidth = 1920

	// DefaultHeight is the frame height in pixels
	DefaultHeight = 1080

	// DefaultFPS is the frame rate of every job
	DefaultFPS = 60

	// LogFileName receives logs while the terminal UI owns the screen
	LogFileName = "countdown.log"
)

// Encoder Constants
const (
	// DefaultSink selects the frame sink (ffmpeg or png)
	DefaultSink = "ffmpeg"

	// DefaultVideoCodec is the video encoding codec
	DefaultVideoCodec = "libx264"

	// DefaultPixFmt is the encoded pixel format
	DefaultPixFmt = "yuv420p"

	// DefaultVideoPreset is the ffmpeg encoding speed preset
	DefaultVideoPreset = "fast"
)

// Job Constants
const (
	// DefaultPreset names the duration list rendered when none is given
	DefaultPreset = "intervals"

	// DefaultLayout is the frame layout
	DefaultLayout = "plain"

	// AllFonts selects every built-in font
	AllFonts = "all"

	// DefaultVariants renders both color schemes
	DefaultVariants = "light,dark"

	// DefaultEstimate is the finish-time estimate policy
	DefaultEstimate = "reanchor"

	// DefaultLogLevel is the zerolog level name
	DefaultLogLevel = "info"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "COUNTDOWN_"
