package video

// EncoderOptions are the ffmpeg output settings of a video job.
type EncoderOptions struct {
	// FFmpegPath overrides the ffmpeg binary looked up on PATH.
	FFmpegPath string
	Codec      string
	PixFmt     string
	Preset     string
	// Container is the output file extension, including the dot.
	Container string
}

// DefaultEncoderOptions encodes H.264 MP4 files playable everywhere.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		Codec:     "libx264",
		PixFmt:    "yuv420p",
		Preset:    "fast",
		Container: ".mp4",
	}
}

func (o EncoderOptions) withDefaults() EncoderOptions {
	d := DefaultEncoderOptions()
	if o.Codec == "" {
		o.Codec = d.Codec
	}
	if o.PixFmt == "" {
		o.PixFmt = d.PixFmt
	}
	if o.Preset == "" {
		o.Preset = d.Preset
	}
	if o.Container == "" {
		o.Container = d.Container
	}
	return o
}
