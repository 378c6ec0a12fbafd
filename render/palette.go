package render

import (
	"image/color"

	"countdown/countdown"
)

// Palette is the set of colors a job is drawn with.
type Palette struct {
	Background color.RGBA
	Foreground color.RGBA
	// Rings is indexed by countdown.Ring.
	Rings [3]color.RGBA
}

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	ringColors = [3]color.RGBA{
		countdown.HourRing:   {R: 0xff, A: 0xff},
		countdown.MinuteRing: {G: 0xff, A: 0xff},
		countdown.SecondRing: {B: 0xff, A: 0xff},
	}
)

// PaletteFor returns the colors of a variant.
func PaletteFor(v countdown.ColorVariant) Palette {
	p := Palette{Background: white, Foreground: black, Rings: ringColors}
	if v == countdown.Dark {
		p.Background, p.Foreground = black, white
	}
	return p
}

// Ring returns the color of ring r.
func (p Palette) Ring(r countdown.Ring) color.RGBA {
	if r < 0 || int(r) >= len(p.Rings) {
		return p.Foreground
	}
	return p.Rings[r]
}
