package render

import (
	"image"

	"countdown/countdown"
)

// Style holds the geometry of a layout at a given frame size.
type Style struct {
	TextScale     float64
	TextThickness int

	Center        image.Point
	OuterRadius   int
	RingThickness int

	StatsOrigin     image.Point
	StatsLineHeight int
	StatsScale      float64
	StatsThickness  int
}

// StyleFor returns the style of layout for a width x height frame.
func StyleFor(layout countdown.Layout, width, height int) Style {
	s := Style{
		TextScale:       8,
		TextThickness:   12,
		Center:          image.Pt(width/2, height/2),
		OuterRadius:     int(0.9 * float64(height) / 2),
		StatsOrigin:     image.Pt(50, 100),
		StatsLineHeight: 50,
		StatsScale:      1.5,
		StatsThickness:  3,
	}
	switch layout {
	case countdown.RingsCentered:
		s.TextScale, s.TextThickness = 4, 8
		s.RingThickness = 20
	case countdown.RingsRotated:
		s.TextScale, s.TextThickness = 4, 16
		s.RingThickness = 50
	}
	return s
}
