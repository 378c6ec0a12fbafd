package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func arcCanvas(t *testing.T, start, sweep float64) *image.RGBA {
	t.Helper()
	dst := image.NewRGBA(image.Rect(0, 0, 200, 200))
	err := NewVectorArcs().DrawArc(dst, image.Pt(100, 100), image.Pt(50, 50), start, sweep, red, 10)
	require.NoError(t, err)
	return dst
}

func painted(dst *image.RGBA, x, y int) bool {
	return dst.RGBAAt(x, y).R > 0x80
}

func TestDrawArcFullRing(t *testing.T) {
	dst := arcCanvas(t, 0, 360)
	for _, p := range []image.Point{{150, 100}, {100, 150}, {50, 100}, {100, 50}} {
		assert.True(t, painted(dst, p.X, p.Y), "ring missing at %v", p)
	}
	assert.False(t, painted(dst, 100, 100), "center painted")
	assert.False(t, painted(dst, 160, 100), "outside stroke painted")
	assert.False(t, painted(dst, 140, 100), "inside stroke painted")
}

func TestDrawArcSweepsClockwise(t *testing.T) {
	dst := arcCanvas(t, 0, 90)
	// 45 degrees clockwise from +x is below-right on screen.
	assert.True(t, painted(dst, 135, 135))
	assert.False(t, painted(dst, 135, 65))
	assert.False(t, painted(dst, 65, 65))

	rotated := arcCanvas(t, -90, 90)
	assert.True(t, painted(rotated, 135, 65))
	assert.False(t, painted(rotated, 135, 135))
}

func TestDrawArcZeroSweep(t *testing.T) {
	dst := arcCanvas(t, -90, 0)
	for _, v := range dst.Pix {
		require.Zero(t, v)
	}
}

func TestDrawArcRejectsBadGeometry(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	a := NewVectorArcs()
	assert.Error(t, a.DrawArc(dst, image.Pt(5, 5), image.Pt(0, 5), 0, 90, red, 2))
	assert.Error(t, a.DrawArc(dst, image.Pt(5, 5), image.Pt(5, 5), 0, 90, red, 0))
}
