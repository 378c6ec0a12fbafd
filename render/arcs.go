package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// ArcRenderer draws elliptical arcs. Angles are in degrees, measured clockwise
// on screen from the positive x axis; sweep runs clockwise from start.
type ArcRenderer interface {
	DrawArc(dst draw.Image, center, radii image.Point, start, sweep float64, c color.Color, thickness int) error
}

// VectorArcs rasterizes arcs as filled annular sectors.
type VectorArcs struct {
	// Step is the maximum outline segment length in pixels.
	Step float64
}

func NewVectorArcs() *VectorArcs {
	return &VectorArcs{Step: 2}
}

// DrawArc paints the arc of the ellipse with the given radii. A zero sweep
// draws nothing; sweeps of 360 degrees or more draw the full ring.
func (v *VectorArcs) DrawArc(dst draw.Image, center, radii image.Point, start, sweep float64, c color.Color, thickness int) error {
	if radii.X <= 0 || radii.Y <= 0 {
		return fmt.Errorf("arc radii must be positive, got %v", radii)
	}
	if thickness <= 0 {
		return fmt.Errorf("arc thickness must be positive, got %d", thickness)
	}
	if sweep == 0 || math.IsNaN(sweep) || math.IsNaN(start) {
		return nil
	}
	if sweep < 0 {
		start, sweep = start+sweep, -sweep
	}
	sweep = math.Min(sweep, 360)

	half := float64(thickness) / 2
	outer := [2]float64{float64(radii.X) + half, float64(radii.Y) + half}
	inner := [2]float64{math.Max(float64(radii.X)-half, 0), math.Max(float64(radii.Y)-half, 0)}

	pad := int(math.Ceil(half)) + 1
	box := image.Rect(center.X-radii.X-pad, center.Y-radii.Y-pad, center.X+radii.X+pad+1, center.Y+radii.Y+pad+1)
	origin := [2]float64{
		float64(center.X - box.Min.X),
		float64(center.Y - box.Min.Y),
	}

	step := v.Step
	if step <= 0 {
		step = 2
	}
	n := int(math.Ceil(sweep*math.Pi/180*math.Max(outer[0], outer[1])/step)) + 1
	n = max(n, 2)

	z := vector.NewRasterizer(box.Dx(), box.Dy())
	for i := 0; i <= n; i++ {
		x, y := ellipsePoint(origin, outer, start+sweep*float64(i)/float64(n))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	for i := n; i >= 0; i-- {
		x, y := ellipsePoint(origin, inner, start+sweep*float64(i)/float64(n))
		z.LineTo(x, y)
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

func ellipsePoint(origin, radii [2]float64, deg float64) (float32, float32) {
	rad := deg * math.Pi / 180
	return float32(origin[0] + radii[0]*math.Cos(rad)), float32(origin[1] + radii[1]*math.Sin(rad))
}
