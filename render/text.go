package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScaleUnit is the font size in pixels of text drawn at scale 1.
const ScaleUnit = 30

// TextRenderer measures and draws a line of text.
type TextRenderer interface {
	// Measure returns the size of the box text occupies.
	Measure(text, fontID string, scale float64, thickness int) (image.Point, error)
	// Draw paints text with the bottom-left corner of its box at pos.
	Draw(dst draw.Image, text string, pos image.Point, fontID string, scale float64, c color.Color, thickness int) error
}

type faceKey struct {
	font string
	size float64
}

// FaceRenderer renders text with OpenType faces. Stroke thickness is emulated
// by dilating the glyph coverage. Not safe for concurrent use.
type FaceRenderer struct {
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

func NewFaceRenderer() *FaceRenderer {
	return &FaceRenderer{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (r *FaceRenderer) face(fontID string, scale float64) (font.Face, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("text scale must be positive, got %v", scale)
	}
	key := faceKey{font: fontID, size: scale * ScaleUnit}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	parsed, ok := r.fonts[fontID]
	if !ok {
		var err error
		if parsed, err = parseFont(fontID); err != nil {
			return nil, err
		}
		r.fonts[fontID] = parsed
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("face %q at %vpx: %w", fontID, key.size, err)
	}
	r.faces[key] = f
	return f, nil
}

// Measure returns the advance width and cap height of text, each grown by the
// stroke thickness.
func (r *FaceRenderer) Measure(text, fontID string, scale float64, thickness int) (image.Point, error) {
	f, err := r.face(fontID, scale)
	if err != nil {
		return image.Point{}, err
	}
	pad := 2 * strokeRadius(thickness)
	advance := font.MeasureString(f, text).Ceil()
	return image.Point{X: advance + pad, Y: capHeight(f) + pad}, nil
}

// Draw paints text onto dst. Descenders extend below pos.
func (r *FaceRenderer) Draw(dst draw.Image, text string, pos image.Point, fontID string, scale float64, c color.Color, thickness int) error {
	f, err := r.face(fontID, scale)
	if err != nil {
		return err
	}
	rad := strokeRadius(thickness)
	m := f.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	width := font.MeasureString(f, text).Ceil() + 2*rad
	// Glyphs can overhang their advance; leave room on both sides.
	overhang := ascent / 4
	mask := image.NewAlpha(image.Rect(0, 0, width+2*overhang, ascent+descent+2*rad))

	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: f,
		Dot:  fixed.P(overhang+rad, rad+ascent),
	}
	d.DrawString(text)
	if rad > 0 {
		mask = dilate(mask, rad)
	}

	// The box bottom is rad below the baseline.
	origin := image.Point{X: pos.X - overhang, Y: pos.Y - 2*rad - ascent}
	rect := mask.Bounds().Add(origin)
	draw.DrawMask(dst, rect, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

func capHeight(f font.Face) int {
	m := f.Metrics()
	if m.CapHeight > 0 {
		return m.CapHeight.Ceil()
	}
	return m.Ascent.Ceil()
}

func strokeRadius(thickness int) int {
	if thickness <= 1 {
		return 0
	}
	return thickness / 2
}

// dilate grows the coverage of m by a square of radius r.
func dilate(m *image.Alpha, r int) *image.Alpha {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewAlpha(b)
	for y := 0; y < h; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+w]
		out := tmp.Pix[y*tmp.Stride : y*tmp.Stride+w]
		for x := range out {
			out[x] = maxRange(row, x-r, x+r)
		}
	}
	dst := image.NewAlpha(b)
	col := make([]uint8, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		for y := 0; y < h; y++ {
			dst.Pix[y*dst.Stride+x] = maxRange(col, y-r, y+r)
		}
	}
	return dst
}

func maxRange(s []uint8, lo, hi int) uint8 {
	lo = max(lo, 0)
	hi = min(hi, len(s)-1)
	var best uint8
	for i := lo; i <= hi; i++ {
		if s[i] > best {
			best = s[i]
			if best == math.MaxUint8 {
				break
			}
		}
	}
	return best
}
