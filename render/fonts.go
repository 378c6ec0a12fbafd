package render

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"

	"countdown/countdown"
)

// Built-in font ids, in enumeration order.
const (
	FontRegular    = "regular"
	FontMono       = "mono"
	FontBold       = "bold"
	FontItalic     = "italic"
	FontMedium     = "medium"
	FontMonoBold   = "monobold"
	FontBoldItalic = "bolditalic"
	FontSmallCaps  = "smallcaps"
)

type fontEntry struct {
	id  string
	ttf []byte
}

var builtinFonts = []fontEntry{
	{FontRegular, goregular.TTF},
	{FontMono, gomono.TTF},
	{FontBold, gobold.TTF},
	{FontItalic, goitalic.TTF},
	{FontMedium, gomedium.TTF},
	{FontMonoBold, gomonobold.TTF},
	{FontBoldItalic, gobolditalic.TTF},
	{FontSmallCaps, gosmallcaps.TTF},
}

// Fonts returns the ids of the built-in fonts.
func Fonts() []string {
	ids := make([]string, len(builtinFonts))
	for i, f := range builtinFonts {
		ids[i] = f.id
	}
	return ids
}

// HasFont reports whether id names a built-in font.
func HasFont(id string) bool {
	_, ok := lookupFont(id)
	return ok
}

func lookupFont(id string) ([]byte, bool) {
	for _, f := range builtinFonts {
		if f.id == id {
			return f.ttf, true
		}
	}
	return nil, false
}

func parseFont(id string) (*opentype.Font, error) {
	ttf, ok := lookupFont(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown font %q", countdown.ErrRenderer, id)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %q: %w", countdown.ErrRenderer, id, err)
	}
	return f, nil
}
