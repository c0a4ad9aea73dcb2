package spritepal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/spritepal/palette"
	"github.com/bodgit/spritepal/tile"
)

var errBadImage = errors.New("spritepal: image not convertible")

// FromImage converts an image back into an indexed Sheet suitable for
// validation and injection, the reverse of Sheet.Image. The image must be
// a whole number of 8x8 tiles. Already-paletted input with at most 16
// colors keeps its indices untouched; anything else is quantized down to
// 16 colors first.
//
// Every tile of the resulting sheet is assigned defaultBank, and that bank
// holds the image's palette; attribute data does not survive a trip
// through a flat image, so reapply saved Metadata afterwards if the sheet
// came from Extract.
func FromImage(m image.Image, defaultBank int) (*Sheet, error) {
	b := m.Bounds()
	if b.Dx()%tile.Width != 0 || b.Dy()%tile.Height != 0 {
		return nil, fmt.Errorf("%w: %dx%d is not a whole number of %dx%d tiles", errBadImage, b.Dx(), b.Dy(), tile.Width, tile.Height)
	}
	if defaultBank < 0 || defaultBank >= palette.Banks {
		return nil, fmt.Errorf("%w: bank %d", ErrOutOfRange, defaultBank)
	}

	pm, _ := m.(*image.Paletted)
	if pm != nil && len(pm.Palette) > palette.Colors {
		pm = nil
	}
	if pm == nil {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, palette.Colors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	tilesPerRow := b.Dx() / tile.Width
	count := tilesPerRow * b.Dy() / tile.Height

	s := &Sheet{
		TilesPerRow: tilesPerRow,
		DefaultBank: defaultBank,
		Pixels:      make([]uint8, b.Dx()*b.Dy()),
		Tiles:       make([]TileInfo, count),
	}

	for i := range s.Banks {
		s.Banks[i] = palette.Grayscale()
	}
	var bank palette.Bank
	for i, c := range pm.Palette {
		if i >= palette.Colors {
			break
		}
		r, g, b, _ := c.RGBA()
		bank[i] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
	}
	s.Banks[defaultBank] = bank

	for i := range s.Tiles {
		s.Tiles[i] = TileInfo{Index: i, Bank: defaultBank}
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			s.Pixels[y*b.Dx()+x] = pm.ColorIndexAt(x, y) & 0x0f
		}
	}

	return s, nil
}
