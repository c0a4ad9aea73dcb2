package spritepal

import (
	"image"
	"image/color"

	"github.com/bodgit/spritepal/palette"
	"github.com/bodgit/spritepal/tile"
)

// Image renders the sheet to an NRGBA image with every tile drawn in its
// assigned bank. Pixels with index 0 are left fully transparent, following
// the sprite convention.
func (s *Sheet) Image() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, s.Width(), s.Height()))

	for i, info := range s.Tiles {
		bank := s.Banks[info.Bank&0x0f]
		ox := i % s.TilesPerRow * tile.Width
		oy := i / s.TilesPerRow * tile.Height
		for y := 0; y < tile.Height; y++ {
			for x := 0; x < tile.Width; x++ {
				p := s.PixelAt(ox+x, oy+y)
				if p == 0 {
					continue
				}
				c := bank[p]
				m.SetNRGBA(ox+x, oy+y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
			}
		}
	}

	return m
}

// PalettedImage renders the whole sheet through a single bank, ignoring
// per-tile assignments. It is the preview used when no attribute table is
// available, typically with palette.Grayscale.
func (s *Sheet) PalettedImage(bank palette.Bank) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, s.Width(), s.Height()), bank.Palette())
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			m.SetColorIndex(x, y, s.PixelAt(x, y)&0x0f)
		}
	}
	return m
}
