package spritepal

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImagePaletted(t *testing.T) {
	p := color.Palette{
		color.RGBA{A: 0xff},
		color.RGBA{R: 248, A: 0xff},
		color.RGBA{G: 248, A: 0xff},
	}
	m := image.NewPaletted(image.Rect(0, 0, 16, 8), p)
	m.SetColorIndex(0, 0, 1)
	m.SetColorIndex(8, 0, 2)

	s, err := FromImage(m, 8)
	require.NoError(t, err)

	assert.Equal(t, 2, s.TileCount())
	assert.Equal(t, 2, s.TilesPerRow)
	assert.Equal(t, uint8(1), s.PixelAt(0, 0))
	assert.Equal(t, uint8(2), s.PixelAt(8, 0))

	// Indices are preserved untouched, tiles all carry the default bank
	// and that bank holds the image palette.
	assert.Equal(t, TileInfo{Index: 0, Bank: 8}, s.Tiles[0])
	assert.Equal(t, color.RGBA{R: 248, A: 0xff}, s.Banks[8][1])
}

func TestFromImageQuantized(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 32), G: uint8(y * 32), A: 0xff})
		}
	}

	s, err := FromImage(m, 0)
	require.NoError(t, err)
	require.Equal(t, 1, s.TileCount())

	for _, p := range s.Pixels {
		assert.LessOrEqual(t, p, uint8(15))
	}
}

func TestFromImageBadSize(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 9, 8))
	_, err := FromImage(m, 0)
	assert.Error(t, err)
}

func TestFromImageBadBank(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	_, err := FromImage(m, 16)
	assert.Error(t, err)
}

func TestFromImageRoundTrip(t *testing.T) {
	// A sheet rendered through a single bank and imported back keeps its
	// indices.
	s := testSheet(t, 2, 2)
	s.SetPixel(3, 4, 5)

	m := s.PalettedImage(s.Banks[8])
	got, err := FromImage(m, 8)
	require.NoError(t, err)

	assert.Equal(t, s.Pixels, got.Pixels)
}
