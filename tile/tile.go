/*
Package tile implements a decoder and encoder for SNES 4bpp planar tiles.

A tile is 8 by 8 pixels where each pixel is a 4-bit index into a 16 color
palette. On the wire a tile occupies 32 bytes split into four bit-planes
packed as two interleaved pairs; for row r the plane 0/1 byte pair sits at
offset r*2 and the plane 2/3 byte pair at offset 16+r*2. Within each byte
the most significant bit is the leftmost pixel.

Index 0 is conventionally transparent but nothing at the hardware level
enforces that; the package treats it like any other index.
*/
package tile

const (
	// Width and Height are the fixed pixel dimensions of a tile.
	Width  = 8
	Height = Width

	// Pixels is the number of pixels in a tile.
	Pixels = Width * Height

	// Size is the number of bytes one tile occupies in tile memory.
	Size = 32

	// MaxIndex is the largest palette index a pixel can hold.
	MaxIndex = 15

	planePairOffset = Size >> 1
)

// Tile is a decoded tile; a row-major matrix of palette indices, each in
// the range [0, MaxIndex]. The zero value is a fully transparent tile.
type Tile [Pixels]uint8

// At returns the palette index of the pixel at (x, y).
func (t Tile) At(x, y int) uint8 {
	return t[y*Width+x]
}

// Set stores the palette index of the pixel at (x, y).
func (t *Tile) Set(x, y int, index uint8) {
	t[y*Width+x] = index
}
