package spritepal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bodgit/spritepal/palette"
	"github.com/bodgit/spritepal/tile"
)

var errBadMetadata = errors.New("spritepal: invalid sheet metadata")

// TileInfo is the per-tile metadata attached to a sheet. Index is the
// tile's position within the extracted region, Bank the CGRAM bank it
// resolved to and Conflict whether the attribute table named it with more
// than one bank.
type TileInfo struct {
	Index    int  `json:"index"`
	Bank     int  `json:"bank"`
	Conflict bool `json:"conflict"`
}

// Sheet is a tile-aligned indexed sprite sheet: a grid of 4-bit palette
// indices laid out row-major, tiles per-row across then down, plus
// per-tile metadata and the decoded CGRAM banks used to color it. A Sheet
// is an owned copy sharing no state with the buffers it was extracted
// from, or with any other Sheet.
type Sheet struct {
	TilesPerRow int
	DefaultBank int
	Pixels      []uint8
	Tiles       []TileInfo
	Banks       [palette.Banks]palette.Bank
}

// Metadata is the wire form of a sheet's tile metadata, exchanged with
// external pixel editors. It must round-trip exactly for an edited sheet
// to remain re-injectable.
type Metadata struct {
	TileSize    int        `json:"tile_size"`
	Tiles       []TileInfo `json:"tiles"`
	DefaultBank int        `json:"default_bank"`
}

// TileCount returns the number of tiles in the sheet.
func (s *Sheet) TileCount() int {
	return len(s.Tiles)
}

// Width returns the sheet width in pixels.
func (s *Sheet) Width() int {
	return s.TilesPerRow * tile.Width
}

// Height returns the sheet height in pixels, always a whole number of tile
// rows; trailing slots past the last tile hold index 0.
func (s *Sheet) Height() int {
	if s.TilesPerRow == 0 {
		return 0
	}
	rows := (len(s.Tiles) + s.TilesPerRow - 1) / s.TilesPerRow
	return rows * tile.Height
}

// PixelAt returns the palette index at sheet coordinates (x, y).
func (s *Sheet) PixelAt(x, y int) uint8 {
	return s.Pixels[y*s.Width()+x]
}

// SetPixel stores the palette index at sheet coordinates (x, y).
func (s *Sheet) SetPixel(x, y int, index uint8) {
	s.Pixels[y*s.Width()+x] = index
}

// TileAt copies tile i out of the sheet grid.
func (s *Sheet) TileAt(i int) tile.Tile {
	var t tile.Tile
	ox := i % s.TilesPerRow * tile.Width
	oy := i / s.TilesPerRow * tile.Height
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			t.Set(x, y, s.PixelAt(ox+x, oy+y))
		}
	}
	return t
}

// SetTile copies t into tile slot i of the sheet grid.
func (s *Sheet) SetTile(i int, t tile.Tile) {
	ox := i % s.TilesPerRow * tile.Width
	oy := i / s.TilesPerRow * tile.Height
	for y := 0; y < tile.Height; y++ {
		for x := 0; x < tile.Width; x++ {
			s.SetPixel(ox+x, oy+y, t.At(x, y))
		}
	}
}

// Bank returns the CGRAM bank tile i resolved to.
func (s *Sheet) Bank(i int) palette.Bank {
	return s.Banks[s.Tiles[i].Bank&0x0f]
}

// Clone returns a deep copy of the sheet.
func (s *Sheet) Clone() *Sheet {
	dup := *s
	dup.Pixels = append([]uint8(nil), s.Pixels...)
	dup.Tiles = append([]TileInfo(nil), s.Tiles...)
	return &dup
}

// Metadata returns the sheet's wire metadata.
func (s *Sheet) Metadata() *Metadata {
	return &Metadata{
		TileSize:    tile.Width,
		Tiles:       append([]TileInfo(nil), s.Tiles...),
		DefaultBank: s.DefaultBank,
	}
}

// ApplyMetadata restores per-tile metadata previously produced by
// Metadata, typically after a round trip through an external editor. The
// tile count must match the sheet and the tile size must be 8.
func (s *Sheet) ApplyMetadata(m *Metadata) error {
	if m.TileSize != tile.Width {
		return fmt.Errorf("%w: tile_size %d, want %d", errBadMetadata, m.TileSize, tile.Width)
	}
	if len(m.Tiles) != len(s.Tiles) {
		return fmt.Errorf("%w: %d tiles, sheet has %d", errBadMetadata, len(m.Tiles), len(s.Tiles))
	}
	s.Tiles = append([]TileInfo(nil), m.Tiles...)
	s.DefaultBank = m.DefaultBank
	return nil
}

// MarshalJSON implements json.Marshaler for the wire metadata contract.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	a := alias(*m)
	if a.Tiles == nil {
		a.Tiles = []TileInfo{}
	}
	return json.Marshal(&a)
}
