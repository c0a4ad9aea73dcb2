package spritepal

import (
	"fmt"

	"github.com/bodgit/spritepal/palette"
	"github.com/bodgit/spritepal/tile"
)

// Extract decodes count tiles starting at byte offset in tileBuf, resolves
// each tile's CGRAM bank through the assignment (or defaultBank where the
// attribute table never named the tile) and lays the tiles out row-major,
// tilesPerRow across, into a new Sheet. cgram must hold all 16 banks.
//
// Tile indices within the sheet, including those looked up in the
// assignment, are relative to offset; extracting the sprite tile base
// therefore lines the sheet up with the attribute table's own tile
// numbering.
//
// The three buffers must come from the same logical snapshot. Nothing in
// the data makes a mismatch detectable, so this is a precondition, not
// something Extract verifies.
//
// Extract is a pure transform: identical inputs yield an identical Sheet
// and no state survives the call. A count of zero yields an empty sheet,
// even when offset sits exactly at the end of the buffer.
func Extract(tileBuf []byte, offset, count int, cgram []byte, a *Assignment, defaultBank, tilesPerRow int) (*Sheet, error) {
	if offset < 0 || count < 0 || offset+count*tile.Size > len(tileBuf) {
		return nil, fmt.Errorf("%w: tiles [%d, %d) need bytes [%d, %d), have %d", ErrOutOfRange, 0, count, offset, offset+count*tile.Size, len(tileBuf))
	}

	banks, err := palette.DecodeAll(cgram)
	if err != nil {
		return nil, err
	}

	if count > 0 && tilesPerRow < 1 {
		return nil, fmt.Errorf("%w: %d tiles per row", ErrOutOfRange, tilesPerRow)
	}
	if tilesPerRow < 1 {
		tilesPerRow = 1
	}

	if a == nil {
		a = NewAssignment()
	}

	rows := (count + tilesPerRow - 1) / tilesPerRow
	s := &Sheet{
		TilesPerRow: tilesPerRow,
		DefaultBank: defaultBank,
		Pixels:      make([]uint8, tilesPerRow*tile.Width*rows*tile.Height),
		Tiles:       make([]TileInfo, 0, count),
		Banks:       banks,
	}

	r := tile.NewRegion(tileBuf[offset:offset+count*tile.Size], count)
	for r.Next() {
		i := r.Index()
		s.Tiles = append(s.Tiles, TileInfo{
			Index:    i,
			Bank:     a.Lookup(i, defaultBank),
			Conflict: a.Conflicted(i),
		})
		s.SetTile(i, r.Tile())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return s, nil
}
