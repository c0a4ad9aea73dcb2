/*
Package spritepal is a library for extracting, recoloring and re-injecting
SNES sprite graphics from raw memory snapshots.

It works over three flat buffers captured at one instant from an emulator
or flash cart: tile memory (VRAM), color memory (CGRAM) and the sprite
attribute table (OAM). The tile and palette subpackages handle the bit
level formats, the oam subpackage resolves which of the sixteen color
banks each sprite draws with, and this package ties them together into
colored sprite sheets that can be edited, validated against hardware
constraints and written back into a copy of the original buffer without
disturbing a byte outside the edited region.

The three buffers must belong to the same logical snapshot. No in-band
signal exists to detect a mismatch, so nothing here tries; supplying
buffers from different moments simply resolves palettes that were never on
screen together.

All codec operations are pure transforms over caller-owned buffers, safe
to call concurrently on independent inputs.
*/
package spritepal

import "log"

// Editor ties a region database to a logger and provides the file-level
// convenience operations the codec packages deliberately avoid.
type Editor struct {
	db     *GameDB
	logger *log.Logger
}

// New opens the region database at dbFile and returns an Editor around it.
func New(dbFile string, logger *log.Logger) (*Editor, error) {
	db, err := NewGameDB(dbFile)
	if err != nil {
		return nil, err
	}
	return &Editor{
		db:     db,
		logger: logger,
	}, nil
}

// DB returns the Editor's region database.
func (e *Editor) DB() *GameDB {
	return e.db
}

// Close closes the underlying database.
func (e *Editor) Close() error {
	return e.db.Close()
}
