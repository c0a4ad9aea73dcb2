/*
Package oam parses SNES sprite attribute (OAM) tables.

The low table holds one 4-byte record per sprite: X, Y, tile index, then an
attribute byte with the palette selector in bits 0-2, priority in bits 3-4,
horizontal flip in bit 5, vertical flip in bit 6 and the tile table select
in bit 7. A full 544-byte dump appends a 32-byte high table carrying two
extra bits per sprite: the sprite size and the ninth X bit.

A sprite's palette selector is a 3-bit value that the hardware maps onto
CGRAM banks 8-15 by adding a fixed offset of 8. That offset is a property
of the hardware family; it is never inferred from the data and never
configurable.
*/
package oam

const (
	// EntrySize is the size in bytes of one low-table record.
	EntrySize = 4

	// Sprites is the number of sprites a full table describes.
	Sprites = 128

	// LowTableSize is the size in bytes of the low table.
	LowTableSize = Sprites * EntrySize

	// HighTableSize is the size in bytes of the high table.
	HighTableSize = Sprites / 4

	// TableSize is the size in bytes of a full OAM dump.
	TableSize = LowTableSize + HighTableSize

	// SpriteBankBase is the fixed offset added to a palette selector to
	// obtain the CGRAM bank.
	SpriteBankBase = 8

	// largeSpriteSpan is the tile-index stride between the two rows of a
	// large (16x16) sprite.
	largeSpriteSpan = 16
)

// Entry is one parsed sprite attribute record. Large and XMSB are only
// populated by ParseTable; ParseEntries sees no high table and leaves them
// false.
type Entry struct {
	X       uint8
	Y       uint8
	Tile    uint8
	Palette uint8 // selector, 0-7

	Priority uint8 // 0-3
	HFlip    bool
	VFlip    bool
	Table    bool // tile table select

	Large bool
	XMSB  bool
}

// Bank returns the CGRAM bank the entry's tiles are drawn with, always in
// [8, 15].
func (e Entry) Bank() int {
	return int(e.Palette) + SpriteBankBase
}

// Tiles returns the tile indices the sprite covers: just the base tile for
// a small sprite, or the 2x2 block (+0, +1, +16, +17, wrapping within the
// 8-bit tile namespace) for a large one.
func (e Entry) Tiles() []int {
	if !e.Large {
		return []int{int(e.Tile)}
	}
	t := int(e.Tile)
	return []int{
		t,
		(t + 1) & 0xff,
		(t + largeSpriteSpan) & 0xff,
		(t + largeSpriteSpan + 1) & 0xff,
	}
}

func parseEntry(b []byte) Entry {
	attr := b[3]
	return Entry{
		X:        b[0],
		Y:        b[1],
		Tile:     b[2],
		Palette:  attr & 0x07,
		Priority: attr >> 3 & 0x03,
		HFlip:    attr&0x20 != 0,
		VFlip:    attr&0x40 != 0,
		Table:    attr&0x80 != 0,
	}
}

// ParseEntries parses len(buf)/EntrySize records from buf. A trailing
// partial record is ignored. Records are returned exactly as stored, in
// table order, without deduplication: the same tile index may well appear
// with different selectors across entries, and deciding between them is
// the caller's problem.
func ParseEntries(buf []byte) []Entry {
	n := len(buf) / EntrySize
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = parseEntry(buf[i*EntrySize:])
	}
	return entries
}

// ParseTable parses a full OAM dump, low table plus high table. It accepts
// short dumps: the low table is cut off at the last whole record and
// sprites beyond the end of the high table get zero high bits. Within each
// high-table byte, sprite i%4 owns bit pair (i%4)*2 with the size flag in
// the low bit and the ninth X bit above it.
func ParseTable(buf []byte) []Entry {
	low := buf
	if len(low) > LowTableSize {
		low = low[:LowTableSize]
	}
	entries := ParseEntries(low)

	if len(buf) > LowTableSize {
		high := buf[LowTableSize:]
		for i := range entries {
			if i/4 >= len(high) {
				break
			}
			bits := high[i/4] >> uint(i%4*2)
			entries[i].Large = bits&0x01 != 0
			entries[i].XMSB = bits&0x02 != 0
		}
	}

	return entries
}
