package tile

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a tile index addresses bytes beyond
	// the end of the supplied buffer.
	ErrOutOfRange = errors.New("tile: offset out of range")

	// ErrValueOutOfRange is returned when encoding a tile containing a
	// pixel index greater than MaxIndex.
	ErrValueOutOfRange = errors.New("tile: pixel index out of range")

	// ErrTruncated is reported by a Region whose buffer ends before the
	// requested number of tiles. Tiles decoded before the short block are
	// valid; the missing ones are never zero-filled.
	ErrTruncated = errors.New("tile: region truncated")
)

// Decode reads the 32-byte block for the given tile index from buf and
// returns the decoded tile. It returns ErrOutOfRange if the block extends
// beyond the end of buf.
func Decode(buf []byte, index int) (Tile, error) {
	var t Tile

	if index < 0 {
		return t, fmt.Errorf("%w: tile %d", ErrOutOfRange, index)
	}

	offset := index * Size
	if offset+Size > len(buf) {
		return t, fmt.Errorf("%w: tile %d needs bytes [%d, %d), have %d", ErrOutOfRange, index, offset, offset+Size, len(buf))
	}

	for y := 0; y < Height; y++ {
		p0 := buf[offset+y*2]
		p1 := buf[offset+y*2+1]
		p2 := buf[offset+planePairOffset+y*2]
		p3 := buf[offset+planePairOffset+y*2+1]

		for x := 0; x < Width; x++ {
			bit := uint(7 - x)
			t[y*Width+x] = p0>>bit&1 |
				p1>>bit&1<<1 |
				p2>>bit&1<<2 |
				p3>>bit&1<<3
		}
	}

	return t, nil
}

// Encode packs t back into its 32-byte planar form, the exact inverse of
// Decode. It returns ErrValueOutOfRange if any pixel index exceeds
// MaxIndex.
func Encode(t Tile) ([]byte, error) {
	for i, p := range t {
		if p > MaxIndex {
			return nil, fmt.Errorf("%w: pixel (%d, %d) has index %d", ErrValueOutOfRange, i%Width, i/Width, p)
		}
	}

	b := make([]byte, Size)
	for y := 0; y < Height; y++ {
		var p0, p1, p2, p3 byte
		for x := 0; x < Width; x++ {
			p := t[y*Width+x]
			bit := byte(1) << uint(7-x)
			if p&1 != 0 {
				p0 |= bit
			}
			if p&2 != 0 {
				p1 |= bit
			}
			if p&4 != 0 {
				p2 |= bit
			}
			if p&8 != 0 {
				p3 |= bit
			}
		}
		b[y*2] = p0
		b[y*2+1] = p1
		b[planePairOffset+y*2] = p2
		b[planePairOffset+y*2+1] = p3
	}

	return b, nil
}

// Region decodes a run of consecutive tiles from a buffer, in ascending
// tile index order. It follows the bufio.Scanner idiom:
//
//	r := tile.NewRegion(buf, count)
//	for r.Next() {
//		t := r.Tile()
//		...
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
//
// If the buffer ends before count tiles, iteration stops at the last whole
// tile and Err reports ErrTruncated.
type Region struct {
	buf   []byte
	count int
	index int
	tile  Tile
	err   error
}

// NewRegion returns a Region decoding count tiles from the start of buf.
func NewRegion(buf []byte, count int) *Region {
	return &Region{buf: buf, count: count, index: -1}
}

// Next advances to the next tile. It returns false when count tiles have
// been decoded, the buffer ran out, or a decode error occurred.
func (r *Region) Next() bool {
	if r.err != nil || r.index+1 >= r.count {
		return false
	}

	next := r.index + 1
	if (next+1)*Size > len(r.buf) {
		r.err = fmt.Errorf("%w: decoded %d of %d tiles (%d bytes short)", ErrTruncated, next, r.count, (r.count)*Size-len(r.buf))
		return false
	}

	t, err := Decode(r.buf, next)
	if err != nil {
		r.err = err
		return false
	}

	r.index, r.tile = next, t
	return true
}

// Tile returns the most recently decoded tile.
func (r *Region) Tile() Tile {
	return r.tile
}

// Index returns the tile index of the most recently decoded tile.
func (r *Region) Index() int {
	return r.index
}

// Err returns the first error encountered during iteration, if any.
func (r *Region) Err() error {
	return r.err
}

// Truncated reports whether iteration stopped early on a short buffer.
func (r *Region) Truncated() bool {
	return errors.Is(r.err, ErrTruncated)
}

// Reset rewinds the Region so the same tiles can be decoded again.
func (r *Region) Reset() {
	r.index, r.err = -1, nil
}
