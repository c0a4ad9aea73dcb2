package tile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	buf := make([]byte, Size)

	// Row 3, pixel x=2: bit 5 in plane 0 (offset 3*2) and plane 3
	// (offset 16+3*2+1) gives index 0b1001.
	buf[6] = 0x20
	buf[23] = 0x20

	// Row 0: every pixel gets plane 1 set.
	buf[1] = 0xff

	tl, err := Decode(buf, 0)
	require.NoError(t, err)

	assert.Equal(t, uint8(9), tl.At(2, 3))
	assert.Equal(t, uint8(0), tl.At(3, 3))
	for x := 0; x < Width; x++ {
		assert.Equal(t, uint8(2), tl.At(x, 0))
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	buf := make([]byte, 2*Size)

	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"first", 0, true},
		{"last", 1, true},
		{"past end", 2, false},
		{"negative", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(buf, tt.index)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrOutOfRange))
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var tl Tile
	for i := range tl {
		tl[i] = uint8(i*7) & 0x0f
	}

	b, err := Encode(tl)
	require.NoError(t, err)
	require.Len(t, b, Size)

	got, err := Decode(b, 0)
	require.NoError(t, err)
	assert.Equal(t, tl, got)
}

func TestEncodeValueOutOfRange(t *testing.T) {
	var tl Tile
	tl[17] = 16

	_, err := Encode(tl)
	assert.True(t, errors.Is(err, ErrValueOutOfRange))
}

func TestRegion(t *testing.T) {
	buf := make([]byte, 4*Size)
	for i := 0; i < 4; i++ {
		// Give each tile a distinct top-left pixel.
		buf[i*Size] = 0x80
		buf[i*Size+16] = byte(i) << 5 & 0x80
	}

	r := NewRegion(buf, 4)
	var indices []int
	for r.Next() {
		indices = append(indices, r.Index())
		assert.NotZero(t, r.Tile().At(0, 0))
	}
	require.NoError(t, r.Err())
	assert.Equal(t, []int{0, 1, 2, 3}, indices)

	// Restartable.
	r.Reset()
	n := 0
	for r.Next() {
		n++
	}
	require.NoError(t, r.Err())
	assert.Equal(t, 4, n)
}

func TestRegionTruncated(t *testing.T) {
	buf := make([]byte, Size+8)

	r := NewRegion(buf, 2)
	n := 0
	for r.Next() {
		n++
	}

	assert.Equal(t, 1, n)
	assert.True(t, r.Truncated())
	assert.True(t, errors.Is(r.Err(), ErrTruncated))
}

func TestRegionEmpty(t *testing.T) {
	r := NewRegion(nil, 0)
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
	assert.False(t, r.Truncated())
}
