package spritepal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/spritepal/tile"
)

func TestInject(t *testing.T) {
	vram := make([]byte, 8*tile.Size)
	for i := range vram {
		vram[i] = 0xa5 // recognizable background
	}
	for i := 2; i < 6; i++ {
		fillTile(vram, i, 1)
	}
	original := append([]byte(nil), vram...)

	offset := 2 * tile.Size
	base, err := Extract(vram, offset, 4, testCGRAM(), nil, 8, 4)
	require.NoError(t, err)

	edited := base.Clone()
	edited.SetPixel(0, 0, 2)

	report := NewValidator(base, Options{}).Validate(edited)
	require.False(t, report.HasErrors())

	buf, err := Inject(edited, report, vram, offset, 4)
	require.NoError(t, err)

	// The original buffer is untouched.
	assert.Equal(t, original, vram)

	// Bytes outside the injected window are identical.
	assert.Equal(t, vram[:offset], buf[:offset])
	assert.Equal(t, vram[offset+4*tile.Size:], buf[offset+4*tile.Size:])

	// The edit landed: tile 2 of the buffer decodes with the new pixel.
	got, err := tile.Decode(buf, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), got.At(0, 0))
	assert.Equal(t, uint8(1), got.At(1, 0))
}

func TestInjectIdempotent(t *testing.T) {
	vram := make([]byte, 4*tile.Size)
	fillTile(vram, 1, 5)

	base, err := Extract(vram, 0, 4, testCGRAM(), nil, 8, 4)
	require.NoError(t, err)

	edited := base.Clone()
	edited.SetPixel(9, 1, 7)
	report := NewValidator(base, Options{}).Validate(edited)

	once, err := Inject(edited, report, vram, 0, 4)
	require.NoError(t, err)
	twice, err := Inject(edited, report, once, 0, 4)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestInjectRoundTrip(t *testing.T) {
	// Unedited sheets re-encode to the exact original bytes.
	vram := make([]byte, 4*tile.Size)
	for i := range vram {
		vram[i] = byte(i * 13)
	}

	base, err := Extract(vram, 0, 4, testCGRAM(), nil, 8, 4)
	require.NoError(t, err)

	report := NewValidator(base, Options{}).Validate(base)
	buf, err := Inject(base, report, vram, 0, 4)
	require.NoError(t, err)

	assert.Equal(t, vram, buf)
}

func TestInjectValidationFailed(t *testing.T) {
	vram := make([]byte, tile.Size)
	fillTile(vram, 0, 1)
	original := append([]byte(nil), vram...)

	base, err := Extract(vram, 0, 1, testCGRAM(), nil, 8, 1)
	require.NoError(t, err)

	// Introduce a color the tile never used, with the strict check on.
	edited := base.Clone()
	edited.SetPixel(0, 0, 9)
	report := NewValidator(base, Options{StrictPalette: true}).Validate(edited)
	require.True(t, report.HasErrors())

	_, err = Inject(edited, report, vram, 0, 1)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Same(t, report, verr.Report)

	// Refusal leaves the original alone.
	assert.Equal(t, original, vram)
}

func TestInjectNoReport(t *testing.T) {
	vram := make([]byte, tile.Size)
	base, err := Extract(vram, 0, 1, testCGRAM(), nil, 8, 1)
	require.NoError(t, err)

	_, err = Inject(base, nil, vram, 0, 1)
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestInjectOutOfRange(t *testing.T) {
	vram := make([]byte, 2*tile.Size)
	base, err := Extract(vram, 0, 2, testCGRAM(), nil, 8, 2)
	require.NoError(t, err)
	report := NewValidator(base, Options{}).Validate(base)

	_, err = Inject(base, report, vram, tile.Size, 2)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = Inject(base, report, vram, 0, 3)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}
