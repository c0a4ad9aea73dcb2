package spritepal

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/spritepal/oam"
	"github.com/bodgit/spritepal/tile"
)

func testEditor(t *testing.T) (*Editor, string) {
	t.Helper()

	dir, err := ioutil.TempDir("", "spritepal")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	e, err := New(filepath.Join(dir, "spritepal.db"), log.New(ioutil.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	return e, dir
}

func writeSnapshot(t *testing.T, dir string) (string, string, string) {
	t.Helper()

	vram := make([]byte, 16*tile.Size)
	for i := 0; i < 16; i++ {
		fillTile(vram, i, 1)
	}

	oamBuf := make([]byte, oam.TableSize)
	oamBuf[2] = 0    // sprite 0 uses tile 0
	oamBuf[3] = 0x01 // palette 1
	// Park the unused sprites on a tile outside the region.
	for i := 1; i < oam.Sprites; i++ {
		oamBuf[i*oam.EntrySize+2] = 0xff
	}

	vramFile := filepath.Join(dir, "test.vram")
	cgramFile := filepath.Join(dir, "test.cgram")
	oamFile := filepath.Join(dir, "test.oam")

	require.NoError(t, ioutil.WriteFile(vramFile, vram, 0644))
	require.NoError(t, ioutil.WriteFile(cgramFile, testCGRAM(), 0644))
	require.NoError(t, ioutil.WriteFile(oamFile, oamBuf, 0644))

	return vramFile, cgramFile, oamFile
}

func TestEditorExtractRegion(t *testing.T) {
	e, dir := testEditor(t)
	vramFile, cgramFile, oamFile := writeSnapshot(t, dir)

	s, err := LoadSnapshot(vramFile, cgramFile, oamFile)
	require.NoError(t, err)

	sheet, err := e.ExtractRegion(s, Region{Offset: 0, Count: 16, DefaultBank: 8, TilesPerRow: 4})
	require.NoError(t, err)

	require.Equal(t, 16, sheet.TileCount())
	assert.Equal(t, 9, sheet.Tiles[0].Bank) // selector 1 + 8
	assert.Equal(t, 8, sheet.Tiles[1].Bank) // default
}

func TestEditorInjectRegion(t *testing.T) {
	e, dir := testEditor(t)
	vramFile, cgramFile, oamFile := writeSnapshot(t, dir)

	s, err := LoadSnapshot(vramFile, cgramFile, oamFile)
	require.NoError(t, err)

	r := Region{Offset: 0, Count: 16, DefaultBank: 8, TilesPerRow: 4}
	sheet, err := e.ExtractRegion(s, r)
	require.NoError(t, err)

	edited := sheet.Clone()
	edited.SetPixel(0, 0, 3)

	buf, report, err := e.InjectRegion(s, edited, r, Options{})
	require.NoError(t, err)
	assert.False(t, report.HasErrors())

	got, err := tile.Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), got.At(0, 0))
}

func TestEditorInjectRegionStrict(t *testing.T) {
	e, dir := testEditor(t)
	vramFile, cgramFile, oamFile := writeSnapshot(t, dir)

	s, err := LoadSnapshot(vramFile, cgramFile, oamFile)
	require.NoError(t, err)

	r := Region{Offset: 0, Count: 16, DefaultBank: 8, TilesPerRow: 4}
	sheet, err := e.ExtractRegion(s, r)
	require.NoError(t, err)

	edited := sheet.Clone()
	edited.SetPixel(0, 0, 3)

	_, report, err := e.InjectRegion(s, edited, r, Options{StrictPalette: true})
	assert.Error(t, err)
	assert.True(t, report.HasErrors())
}

func TestLoadSnapshotNoOAM(t *testing.T) {
	_, dir := testEditor(t)
	vramFile, cgramFile, _ := writeSnapshot(t, dir)

	s, err := LoadSnapshot(vramFile, cgramFile, "")
	require.NoError(t, err)
	assert.Nil(t, s.Attributes)
	assert.Zero(t, s.Assignment().Len())
}
