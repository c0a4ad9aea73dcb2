/*
Package palette implements a decoder and encoder for SNES CGRAM color
banks.

CGRAM holds 16 banks of 16 colors. Each color is a little-endian 16-bit
BGR555 word: bits 0-4 red, 5-9 green, 10-14 blue, bit 15 unused. Banks 0-7
are background banks and banks 8-15 sprite banks; that split is fixed by
the hardware and constant across inputs.

Channel conversion between 5-bit and 8-bit is exactly *8 one way and /8 the
other, matching the reference hardware rather than scaling by 255/31. A
bank surviving a decode is therefore always 5-bit aligned and encodes back
losslessly; encoding arbitrary 8-bit colors truncates the low three bits.
*/
package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
)

const (
	// Colors is the number of colors in one bank.
	Colors = 16

	// Banks is the number of banks held in CGRAM.
	Banks = 16

	// Size is the number of bytes one bank occupies.
	Size = Colors * 2

	// MemSize is the total size in bytes of a full CGRAM dump.
	MemSize = Banks * Size

	// SpriteBankBase is the id of the first sprite bank; banks below it
	// are background banks.
	SpriteBankBase = 8
)

// ErrOutOfRange is returned for a bank id outside [0, Banks) or a buffer
// too short to hold the addressed bank.
var ErrOutOfRange = errors.New("palette: out of range")

// Bank is one decoded bank of 16 RGB888 colors. Alpha is always 0xff;
// transparency is a property of pixel index 0, not of the color stored
// there.
type Bank [Colors]color.RGBA

// Palette returns the bank as a color.Palette for use with image.Paletted.
func (b Bank) Palette() color.Palette {
	p := make(color.Palette, Colors)
	for i, c := range b {
		p[i] = c
	}
	return p
}

// DecodeBank reads the 32-byte bank with the given id from a CGRAM buffer.
// It returns ErrOutOfRange if id is not in [0, Banks) or the buffer is too
// short.
func DecodeBank(buf []byte, id int) (Bank, error) {
	var bank Bank

	if id < 0 || id >= Banks {
		return bank, fmt.Errorf("%w: bank %d", ErrOutOfRange, id)
	}

	offset := id * Size
	if offset+Size > len(buf) {
		return bank, fmt.Errorf("%w: bank %d needs bytes [%d, %d), have %d", ErrOutOfRange, id, offset, offset+Size, len(buf))
	}

	for i := 0; i < Colors; i++ {
		w := binary.LittleEndian.Uint16(buf[offset+i*2:])
		bank[i] = color.RGBA{
			R: uint8(w&0x1f) * 8,
			G: uint8(w>>5&0x1f) * 8,
			B: uint8(w>>10&0x1f) * 8,
			A: 0xff,
		}
	}

	return bank, nil
}

// DecodeAll decodes all 16 banks from a CGRAM buffer.
func DecodeAll(buf []byte) ([Banks]Bank, error) {
	var banks [Banks]Bank
	for id := range banks {
		b, err := DecodeBank(buf, id)
		if err != nil {
			return banks, err
		}
		banks[id] = b
	}
	return banks, nil
}

// EncodeBank packs a bank back into its 32-byte BGR555 form. Channels are
// truncated to 5 bits by dividing by 8; a bank produced by DecodeBank
// round-trips exactly.
func EncodeBank(bank Bank) []byte {
	b := make([]byte, Size)
	for i, c := range bank {
		w := uint16(c.R/8) | uint16(c.G/8)<<5 | uint16(c.B/8)<<10
		binary.LittleEndian.PutUint16(b[i*2:], w)
	}
	return b
}

// Grayscale returns a 16-step grayscale bank, used as a preview fallback
// when no CGRAM snapshot is available.
func Grayscale() Bank {
	var bank Bank
	for i := range bank {
		v := uint8(i * 255 / (Colors - 1))
		bank[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return bank
}
