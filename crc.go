package spritepal

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// Checksum returns the CRC-32 of a tile memory snapshot as the upper-case
// hexadecimal string used to key the GameDB.
func Checksum(b []byte) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(b))
}

func crcFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}
