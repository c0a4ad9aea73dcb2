package spritepal

import (
	"fmt"

	"github.com/bodgit/spritepal/tile"
)

// Inject re-encodes count tiles of the edited sheet into a copy of the
// original tile memory, overwriting the 32-byte block at offset + i*32 for
// each tile i. The original buffer is never touched and every byte outside
// [offset, offset+count*32) is identical in the returned copy, so
// injecting the same sheet twice yields the same bytes as injecting once.
// Writing the result somewhere durable is the caller's business.
//
// report must be the outcome of validating the edited sheet; a nil report
// or one carrying Error-severity issues refuses with ErrValidationFailed.
// Warnings never block.
func Inject(edited *Sheet, report *Report, original []byte, offset, count int) ([]byte, error) {
	if report == nil || report.HasErrors() {
		return nil, &ValidationError{Report: report}
	}

	if offset < 0 || count < 0 || offset+count*tile.Size > len(original) {
		return nil, fmt.Errorf("%w: tiles [%d, %d) need bytes [%d, %d), have %d", ErrOutOfRange, 0, count, offset, offset+count*tile.Size, len(original))
	}
	if count > edited.TileCount() {
		return nil, fmt.Errorf("%w: %d tiles requested, sheet has %d", ErrOutOfRange, count, edited.TileCount())
	}

	buf := append([]byte(nil), original...)
	for i := 0; i < count; i++ {
		b, err := tile.Encode(edited.TileAt(i))
		if err != nil {
			return nil, err
		}
		copy(buf[offset+i*tile.Size:], b)
	}

	return buf, nil
}
