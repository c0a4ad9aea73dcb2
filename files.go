package spritepal

import (
	"io/ioutil"

	"github.com/bodgit/spritepal/oam"
)

// Snapshot holds the three memory buffers captured at one instant. Loading
// them is file plumbing, not codec work, which is why it lives on the
// Editor rather than in the codec packages.
type Snapshot struct {
	Tiles      []byte // VRAM
	Colors     []byte // CGRAM
	Attributes []byte // OAM, may be nil when no attribute dump exists
}

// LoadSnapshot reads the three dump files making up a snapshot. oamFile
// may be empty, in which case every tile falls back to the region's
// default bank.
func LoadSnapshot(vramFile, cgramFile, oamFile string) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)

	if s.Tiles, err = ioutil.ReadFile(vramFile); err != nil {
		return nil, err
	}
	if s.Colors, err = ioutil.ReadFile(cgramFile); err != nil {
		return nil, err
	}
	if oamFile != "" {
		if s.Attributes, err = ioutil.ReadFile(oamFile); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

// Assignment builds the tile to bank assignment from the snapshot's
// attribute table, empty when the snapshot has none.
func (s *Snapshot) Assignment() *Assignment {
	if s.Attributes == nil {
		return NewAssignment()
	}
	return BuildAssignment(oam.ParseTable(s.Attributes))
}

// ExtractRegion extracts one sprite region from a snapshot.
func (e *Editor) ExtractRegion(s *Snapshot, r Region) (*Sheet, error) {
	return Extract(s.Tiles, r.Offset, r.Count, s.Colors, s.Assignment(), r.DefaultBank, r.TilesPerRow)
}

// InjectRegion validates an edited sheet against the region's pre-edit
// state and, if clean, returns a copy of the snapshot's tile memory with
// the region re-encoded. The snapshot itself is not modified.
func (e *Editor) InjectRegion(s *Snapshot, edited *Sheet, r Region, opts Options) ([]byte, *Report, error) {
	baseline, err := e.ExtractRegion(s, r)
	if err != nil {
		return nil, nil, err
	}

	report := NewValidator(baseline, opts).Validate(edited)
	buf, err := Inject(edited, report, s.Tiles, r.Offset, r.Count)
	if err != nil {
		return nil, report, err
	}

	return buf, report, nil
}
