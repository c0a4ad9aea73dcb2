package spritepal

import (
	"fmt"

	"github.com/bodgit/spritepal/tile"
)

// Severity classifies a validation issue. Warnings are advisory and never
// block injection; any Error does.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue codes.
const (
	CodeAlignment    = "alignment"
	CodeColorCount   = "color-count"
	CodeNewColor     = "new-color"
	CodeTransparency = "transparency"
)

// Issue is one finding against a tile or the sheet as a whole.
type Issue struct {
	Severity Severity
	Code     string
	Message  string
}

// Report collects the issues found validating an edited sheet. Sheet-level
// findings (misalignment) are kept apart from per-tile ones.
type Report struct {
	Sheet []Issue
	Tiles map[int][]Issue
}

func newReport() *Report {
	return &Report{Tiles: make(map[int][]Issue)}
}

func (r *Report) addSheet(sev Severity, code, format string, args ...interface{}) {
	r.Sheet = append(r.Sheet, Issue{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addTile(i int, sev Severity, code, format string, args ...interface{}) {
	r.Tiles[i] = append(r.Tiles[i], Issue{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any issue has Error severity.
func (r *Report) HasErrors() bool {
	return r.errorCount() > 0
}

func (r *Report) errorCount() (n int) {
	for _, i := range r.Sheet {
		if i.Severity == Error {
			n++
		}
	}
	for _, issues := range r.Tiles {
		for _, i := range issues {
			if i.Severity == Error {
				n++
			}
		}
	}
	return
}

// State is the validator's lifecycle state.
type State int

const (
	Unchecked State = iota
	Validating
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unchecked"
}

// Options control validation.
type Options struct {
	// StrictPalette additionally forbids introducing any palette index a
	// tile did not already use before editing, modeling the fixed
	// hardware palette. It is off unless the caller turns it on, since
	// deliberate recoloring is a legitimate edit.
	StrictPalette bool
}

// Validator checks an edited sheet against hardware constraints before it
// may be injected back into tile memory. It is constructed over the
// pre-edit sheet, whose bank assignments are frozen for the lifetime of
// the edit; every tile is judged against its currently assigned bank.
type Validator struct {
	baseline *Sheet
	opts     Options
	state    State
}

// NewValidator returns a Validator holding a private copy of the pre-edit
// sheet.
func NewValidator(baseline *Sheet, opts Options) *Validator {
	return &Validator{baseline: baseline.Clone(), opts: opts}
}

// State returns the lifecycle state: Unchecked until the first Validate,
// then Valid or Invalid according to the latest report.
func (v *Validator) State() State {
	return v.state
}

// Validate checks edited and returns the report. The edited sheet must
// keep the baseline's tile grid; pixel content is what editing changes.
func (v *Validator) Validate(edited *Sheet) *Report {
	v.state = Validating
	r := newReport()

	if edited.TilesPerRow != v.baseline.TilesPerRow || edited.TileCount() != v.baseline.TileCount() {
		r.addSheet(Error, CodeAlignment, "edited sheet is %dx%d tiles, baseline is %dx%d",
			edited.TilesPerRow, edited.TileCount(), v.baseline.TilesPerRow, v.baseline.TileCount())
	} else if len(edited.Pixels) != edited.Width()*edited.Height() {
		r.addSheet(Error, CodeAlignment, "edited region is not 8x8 tile aligned: %d pixels, want %d",
			len(edited.Pixels), edited.Width()*edited.Height())
	} else {
		for i := range edited.Tiles {
			v.validateTile(r, edited, i)
		}
	}

	if r.HasErrors() {
		v.state = Invalid
	} else {
		v.state = Valid
	}

	return r
}

func (v *Validator) validateTile(r *Report, edited *Sheet, i int) {
	t := edited.TileAt(i)

	var used [256]bool
	for _, p := range t {
		used[p] = true
		if p > tile.MaxIndex {
			r.addTile(i, Error, CodeColorCount, "pixel index %d exceeds %d", p, tile.MaxIndex)
			return
		}
	}

	if v.opts.StrictPalette {
		base := v.baseline.TileAt(i)
		var had [tile.MaxIndex + 1]bool
		for _, p := range base {
			had[p&0x0f] = true
		}
		// Index 0 is transparency, not a palette color, so introducing
		// it is never a strict violation.
		for p, u := range used[1 : tile.MaxIndex+1] {
			if u && !had[p+1] {
				r.addTile(i, Error, CodeNewColor, "index %d not used by tile before editing", p+1)
			}
		}
	}

	v.checkTransparency(r, t, i)
}

// checkTransparency flags index 0 pixels whose four neighbours are all
// opaque. Such a pixel punches a hole in an apparently solid region, which
// is usually an editing slip rather than intent, so it only ever warns.
func (v *Validator) checkTransparency(r *Report, t tile.Tile, i int) {
	for y := 1; y < tile.Height-1; y++ {
		for x := 1; x < tile.Width-1; x++ {
			if t.At(x, y) != 0 {
				continue
			}
			if t.At(x-1, y) != 0 && t.At(x+1, y) != 0 && t.At(x, y-1) != 0 && t.At(x, y+1) != 0 {
				r.addTile(i, Warning, CodeTransparency, "transparent pixel (%d, %d) inside an opaque region", x, y)
				return
			}
		}
	}
}
