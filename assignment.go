package spritepal

import (
	"sort"

	"github.com/bodgit/spritepal/oam"
)

// Assignment maps tile indices to the CGRAM bank their sprites draw them
// with, as observed in one snapshot's attribute table. It is built in a
// single pass with a first-seen-wins policy: the first entry naming a tile
// fixes its bank, and any later entry naming the same tile with a
// different bank records the tile in the conflict set without overwriting
// the recorded bank. Ambiguity is always surfaced as data, never as an
// error and never as a silent guess.
//
// An Assignment is not safe for concurrent mutation; combine data from
// multiple snapshots with MergeAssignments instead of sharing one
// instance.
type Assignment struct {
	banks     map[int]int
	conflicts map[int]struct{}
}

// NewAssignment returns an empty Assignment.
func NewAssignment() *Assignment {
	return &Assignment{
		banks:     make(map[int]int),
		conflicts: make(map[int]struct{}),
	}
}

// BuildAssignment reduces a parsed attribute table to an Assignment.
// Entries are taken in table order; large sprites claim all four of their
// tiles.
func BuildAssignment(entries []oam.Entry) *Assignment {
	a := NewAssignment()
	for _, e := range entries {
		for _, t := range e.Tiles() {
			a.add(t, e.Bank())
		}
	}
	return a
}

func (a *Assignment) add(tile, bank int) {
	if prev, ok := a.banks[tile]; ok {
		if prev != bank {
			a.conflicts[tile] = struct{}{}
		}
		return
	}
	a.banks[tile] = bank
}

// Lookup returns the bank recorded for tile, or defaultBank if no entry
// named it. This is the only path by which an unmapped tile still renders;
// the default is always the caller's, never invented here.
func (a *Assignment) Lookup(tile, defaultBank int) int {
	if bank, ok := a.banks[tile]; ok {
		return bank
	}
	return defaultBank
}

// Mapped reports whether tile was named by any entry.
func (a *Assignment) Mapped(tile int) bool {
	_, ok := a.banks[tile]
	return ok
}

// Conflicted reports whether tile was named with more than one bank.
func (a *Assignment) Conflicted(tile int) bool {
	_, ok := a.conflicts[tile]
	return ok
}

// Conflicts returns the conflicted tile indices in ascending order.
func (a *Assignment) Conflicts() []int {
	tiles := make([]int, 0, len(a.conflicts))
	for t := range a.conflicts {
		tiles = append(tiles, t)
	}
	sort.Ints(tiles)
	return tiles
}

// Len returns the number of mapped tiles.
func (a *Assignment) Len() int {
	return len(a.banks)
}

// MergeAssignments combines maps gathered from two snapshots into a new
// Assignment, leaving both inputs untouched. The first-seen-wins policy
// applies across merge order, a taking precedence, and the result's
// conflict set is the union of both inputs' conflicts plus any tile the
// two maps disagree on.
func MergeAssignments(a, b *Assignment) *Assignment {
	m := NewAssignment()
	for t, bank := range a.banks {
		m.banks[t] = bank
	}
	for t := range a.conflicts {
		m.conflicts[t] = struct{}{}
	}
	for t := range b.conflicts {
		m.conflicts[t] = struct{}{}
	}
	for t, bank := range b.banks {
		m.add(t, bank)
	}
	return m
}
