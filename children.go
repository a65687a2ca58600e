// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import "github.com/cockroachdb/errors"

// childRef is an internal, raw arena slot index used for parent/child
// links. Unlike NodeIdx, a childRef carries no generation: structural
// mutators keep every childRef in the arena consistent with the live tree
// shape the instant they touch it, so a childRef is never "resolved"
// against a possibly-stale generation the way an externally held NodeIdx
// is. noChild is the sentinel for an empty Dary slot.
type childRef = int

const noChild childRef = -1

// childrenContainer abstracts the storage of one node's children, per
// spec §4.2. Dyn compacts on removal; Dary[D] preserves slot identity
// (positional meaning is part of the data model for bounded-arity trees).
type childrenContainer interface {
	// count returns the number of occupied logical positions.
	count() int
	// capacity returns the fixed capacity, or -1 if unbounded (Dyn).
	capacity() int
	// get returns the child at logical position pos, if any.
	get(pos int) (slot childRef, ok bool)
	// pushBack inserts at the end (Dyn) or at the lowest empty position
	// (Dary), returning the logical position used.
	pushBack(slot childRef) (pos int, err error)
	// insertAt inserts slot at logical position pos, shifting subsequent
	// Dyn entries; Dary requires pos to already be empty.
	insertAt(pos int, slot childRef) error
	// replaceAt overwrites whatever already occupies logical position pos
	// with slot, without shifting any other entry. pos must already be
	// occupied (Dyn) or refer to a valid index (Dary).
	replaceAt(pos int, slot childRef) error
	// removeAt ejects the child at pos, returning its slot index. Dyn
	// compacts subsequent entries back; Dary leaves a hole.
	removeAt(pos int) (slot childRef, err error)
	// swap exchanges the children at logical positions i and j.
	swap(i, j int) error
	// canInsertAt reports whether insertAt(pos, ...) would succeed right
	// now: always true for Dyn (positions 0..count are always insertable);
	// for Dary, true iff pos is in range and currently empty.
	canInsertAt(pos int) bool
	// clear removes every child, returning the ejected slot indices in
	// logical position order (skipping holes).
	clear() []childRef
	// positions iterates occupied (logical position, slot index) pairs in
	// logical order, skipping holes.
	positions(yield func(pos int, slot childRef) bool)
}

// Shape selects a tree's children-storage policy at construction. Dyn and
// Dary[D] are the two concrete implementations.
type Shape interface {
	newChildren() childrenContainer
}

// Dyn is the unbounded-arity shape: children are stored in a growable,
// compacting list.
type Dyn struct{}

func (Dyn) newChildren() childrenContainer {
	return &dynChildren{}
}

type dynChildren struct {
	slots []childRef
}

func (d *dynChildren) count() int     { return len(d.slots) }
func (d *dynChildren) capacity() int  { return -1 }

func (d *dynChildren) get(pos int) (childRef, bool) {
	if pos < 0 || pos >= len(d.slots) {
		return noChild, false
	}
	return d.slots[pos], true
}

func (d *dynChildren) pushBack(slot childRef) (int, error) {
	d.slots = append(d.slots, slot)
	return len(d.slots) - 1, nil
}

func (d *dynChildren) insertAt(pos int, slot childRef) error {
	if pos < 0 || pos > len(d.slots) {
		return errors.Newf("arbor: insert position %d out of range", pos)
	}
	d.slots = append(d.slots, noChild)
	copy(d.slots[pos+1:], d.slots[pos:len(d.slots)-1])
	d.slots[pos] = slot
	return nil
}

func (d *dynChildren) replaceAt(pos int, slot childRef) error {
	if pos < 0 || pos >= len(d.slots) {
		return errors.Newf("arbor: replace position %d out of range", pos)
	}
	d.slots[pos] = slot
	return nil
}

func (d *dynChildren) removeAt(pos int) (childRef, error) {
	if pos < 0 || pos >= len(d.slots) {
		return noChild, errors.Newf("arbor: remove position %d out of range", pos)
	}
	out := d.slots[pos]
	copy(d.slots[pos:], d.slots[pos+1:])
	d.slots = d.slots[:len(d.slots)-1]
	return out, nil
}

func (d *dynChildren) swap(i, j int) error {
	if i < 0 || i >= len(d.slots) || j < 0 || j >= len(d.slots) {
		return errors.Newf("arbor: swap positions (%d,%d) out of range", i, j)
	}
	d.slots[i], d.slots[j] = d.slots[j], d.slots[i]
	return nil
}

func (d *dynChildren) canInsertAt(pos int) bool {
	return pos >= 0 && pos <= len(d.slots)
}

func (d *dynChildren) clear() []childRef {
	out := d.slots
	d.slots = nil
	return out
}

func (d *dynChildren) positions(yield func(pos int, slot childRef) bool) {
	for i, s := range d.slots {
		if !yield(i, s) {
			return
		}
	}
}

// Degree carries a bounded-arity tree's compile-time maximum degree D. Go
// generics have no const-integer type parameters, so D is instead supplied
// as a phantom type implementing this interface — the idiomatic Go
// stand-in for Rust's `const D: usize`.
type Degree interface {
	Degree() int
}

// Degree2 is the Degree implementation for binary trees.
type Degree2 struct{}

// Degree implements Degree.
func (Degree2) Degree() int { return 2 }

// Dary is the bounded-arity shape: up to D.Degree() children, stored in a
// fixed array that preserves empty slots on removal (positional meaning —
// left child vs right child — is part of the data model).
type Dary[D Degree] struct{}

func (Dary[D]) newChildren() childrenContainer {
	var d D
	n := d.Degree()
	slots := make([]childRef, n)
	for i := range slots {
		slots[i] = noChild
	}
	return &daryChildren{slots: slots}
}

// Binary is the distinguished D=2 bounded-arity shape called out in spec
// §1.
type Binary = Dary[Degree2]

type daryChildren struct {
	slots []childRef
	n     int // occupied count
}

func (d *daryChildren) count() int    { return d.n }
func (d *daryChildren) capacity() int { return len(d.slots) }

func (d *daryChildren) get(pos int) (childRef, bool) {
	if pos < 0 || pos >= len(d.slots) || d.slots[pos] == noChild {
		return noChild, false
	}
	return d.slots[pos], true
}

// pushBack fills the lowest empty index (spec §8's resolved assumption for
// Dary push_back semantics when holes exist in the middle).
func (d *daryChildren) pushBack(slot childRef) (int, error) {
	for i, s := range d.slots {
		if s == noChild {
			d.slots[i] = slot
			d.n++
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrCapacityExceeded, "arbor: dary container of capacity %d is full", len(d.slots))
}

func (d *daryChildren) insertAt(pos int, slot childRef) error {
	if pos < 0 || pos >= len(d.slots) {
		return errors.Wrapf(ErrCapacityExceeded, "arbor: insert position %d out of range for capacity %d", pos, len(d.slots))
	}
	if d.slots[pos] != noChild {
		return errors.Wrapf(ErrCapacityExceeded, "arbor: dary position %d already occupied", pos)
	}
	d.slots[pos] = slot
	d.n++
	return nil
}

func (d *daryChildren) replaceAt(pos int, slot childRef) error {
	if pos < 0 || pos >= len(d.slots) {
		return errors.Newf("arbor: replace position %d out of range", pos)
	}
	d.slots[pos] = slot
	return nil
}

func (d *daryChildren) removeAt(pos int) (childRef, error) {
	if pos < 0 || pos >= len(d.slots) || d.slots[pos] == noChild {
		return noChild, errors.Newf("arbor: remove position %d out of range or already empty", pos)
	}
	out := d.slots[pos]
	d.slots[pos] = noChild
	d.n--
	return out, nil
}

func (d *daryChildren) swap(i, j int) error {
	if i < 0 || i >= len(d.slots) || j < 0 || j >= len(d.slots) {
		return errors.Newf("arbor: swap positions (%d,%d) out of range", i, j)
	}
	d.slots[i], d.slots[j] = d.slots[j], d.slots[i]
	return nil
}

func (d *daryChildren) canInsertAt(pos int) bool {
	return pos >= 0 && pos < len(d.slots) && d.slots[pos] == noChild
}

func (d *daryChildren) clear() []childRef {
	out := make([]childRef, 0, d.n)
	for i, s := range d.slots {
		if s != noChild {
			out = append(out, s)
			d.slots[i] = noChild
		}
	}
	d.n = 0
	return out
}

func (d *daryChildren) positions(yield func(pos int, slot childRef) bool) {
	for i, s := range d.slots {
		if s == noChild {
			continue
		}
		if !yield(i, s) {
			return
		}
	}
}
