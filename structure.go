// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

// Internal helpers shared by the node views and the structural mutators.
// Everything here operates on raw childRef slot indices rather than
// externally validated NodeIdx values: by the time code in this file runs,
// the caller has already resolved whatever NodeIdx it started from.

// mustGet returns the occupied slot at ref, panicking with an
// InvariantError if it is not occupied: an internal childRef is only ever
// produced by following a live parent/children link, so a miss here means
// the tree's own bookkeeping is corrupted.
func (t *Tree[T, S]) mustGet(ref childRef) *nodeSlot[T] {
	value, _, occupied, err := t.arena.Get(ref)
	if err != nil || !occupied {
		invariantViolation("mustGet: slot %d is not a live node: %v", ref, err)
	}
	return value
}

// freeSlot frees ref, treating any error (double free, out of bounds) as an
// internal bookkeeping bug rather than a reportable caller error.
func (t *Tree[T, S]) freeSlot(ref childRef) {
	if err := t.arena.Free(ref); err != nil {
		invariantViolation("freeSlot: %v", err)
	}
	t.checkLazyGrowth()
}

// detachFromParent removes ref from its parent's children container (or
// clears the tree's root pointer if ref is the root), leaving ref's own
// slot otherwise untouched. It does not free ref. Returns the parent slot
// (or noChild if ref was the root).
func (t *Tree[T, S]) detachFromParent(ref childRef) childRef {
	n := t.mustGet(ref)
	parent := n.parent
	if parent == noChild {
		t.root = noChild
		return noChild
	}
	p := t.mustGet(parent)
	if _, err := p.children.removeAt(n.backPos); err != nil {
		invariantViolation("detachFromParent: removeAt(%d) on parent %d: %v", n.backPos, parent, err)
	}
	// Dyn containers compact on removal, shifting every later sibling down
	// by one; Dary containers never move anything. Reassigning every
	// remaining child's back-position from the container's own iteration
	// order is correct either way, and a no-op where nothing moved.
	p.children.positions(func(pos int, slot childRef) bool {
		t.mustGet(slot).backPos = pos
		return true
	})
	return parent
}

// attachAsChild appends ref as a child of parent (PushChild semantics: at
// the end for Dyn, lowest empty index for Dary), wiring ref's parent
// pointer and back-position. Returns CapacityExceeded if parent's children
// container is full.
func (t *Tree[T, S]) attachAsChild(parent, ref childRef) error {
	p := t.mustGet(parent)
	pos, err := p.children.pushBack(ref)
	if err != nil {
		return err
	}
	n := t.mustGet(ref)
	n.parent = parent
	n.backPos = pos
	return nil
}

// attachAt inserts ref as a child of parent at logical position pos,
// wiring ref's parent pointer and back-position, and fixing up the
// back-position of any Dyn sibling shifted by the insert.
func (t *Tree[T, S]) attachAt(parent childRef, pos int, ref childRef) error {
	p := t.mustGet(parent)
	if err := p.children.insertAt(pos, ref); err != nil {
		return err
	}
	t.mustGet(ref).parent = parent
	p.children.positions(func(at int, slot childRef) bool {
		t.mustGet(slot).backPos = at
		return true
	})
	return nil
}

// subtreeSlots returns every slot in the subtree rooted at origin, in
// descendants-after-ancestor (DFS pre-order) order. Used by Prune,
// RemoveChildren, IntoNewTree and the graft paths to enumerate the slots
// to free.
func (t *Tree[T, S]) subtreeSlots(origin childRef) []childRef {
	out := []childRef{origin}
	stack := []childRef{origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.mustGet(cur)
		var kids []childRef
		n.children.positions(func(_ int, slot childRef) bool {
			kids = append(kids, slot)
			return true
		})
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
		if cur != origin {
			out = append(out, cur)
		}
	}
	return out
}

// isAncestor reports whether candidate is an ancestor of ref (or ref
// itself), by walking ref's parent chain.
func (t *Tree[T, S]) isAncestor(candidate, ref childRef) bool {
	for cur := ref; cur != noChild; {
		if cur == candidate {
			return true
		}
		cur = t.mustGet(cur).parent
	}
	return false
}

func (t *Tree[T, S]) depthOf(ref childRef) int {
	depth := 0
	for cur := t.mustGet(ref).parent; cur != noChild; cur = t.mustGet(cur).parent {
		depth++
	}
	return depth
}
