// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import "github.com/cockroachdb/errors"

// TakeOut removes m, reparenting m's children to m's former parent at m's
// former position, in order. Returns m's value. Fails ErrRoot if m is the
// root and has a child count other than 1 (the root can only be taken out
// when exactly one child can take its place as the new root).
func (m NodeMut[T, S]) TakeOut() (T, error) {
	t := m.tree
	n := m.slot()

	var kids []childRef
	n.children.positions(func(_ int, slot childRef) bool {
		kids = append(kids, slot)
		return true
	})

	if n.parent == noChild {
		if len(kids) != 1 {
			return n.value, ErrRoot
		}
		value := n.value
		newRoot := kids[0]
		t.root = newRoot
		r := t.mustGet(newRoot)
		r.parent = noChild
		r.backPos = 0
		t.freeSlot(m.idx.slot)
		t.checkSound()
		return value, nil
	}

	parent := n.parent
	pos := n.backPos
	p := t.mustGet(parent)
	if _, err := p.children.removeAt(pos); err != nil {
		invariantViolation("TakeOut: removing self from parent: %v", err)
	}

	// Validate every target position before attaching anything, so a
	// Dary capacity failure leaves the tree exactly as it was: position
	// pos is free now that self is gone; every subsequent position must
	// already have been free.
	feasible := true
	for i := 1; i < len(kids); i++ {
		if !p.children.canInsertAt(pos + i) {
			feasible = false
			break
		}
	}
	if !feasible {
		if err := p.children.insertAt(pos, m.idx.slot); err != nil {
			invariantViolation("TakeOut: restoring self after failed capacity check: %v", err)
		}
		return n.value, errors.Wrapf(ErrCapacityExceeded, "arbor: parent cannot accept %d reparented children", len(kids))
	}

	for i, kid := range kids {
		if err := t.attachAt(parent, pos+i, kid); err != nil {
			invariantViolation("TakeOut: attach unexpectedly failed after a successful precheck: %v", err)
		}
	}
	value := n.value
	t.freeSlot(m.idx.slot)
	t.checkSound()
	return value, nil
}

// Prune removes the entire subtree rooted at m and returns m's value; every
// descendant slot becomes vacant. Fails ErrLastRootPrune if m is the sole
// remaining node of its tree. Pruning the root of a tree that has other
// nodes succeeds and leaves the tree empty.
func (m NodeMut[T, S]) Prune() (T, error) {
	t := m.tree
	n := m.slot()
	if n.parent == noChild && t.Len() == 1 {
		var zero T
		return zero, ErrLastRootPrune
	}
	value := n.value
	origin := m.idx.slot
	t.detachFromParent(origin)
	for _, ref := range t.subtreeSlots(origin) {
		t.freeSlot(ref)
	}
	t.checkSound()
	return value, nil
}

// SwapSubtrees exchanges the subtrees rooted at a and b (which must belong
// to t), preserving positional meaning (left/right for Dary). Fails
// ErrAncestor if one index is an ancestor of the other, since swapping
// through an ancestry relationship has no well-defined result.
func (t *Tree[T, S]) SwapSubtrees(a, b NodeIdx) error {
	an, err := t.resolve(a)
	if err != nil {
		return err
	}
	bn, err := t.resolve(b)
	if err != nil {
		return err
	}
	if a.slot == b.slot {
		return nil
	}
	if t.isAncestor(a.slot, b.slot) || t.isAncestor(b.slot, a.slot) {
		return ErrAncestor
	}

	aParent, aPos := an.parent, an.backPos
	bParent, bPos := bn.parent, bn.backPos

	if aParent == noChild {
		t.root = b.slot
	} else {
		p := t.mustGet(aParent)
		if err := p.children.replaceAt(aPos, b.slot); err != nil {
			invariantViolation("SwapSubtrees: replacing a's slot: %v", err)
		}
	}
	if bParent == noChild {
		t.root = a.slot
	} else {
		p := t.mustGet(bParent)
		if err := p.children.replaceAt(bPos, a.slot); err != nil {
			invariantViolation("SwapSubtrees: replacing b's slot: %v", err)
		}
	}

	an.parent, an.backPos = bParent, bPos
	bn.parent, bn.backPos = aParent, aPos
	t.checkSound()
	return nil
}

// Relocate moves the subtree rooted at m to become a child of destParent,
// without copying values: destSide picks whether it becomes destParent's
// first child (Left) or is appended after destParent's existing children
// (Right) — the bounded-arity (Dary/Binary) case where destSide chooses
// between position 0 and the next free position. Fails ErrAncestor if
// destParent is m or a descendant of m.
func (m NodeMut[T, S]) Relocate(destParent NodeMut[T, S], destSide Side) (NodeIdx, error) {
	t := m.tree
	origin := m.idx.slot
	dest := destParent.idx.slot
	if origin == dest || t.isAncestor(origin, dest) {
		return NodeIdx{}, ErrAncestor
	}

	originNode := t.mustGet(origin)
	priorParent, priorPos := originNode.parent, originNode.backPos

	t.detachFromParent(origin)
	var err error
	if destSide == Left {
		err = t.attachAt(dest, 0, origin)
	} else {
		err = t.attachAsChild(dest, origin)
	}
	if err != nil {
		// Reattach failed (e.g. Dary capacity): put origin back exactly
		// where it came from so the tree is unchanged, matching every
		// other mutator's all-or-nothing contract.
		if priorParent == noChild {
			t.root = origin
			originNode.parent, originNode.backPos = noChild, 0
		} else if err2 := t.attachAt(priorParent, priorPos, origin); err2 != nil {
			invariantViolation("Relocate: restoring origin after failed reattach: %v", err2)
		}
		return NodeIdx{}, err
	}
	t.checkSound()
	return t.idxOf(origin), nil
}

// IntoNewTree detaches the subtree at m and returns it as a freshly
// constructed Tree with its own tree id; the origin tree loses the
// subtree.
func (m NodeMut[T, S]) IntoNewTree() *Tree[T, S] {
	t := m.tree
	origin := m.idx.slot
	t.detachFromParent(origin)

	dest := NewWithOptions[T, S](t.opts)
	dest.root = copySubtree(t, origin, dest, noChild, 0)
	for _, ref := range t.subtreeSlots(origin) {
		t.freeSlot(ref)
	}
	t.checkSound()
	dest.checkSound()
	return dest
}

// CloneAsTree deep-copies the subtree at m into a freshly constructed Tree,
// leaving m's tree unchanged.
func (m NodeMut[T, S]) CloneAsTree() *Tree[T, S] {
	t := m.tree
	dest := NewWithOptions[T, S](t.opts)
	dest.root = copySubtree(t, m.idx.slot, dest, noChild, 0)
	dest.checkSound()
	return dest
}

// copySubtree deep-copies the subtree rooted at srcRef (in src) into dest
// as a child of destParent (noChild for a new root), returning the new
// root's slot in dest.
func copySubtree[T any, S Shape](src *Tree[T, S], srcRef childRef, dest *Tree[T, S], destParent childRef, backPos int) childRef {
	srcNode := src.mustGet(srcRef)
	var shape S
	newSlot := dest.arena.Allocate(nodeSlot[T]{
		value:    srcNode.value,
		parent:   destParent,
		backPos:  backPos,
		children: shape.newChildren(),
	})
	newNode := dest.mustGet(newSlot)
	srcNode.children.positions(func(pos int, kid childRef) bool {
		childSlot := copySubtree(src, kid, dest, newSlot, pos)
		if err := newNode.children.insertAt(pos, childSlot); err != nil {
			invariantViolation("copySubtree: %v", err)
		}
		return true
	})
	return newSlot
}

// PushChildTree grafts the subtree rooted at src's root as a new last child
// of m, copying values into m's arena; src becomes empty.
func (m NodeMut[T, S]) PushChildTree(src *Tree[T, S]) (NodeIdx, error) {
	rootIdx, err := src.RootIdx()
	if err != nil {
		return NodeIdx{}, err
	}
	return m.graftTreeMove(src, rootIdx.slot, nil)
}

// PushChildTreeClone grafts a deep copy of the subtree rooted at src's root
// as a new last child of m; src is left unchanged.
func (m NodeMut[T, S]) PushChildTreeClone(src *Tree[T, S]) (NodeIdx, error) {
	rootIdx, err := src.RootIdx()
	if err != nil {
		return NodeIdx{}, err
	}
	return m.graftTreeClone(src, rootIdx.slot, nil)
}

// PushChildTreeWithin grafts the subtree rooted at src (which must belong
// to m's own tree) as a new last child of m, moving it from its current
// position. Fails ErrAncestor if src is m or an ancestor of m.
func (m NodeMut[T, S]) PushChildTreeWithin(src NodeMut[T, S]) (NodeIdx, error) {
	return src.Relocate(m, Right)
}

// PushSiblingTree grafts the subtree rooted at src's root as m's new left
// or right neighbor under m's parent, copying values into m's arena; src
// becomes empty. Fails ErrRoot if m is the root.
func (m NodeMut[T, S]) PushSiblingTree(side Side, src *Tree[T, S]) (NodeIdx, error) {
	rootIdx, err := src.RootIdx()
	if err != nil {
		return NodeIdx{}, err
	}
	return m.graftTreeMove(src, rootIdx.slot, &side)
}

// PushSiblingTreeClone grafts a deep copy of the subtree rooted at src's
// root as m's new left or right neighbor under m's parent; src is left
// unchanged. Fails ErrRoot if m is the root.
func (m NodeMut[T, S]) PushSiblingTreeClone(side Side, src *Tree[T, S]) (NodeIdx, error) {
	rootIdx, err := src.RootIdx()
	if err != nil {
		return NodeIdx{}, err
	}
	return m.graftTreeClone(src, rootIdx.slot, &side)
}

func (m NodeMut[T, S]) graftTreeMove(src *Tree[T, S], srcRef childRef, side *Side) (NodeIdx, error) {
	t := m.tree
	newSlot := copySubtree(src, srcRef, t, noChild, 0)
	if err := m.attachGraft(newSlot, side); err != nil {
		for _, ref := range t.subtreeSlots(newSlot) {
			t.freeSlot(ref)
		}
		return NodeIdx{}, err
	}
	for _, ref := range src.subtreeSlots(srcRef) {
		src.freeSlot(ref)
	}
	if srcRef == src.root {
		src.root = noChild
	}
	t.checkSound()
	src.checkSound()
	return t.idxOf(newSlot), nil
}

func (m NodeMut[T, S]) graftTreeClone(src *Tree[T, S], srcRef childRef, side *Side) (NodeIdx, error) {
	t := m.tree
	newSlot := copySubtree(src, srcRef, t, noChild, 0)
	if err := m.attachGraft(newSlot, side); err != nil {
		for _, ref := range t.subtreeSlots(newSlot) {
			t.freeSlot(ref)
		}
		return NodeIdx{}, err
	}
	t.checkSound()
	return t.idxOf(newSlot), nil
}

func (m NodeMut[T, S]) attachGraft(newSlot childRef, side *Side) error {
	t := m.tree
	if side == nil {
		return t.attachAsChild(m.idx.slot, newSlot)
	}
	n := m.slot()
	if n.parent == noChild {
		return ErrRoot
	}
	pos := n.backPos
	if *side == Right {
		pos++
	}
	return t.attachAt(n.parent, pos, newSlot)
}

// PushSiblingTreeWithin grafts the subtree rooted at src (which must belong
// to m's own tree) as m's new left or right neighbor under m's parent,
// moving it from its current position. Fails ErrRoot if m is the root,
// ErrAncestor if src is m or an ancestor of m.
func (m NodeMut[T, S]) PushSiblingTreeWithin(side Side, src NodeMut[T, S]) (NodeIdx, error) {
	t := m.tree
	n := m.slot()
	if n.parent == noChild {
		return NodeIdx{}, ErrRoot
	}
	origin := src.idx.slot
	if origin == m.idx.slot || t.isAncestor(origin, m.idx.slot) {
		return NodeIdx{}, ErrAncestor
	}
	originNode := t.mustGet(origin)
	priorParent, priorPos := originNode.parent, originNode.backPos
	t.detachFromParent(origin)
	// m's own back-position may have shifted if src was a Dyn sibling
	// before m; recompute after the detach.
	pos := n.backPos
	if side == Right {
		pos++
	}
	if err := t.attachAt(n.parent, pos, origin); err != nil {
		// Put origin back where it came from so the tree is unchanged.
		if err2 := t.attachAt(priorParent, priorPos, origin); err2 != nil {
			invariantViolation("PushSiblingTreeWithin: restoring origin after failed reattach: %v", err2)
		}
		return NodeIdx{}, err
	}
	t.checkSound()
	return t.idxOf(origin), nil
}
