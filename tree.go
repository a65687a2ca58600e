// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import (
	"github.com/arbor-tree/arbor/internal/arena"
	"github.com/cockroachdb/errors"
)

// nodeSlot is the occupied payload of one arena cell: a value plus the
// structural back-references spec §3 requires (parent slot, children
// container, and this node's logical position under its parent).
type nodeSlot[T any] struct {
	value    T
	parent   childRef
	children childrenContainer
	backPos  int
}

// Tree is a rooted, in-memory tree of values of type T. S selects the
// children-storage shape (Dyn, Dary[D], or the Binary alias) at
// construction.
//
// Mutating operations (anything reached through NodeMut) require exclusive
// access to the Tree; read traversals (anything reached through NodeView,
// plus package parallel) require only a shared *Tree and may run
// concurrently on many goroutines, provided no goroutine is concurrently
// mutating.
type Tree[T any, S Shape] struct {
	arena        *arena.Arena[nodeSlot[T]]
	shape        S
	id           uint64
	root         childRef
	opts         *Options
	warnedGrowth bool
}

// lazyGrowthWarnFactor is the Capacity()/Len() ratio at which a Lazy-mode
// tree logs a one-time warning: past this point, repeated prune-without-
// reclaim cycles are growing the arena well beyond what the live node
// count needs, per invariant 7's documented tradeoff.
const lazyGrowthWarnFactor = 4

// checkLazyGrowth logs, once per tree, when a Lazy-mode tree's arena has
// grown to lazyGrowthWarnFactor times its live node count — the caller-
// visible cost of invariant 7's "never reuse a freed slot" guarantee.
func (t *Tree[T, S]) checkLazyGrowth() {
	if t.warnedGrowth || !t.arena.Lazy() {
		return
	}
	length := t.Len()
	if length == 0 || t.arena.Capacity() < length*lazyGrowthWarnFactor {
		return
	}
	t.warnedGrowth = true
	t.opts.Logger.Infof(
		"arbor: tree %d is in Lazy reclamation mode with capacity %d but only %d live nodes; "+
			"call IntoEagerReclaim and IntoLazyReclaim to reclaim vacant slots if this growth is unwanted",
		t.id, t.arena.Capacity(), length)
}

// New returns an empty tree with the given shape and default options.
func New[T any, S Shape]() *Tree[T, S] {
	return NewWithOptions[T, S](nil)
}

// NewWithOptions returns an empty tree configured by opts (nil selects
// defaults).
func NewWithOptions[T any, S Shape](opts *Options) *Tree[T, S] {
	o := opts.clone()
	t := &Tree[T, S]{
		arena: arena.New[nodeSlot[T]](o.ChunkSize),
		id:    newTreeID(),
		root:  noChild,
		opts:  o,
	}
	t.arena.SetLazy(o.Reclaim == Lazy)
	return t
}

// NewWithRoot returns a single-root tree holding value at the root.
func NewWithRoot[T any, S Shape](value T) *Tree[T, S] {
	return NewWithRootOptions[T, S](value, nil)
}

// NewWithRootOptions returns a single-root tree holding value at the root,
// configured by opts.
func NewWithRootOptions[T any, S Shape](value T, opts *Options) *Tree[T, S] {
	t := NewWithOptions[T, S](opts)
	var shape S
	slot := t.arena.Allocate(nodeSlot[T]{
		value:    value,
		parent:   noChild,
		children: shape.newChildren(),
	})
	t.root = slot
	return t
}

// Len returns the number of nodes currently in the tree.
func (t *Tree[T, S]) Len() int { return t.arena.Len() }

// IsEmpty reports whether the tree has no root.
func (t *Tree[T, S]) IsEmpty() bool { return t.root == noChild }

// ID returns the tree's process-unique identifier. Exposed primarily for
// diagnostics and tests; NodeIdx values already carry it internally.
func (t *Tree[T, S]) ID() uint64 { return t.id }

// Reclaim returns the tree's current reclamation mode.
func (t *Tree[T, S]) Reclaim() ReclaimMode {
	if t.arena.Lazy() {
		return Lazy
	}
	return Eager
}

// IntoLazyReclaim switches the tree to Lazy reclamation: freed slots are
// never reused, so every currently-valid NodeIdx remains resolvable (as
// ErrRemovedNode once its own node is removed, never as some other node)
// for the rest of the tree's life, at the cost of unbounded arena growth
// under repeated prune-without-reclaim cycles.
func (t *Tree[T, S]) IntoLazyReclaim() {
	t.arena.SetLazy(true)
}

// IntoEagerReclaim switches the tree to Eager reclamation: every vacant
// slot, including those freed while the tree was Lazy, becomes available
// for reuse, and subsequent frees return their slot to the free list for
// immediate reuse. Mode switches never invalidate a NodeIdx that is valid
// at the time of the switch: only vacant slots are ever handed out again.
func (t *Tree[T, S]) IntoEagerReclaim() {
	t.arena.SetLazy(false)
}

// resolve validates idx against t and returns a pointer to its live slot.
func (t *Tree[T, S]) resolve(idx NodeIdx) (*nodeSlot[T], error) {
	if idx.treeID != t.id {
		return nil, errors.Wrapf(ErrWrongTree, "arbor: node index tree id %d does not match tree id %d", idx.treeID, t.id)
	}
	value, generation, occupied, err := t.arena.Get(idx.slot)
	if err != nil {
		return nil, errors.Wrapf(ErrOutOfBounds, "arbor: slot %d out of bounds", idx.slot)
	}
	if !occupied || generation != idx.generation {
		return nil, errors.Wrapf(ErrRemovedNode, "arbor: node at slot %d has been removed", idx.slot)
	}
	return value, nil
}

func (t *Tree[T, S]) idxOf(slot childRef) NodeIdx {
	gen, err := t.arena.Generation(slot)
	if err != nil {
		invariantViolation("idxOf: slot %d has no generation: %v", slot, err)
	}
	return NodeIdx{treeID: t.id, slot: slot, generation: gen}
}

// RootIdx returns the NodeIdx of the root, or ErrEmpty if the tree has no
// root.
func (t *Tree[T, S]) RootIdx() (NodeIdx, error) {
	if t.root == noChild {
		return NodeIdx{}, ErrEmpty
	}
	return t.idxOf(t.root), nil
}

// Root returns a read-only view of the root node, or ErrEmpty.
func (t *Tree[T, S]) Root() (NodeView[T, S], error) {
	idx, err := t.RootIdx()
	if err != nil {
		return NodeView[T, S]{}, err
	}
	return t.Node(idx)
}

// RootMut returns a mutable view of the root node, or ErrEmpty.
func (t *Tree[T, S]) RootMut() (NodeMut[T, S], error) {
	idx, err := t.RootIdx()
	if err != nil {
		return NodeMut[T, S]{}, err
	}
	return t.NodeMut(idx)
}

// Node resolves idx to a read-only view.
func (t *Tree[T, S]) Node(idx NodeIdx) (NodeView[T, S], error) {
	if _, err := t.resolve(idx); err != nil {
		return NodeView[T, S]{}, err
	}
	return NodeView[T, S]{tree: t, idx: idx}, nil
}

// NodeMut resolves idx to a mutable view. Exactly one NodeMut should be
// held live at a time per Tree: Go has no borrow checker to enforce this,
// so it is a documented precondition rather than a compile error, matching
// how pebble documents exclusive-vs-shared access on DB/Batch rather than
// encoding it in the type system.
func (t *Tree[T, S]) NodeMut(idx NodeIdx) (NodeMut[T, S], error) {
	if _, err := t.resolve(idx); err != nil {
		return NodeMut[T, S]{}, err
	}
	return NodeMut[T, S]{tree: t, idx: idx}, nil
}

// All iterates every node in the tree in arena order (deterministic, tied
// to insertion/reclamation history, not any traversal order).
func (t *Tree[T, S]) All(yield func(NodeIdx, T) bool) {
	t.arena.All(func(slot int, value *nodeSlot[T]) bool {
		return yield(t.idxOf(slot), value.value)
	})
}

// AllMut iterates every node in the tree in arena order, yielding mutable
// views.
func (t *Tree[T, S]) AllMut(yield func(NodeMut[T, S]) bool) {
	t.arena.All(func(slot int, _ *nodeSlot[T]) bool {
		return yield(NodeMut[T, S]{tree: t, idx: t.idxOf(slot)})
	})
}
