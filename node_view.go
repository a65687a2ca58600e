// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import "iter"

// NodeView is a read-only handle bound to a tree and a resolved slot. It is
// cheap to copy and re-derives everything from the tree on each call, so it
// never goes stale on its own — only the underlying NodeIdx can.
type NodeView[T any, S Shape] struct {
	tree *Tree[T, S]
	idx  NodeIdx
}

// Idx returns the node's stable identifier.
func (v NodeView[T, S]) Idx() NodeIdx { return v.idx }

func (v NodeView[T, S]) slot() *nodeSlot[T] {
	n, err := v.tree.resolve(v.idx)
	if err != nil {
		invariantViolation("NodeView.slot: idx %+v no longer resolves: %v", v.idx, err)
	}
	return n
}

// Data returns the node's current value.
func (v NodeView[T, S]) Data() T { return v.slot().value }

// IsRoot reports whether this node is its tree's root.
func (v NodeView[T, S]) IsRoot() bool { return v.slot().parent == noChild }

// IsLeaf reports whether this node has no occupied children.
func (v NodeView[T, S]) IsLeaf() bool { return v.slot().children.count() == 0 }

// NumChildren returns the number of occupied children.
func (v NodeView[T, S]) NumChildren() int { return v.slot().children.count() }

// Depth returns the node's distance from the root, computed by walking the
// parent chain (O(depth)).
func (v NodeView[T, S]) Depth() int { return v.tree.depthOf(v.idx.slot) }

// Height returns the length of the longest downward path from this node to
// a descendant leaf, computed by traversing the subtree (O(subtree size)).
// A leaf has height 0.
func (v NodeView[T, S]) Height() int {
	return subtreeHeight(v.tree, v.idx.slot)
}

func subtreeHeight[T any, S Shape](t *Tree[T, S], ref childRef) int {
	n := t.mustGet(ref)
	max := -1
	n.children.positions(func(_ int, slot childRef) bool {
		if h := subtreeHeight(t, slot); h > max {
			max = h
		}
		return true
	})
	return max + 1
}

// SiblingIdx returns this node's logical position under its parent, or 0
// for the root.
func (v NodeView[T, S]) SiblingIdx() int { return v.slot().backPos }

// GetChild returns the child at logical position i. For Dary shapes this
// reports (zero, false) when position i is an empty slot; for Dyn it reports
// the i-th existing child.
func (v NodeView[T, S]) GetChild(i int) (NodeView[T, S], bool) {
	ref, ok := v.slot().children.get(i)
	if !ok {
		return NodeView[T, S]{}, false
	}
	return v.tree.viewOf(ref), true
}

// Children returns a lazy sequence of this node's children in logical
// order, skipping empty Dary slots.
func (v NodeView[T, S]) Children() iter.Seq[NodeView[T, S]] {
	return func(yield func(NodeView[T, S]) bool) {
		v.slot().children.positions(func(_ int, slot childRef) bool {
			return yield(v.tree.viewOf(slot))
		})
	}
}

// Parent returns this node's parent view, or false if this node is the
// root.
func (v NodeView[T, S]) Parent() (NodeView[T, S], bool) {
	parent := v.slot().parent
	if parent == noChild {
		return NodeView[T, S]{}, false
	}
	return v.tree.viewOf(parent), true
}

// Ancestors returns an upward lazy sequence starting at this node itself
// (included as the first element), then its parent, grandparent, and so on
// up to and including the root.
func (v NodeView[T, S]) Ancestors() iter.Seq[NodeView[T, S]] {
	return func(yield func(NodeView[T, S]) bool) {
		for cur := v.idx.slot; cur != noChild; cur = v.tree.mustGet(cur).parent {
			if !yield(v.tree.viewOf(cur)) {
				return
			}
		}
	}
}

// viewOf builds a NodeView for an internally known-live slot.
func (t *Tree[T, S]) viewOf(ref childRef) NodeView[T, S] {
	return NodeView[T, S]{tree: t, idx: t.idxOf(ref)}
}

// Walk returns a lazy sequence of values in the subtree rooted at v,
// visited in the given order (v itself included first/last as the order
// dictates).
func (v NodeView[T, S]) Walk(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, ref := range v.tree.subtreeOrder(v.idx.slot, order) {
			if !yield(v.tree.mustGet(ref).value) {
				return
			}
		}
	}
}

// WalkItems returns a lazy sequence carrying each node's depth (relative to
// v) and sibling index alongside its value — the combined form of the
// WithDepth/WithSiblingIdx decorators.
func (v NodeView[T, S]) WalkItems(order Order) iter.Seq[WalkItem[T]] {
	return func(yield func(WalkItem[T]) bool) {
		base := v.Depth()
		for _, ref := range v.tree.subtreeOrder(v.idx.slot, order) {
			n := v.tree.mustGet(ref)
			sib := n.backPos
			if ref == v.idx.slot {
				sib = 0
			}
			item := WalkItem[T]{
				Depth:      v.tree.depthOf(ref) - base,
				SiblingIdx: sib,
				Value:      n.value,
			}
			if !yield(item) {
				return
			}
		}
	}
}

// WalkNodes is Walk's OverNodes decorator: it yields full node views
// instead of bare values.
func (v NodeView[T, S]) WalkNodes(order Order) iter.Seq[NodeView[T, S]] {
	return func(yield func(NodeView[T, S]) bool) {
		for _, ref := range v.tree.subtreeOrder(v.idx.slot, order) {
			if !yield(v.tree.viewOf(ref)) {
				return
			}
		}
	}
}

// Leaves returns the leaves of the subtree rooted at v, visited in the
// relative order that Order would otherwise assign them.
func (v NodeView[T, S]) Leaves(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, ref := range v.tree.subtreeOrder(v.idx.slot, order) {
			n := v.tree.mustGet(ref)
			if n.children.count() == 0 {
				if !yield(n.value) {
					return
				}
			}
		}
	}
}

// Paths returns, for each leaf in the subtree rooted at v (visited in
// Order), the path from that leaf up to v, yielded leaf-to-root.
func (v NodeView[T, S]) Paths(order Order) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, ref := range v.tree.subtreeOrder(v.idx.slot, order) {
			n := v.tree.mustGet(ref)
			if n.children.count() != 0 {
				continue
			}
			var path []T
			for cur := ref; ; {
				path = append(path, v.tree.mustGet(cur).value)
				if cur == v.idx.slot {
					break
				}
				cur = v.tree.mustGet(cur).parent
			}
			if !yield(path) {
				return
			}
		}
	}
}

// CustomWalk unfolds a caller-supplied next function starting from v,
// yielding v itself first.
func (v NodeView[T, S]) CustomWalk(next func(NodeView[T, S]) (NodeView[T, S], bool)) iter.Seq[NodeView[T, S]] {
	return func(yield func(NodeView[T, S]) bool) {
		cur := v
		for {
			if !yield(cur) {
				return
			}
			nxt, ok := next(cur)
			if !ok {
				return
			}
			cur = nxt
		}
	}
}

// WalkItem is the combined payload produced by WalkItems: a node's value
// together with its depth relative to the traversal's origin and its
// logical sibling index under its parent (0 for the traversal's origin).
type WalkItem[T any] struct {
	Depth      int
	SiblingIdx int
	Value      T
}
