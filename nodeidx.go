// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import "sync/atomic"

// nextTreeID hands out process-unique tree identifiers. An atomic counter
// is all a Tree needs to mint a globally distinct ID; nothing in this
// library ever needs to look trees up by ID, so no registry map is kept
// (see DESIGN.md's justification for dropping cockroachdb/swiss and
// similar hash-map dependencies).
var nextTreeID uint64

func newTreeID() uint64 {
	return atomic.AddUint64(&nextTreeID, 1)
}

// NodeIdx is an externally held, copyable handle to a node: (tree ID, slot
// index, generation). It never owns the node and never carries a lifetime
// tied to any particular borrow of the tree; resolving it against a Tree
// is the choke point that re-validates it (see Tree.Node / Tree.NodeMut).
type NodeIdx struct {
	treeID     uint64
	slot       int
	generation uint64
}

// IsZero reports whether idx is the zero NodeIdx. No live node has it;
// operations that fail return it alongside their error (e.g. RootIdx on an
// empty tree).
func (idx NodeIdx) IsZero() bool {
	return idx == NodeIdx{}
}

// slotIndex returns the raw slot index inside the package; it intentionally
// has no exported accessor since callers should never need to interpret a
// slot index directly.
func (idx NodeIdx) slotIndex() int { return idx.slot }
