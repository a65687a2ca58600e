// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package arbor provides a general-purpose in-memory tree container.
//
// A Tree holds a rooted tree of values of a caller-supplied element type T
// and exposes traversals (BFS, DFS pre-order, post-order), structural
// mutations (push, prune, take-out, splice, swap, relocate), and stable
// cross-call node identifiers (NodeIdx) that remain safely resolvable
// across arbitrary mutation of the tree.
//
// Trees come in three structural variants, selected by the Shape type
// parameter at construction: Dyn (unbounded arity, growable child list),
// Dary[D] (bounded arity D, children stored in a fixed array that
// preserves empty slots), and Binary (the distinguished Dary[Degree2]
// alias).
//
// Nodes are stored in a pinned, chunked arena (package
// github.com/arbor-tree/arbor/internal/arena): once a NodeIdx has been
// observed it never changes address, even as the tree grows or shrinks.
// External callers can hold a NodeIdx across arbitrary mutations; resolving
// a stale NodeIdx against the tree fails cleanly (ErrRemovedNode,
// ErrWrongTree) instead of reading or corrupting an unrelated node that
// happens to have been allocated into the same slot.
package arbor
