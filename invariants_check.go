// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import "github.com/arbor-tree/arbor/internal/invariants"

// checkSound re-verifies P1 (structural soundness: every occupied
// non-root slot's parent-recorded back-position resolves to that very
// slot) and root uniqueness after a structural mutator has run. It is
// called from every mutator that touches parent/child wiring.
//
// Outside an "invariants"-tagged build, invariants.Enabled is the untyped
// constant false, so the Go compiler proves the loop body unreachable and
// checkSound compiles away to nothing; release builds pay no cost for it,
// mirroring how pebble gates its own internal/invariants-driven assertion
// passes.
func (t *Tree[T, S]) checkSound() {
	if !invariants.Enabled {
		return
	}
	roots := 0
	t.arena.All(func(slot int, n *nodeSlot[T]) bool {
		if n.parent == noChild {
			roots++
			return true
		}
		p := t.mustGet(n.parent)
		got, ok := p.children.get(n.backPos)
		if !ok || got != slot {
			invariantViolation(
				"checkSound: slot %d recorded at parent %d backPos %d, but parent reports %v (ok=%v)",
				slot, n.parent, n.backPos, got, ok)
		}
		return true
	})
	if roots > 1 {
		invariantViolation("checkSound: %d occupied slots have no parent, want at most 1", roots)
	}
	if !t.IsEmpty() && roots != 1 {
		invariantViolation("checkSound: non-empty tree has %d rootless slots, want exactly 1", roots)
	}
}
