// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import (
	"github.com/cockroachdb/errors"
)

// Sentinel error kinds. Every fallible operation returns an error that
// errors.Is-matches exactly one of these; richer context is attached by
// wrapping the sentinel with errors.Wrapf, so both the standard library's
// errors.Is and cockroachdb/errors' errors.Is match it. Callers should
// always test with errors.Is rather than comparing errors for equality.
var (
	// ErrOutOfBounds is returned when a NodeIdx's slot index is past the
	// arena's current capacity.
	ErrOutOfBounds = errors.New("arbor: slot index out of bounds")

	// ErrWrongTree is returned when a NodeIdx was minted by a different
	// Tree than the one it is being resolved against.
	ErrWrongTree = errors.New("arbor: node index belongs to a different tree")

	// ErrRemovedNode is returned when a NodeIdx's slot is vacant or its
	// generation no longer matches the slot's current generation.
	ErrRemovedNode = errors.New("arbor: node has been removed")

	// ErrEmpty is returned when an operation requires a non-empty tree or
	// non-empty children and finds none.
	ErrEmpty = errors.New("arbor: tree or children are empty")

	// ErrRoot is returned when an operation is invalid on the root node,
	// such as PushSibling or a TakeOut that would orphan more than one
	// child.
	ErrRoot = errors.New("arbor: operation not valid on the root node")

	// ErrAncestor is returned when a swap or move would create a cycle by
	// relocating a node into its own subtree.
	ErrAncestor = errors.New("arbor: target is an ancestor of the source")

	// ErrCapacityExceeded is returned when a Dary[D] children container
	// cannot accept another child, whether from a direct push or from
	// TakeOut reparenting more children than the parent has room for.
	ErrCapacityExceeded = errors.New("arbor: children container is at capacity")

	// ErrMalformedSequence is returned by Import when the linearized
	// depth-first sequence is not well-formed.
	ErrMalformedSequence = errors.New("arbor: malformed linearized sequence")

	// ErrLastRootPrune is returned by Prune when called on the sole
	// remaining node of a tree.
	ErrLastRootPrune = errors.New("arbor: cannot prune the last remaining node")

	// ErrDoubleFree names the double-free kind, an internal bookkeeping
	// bug. No operation returns it: a double free reported by the arena
	// makes the tree panic with an InvariantError instead.
	ErrDoubleFree = errors.New("arbor: double free of vacant slot")
)

// InvariantError wraps an error that indicates a violation of one of
// arbor's internal bookkeeping invariants (for example a double free, or a
// back-pointer that P1 finds inconsistent under the "invariants" build
// tag). It is never expected in correct use of the public API; callers
// that see one should file a bug rather than attempt local recovery.
type InvariantError struct {
	Err error
}

// Unwrap returns the wrapped descriptive error.
func (e InvariantError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e InvariantError) Error() string { return e.Err.Error() }

// invariantViolation panics with an InvariantError wrapping an
// AssertionFailedf-formatted message, mirroring how pebble's arena and
// cache code treats corrupted internal state as fatal rather than
// recoverable.
func invariantViolation(format string, args ...interface{}) {
	panic(InvariantError{Err: errors.AssertionFailedf(format, args...)})
}
