// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

// Package parallel is the reference concurrent-partition runtime for
// read-only traversals: it materializes a tree's traversal frontier at a
// caller-chosen granularity and drives one errgroup goroutine per
// partition, mirroring the worker-pool shape of pebble's replay.Runner
// (golang.org/x/sync/errgroup, one goroutine per independent unit of
// work). It never accepts a mutable view, so it can never race a
// concurrent structural mutation.
package parallel

import (
	"context"

	"github.com/arbor-tree/arbor"
	"golang.org/x/sync/errgroup"
)

// Partition is one disjoint unit of work: the subtree rooted at Origin.
type Partition[T any, S arbor.Shape] struct {
	Origin arbor.NodeView[T, S]
}

// Partitions splits the subtree rooted at origin into disjoint partitions:
// starting from origin alone, it replaces the first frontier node that has
// children with all of those children, until the frontier holds at least n
// partitions or no frontier node has children (a subtree with fewer than n
// leaves-of-the-cut yields fewer than n partitions). One expansion adds all
// of a node's children at once, so the result can hold more than n
// partitions. The expanded nodes, origin among them, belong to no
// partition.
func Partitions[T any, S arbor.Shape](origin arbor.NodeView[T, S], n int) []Partition[T, S] {
	if n < 1 {
		n = 1
	}
	frontier := []arbor.NodeView[T, S]{origin}
	for len(frontier) < n {
		expandIdx := -1
		for i, v := range frontier {
			if v.NumChildren() > 0 {
				expandIdx = i
				break
			}
		}
		if expandIdx == -1 {
			break
		}
		var next []arbor.NodeView[T, S]
		next = append(next, frontier[:expandIdx]...)
		for c := range frontier[expandIdx].Children() {
			next = append(next, c)
		}
		next = append(next, frontier[expandIdx+1:]...)
		frontier = next
	}
	out := make([]Partition[T, S], len(frontier))
	for i, v := range frontier {
		out[i] = Partition[T, S]{Origin: v}
	}
	return out
}

// Walk partitions the subtree rooted at origin with Partitions(origin, n)
// and traverses each partition concurrently in the given order, invoking fn
// for every value; the nodes Partitions expanded are visited first, on the
// calling goroutine. Read-only: origin is a NodeView, never a mutable view, so Walk can
// never observe a tree undergoing concurrent structural mutation. The walk
// aborts (cancelling every other partition's goroutine via the errgroup's
// shared context) on the first error returned by fn.
func Walk[T any, S arbor.Shape](ctx context.Context, origin arbor.NodeView[T, S], order arbor.Order, n int, fn func(context.Context, T) error) error {
	parts := Partitions(origin, n)
	// The expanded nodes are the ancestors of the partition origins, up to
	// and including origin; none of them lies inside a partition.
	expanded := map[arbor.NodeIdx]bool{}
	for _, p := range parts {
		if p.Origin.Idx() == origin.Idx() {
			continue
		}
		for a, ok := p.Origin.Parent(); ok && !expanded[a.Idx()]; a, ok = a.Parent() {
			expanded[a.Idx()] = true
			if err := fn(ctx, a.Data()); err != nil {
				return err
			}
			if a.Idx() == origin.Idx() {
				break
			}
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		p := p
		g.Go(func() error {
			for v := range p.Origin.Walk(order) {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if err := fn(gctx, v); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
