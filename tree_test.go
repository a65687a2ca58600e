// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbor-tree/arbor"
)

func buildSmallTree(t *testing.T) (*arbor.Tree[string, arbor.Dyn], map[string]arbor.NodeIdx) {
	t.Helper()
	tree := arbor.NewWithRoot[string, arbor.Dyn]("a")
	idx := map[string]arbor.NodeIdx{}
	root, err := tree.RootIdx()
	require.NoError(t, err)
	idx["a"] = root

	rm, err := tree.RootMut()
	require.NoError(t, err)
	bIdx, err := rm.PushChild("b")
	require.NoError(t, err)
	idx["b"] = bIdx
	cIdx, err := rm.PushChild("c")
	require.NoError(t, err)
	idx["c"] = cIdx

	bm, err := tree.NodeMut(bIdx)
	require.NoError(t, err)
	dIdx, err := bm.PushChild("d")
	require.NoError(t, err)
	idx["d"] = dIdx

	return tree, idx
}

func TestEmptyTree(t *testing.T) {
	tree := arbor.New[string, arbor.Dyn]()
	require.True(t, tree.IsEmpty())
	require.Equal(t, 0, tree.Len())
	_, err := tree.Root()
	require.ErrorIs(t, err, arbor.ErrEmpty)
}

func TestNodeIdxWrongTree(t *testing.T) {
	t1, idx := buildSmallTree(t)
	t2 := arbor.NewWithRoot[string, arbor.Dyn]("x")
	_, err := t2.Node(idx["a"])
	require.ErrorIs(t, err, arbor.ErrWrongTree)
	_ = t1
}

// TestNodeIdxOutOfBounds is exercised from the white-box TestResolveOutOfBounds
// in mutate_test.go (package arbor), since constructing a NodeIdx whose slot
// exceeds the tree's own arena capacity is not reachable through the public
// API alone: the exported NodeIdx fields are unexported, and the only way to
// mint one is through a Tree operation, which never hands out an
// out-of-range slot for its own tree.

func TestEagerReclaimReusesSlots(t *testing.T) {
	tree := arbor.NewWithRoot[int, arbor.Dyn](0)
	rm, err := tree.RootMut()
	require.NoError(t, err)
	child, err := rm.PushChild(1)
	require.NoError(t, err)

	cm, err := tree.NodeMut(child)
	require.NoError(t, err)
	_, err = cm.Prune()
	require.NoError(t, err)

	// Eager mode (the default) reuses the freed slot; a fresh push gets the
	// same slot index back with an advanced generation, so the old handle
	// must now resolve as RemovedNode rather than silently finding the new
	// node.
	_, err = rm.PushChild(2)
	require.NoError(t, err)
	_, err = tree.Node(child)
	require.ErrorIs(t, err, arbor.ErrRemovedNode)
}

func TestLazyReclaimNeverReuses(t *testing.T) {
	tree := arbor.NewWithRoot[int, arbor.Dyn](0)
	tree.IntoLazyReclaim()
	rm, err := tree.RootMut()
	require.NoError(t, err)

	var pruned []arbor.NodeIdx
	for i := 0; i < 5; i++ {
		child, err := rm.PushChild(i)
		require.NoError(t, err)
		cm, err := tree.NodeMut(child)
		require.NoError(t, err)
		_, err = cm.Prune()
		require.NoError(t, err)
		pruned = append(pruned, child)
	}
	for _, idx := range pruned {
		_, err := tree.Node(idx)
		require.ErrorIs(t, err, arbor.ErrRemovedNode)
	}
}

func TestViewNavigation(t *testing.T) {
	tree, idx := buildSmallTree(t)

	a, err := tree.Node(idx["a"])
	require.NoError(t, err)
	require.True(t, a.IsRoot())
	require.Equal(t, 2, a.NumChildren())
	require.Equal(t, 0, a.Depth())
	require.Equal(t, 2, a.Height())

	d, err := tree.Node(idx["d"])
	require.NoError(t, err)
	require.True(t, d.IsLeaf())
	require.Equal(t, 2, d.Depth())

	parent, ok := d.Parent()
	require.True(t, ok)
	require.Equal(t, "b", parent.Data())

	_, ok = a.Parent()
	require.False(t, ok)
}

func TestAncestorsIncludesSelf(t *testing.T) {
	tree, idx := buildSmallTree(t)
	d, err := tree.Node(idx["d"])
	require.NoError(t, err)

	var got []string
	for v := range d.Ancestors() {
		got = append(got, v.Data())
	}
	require.Equal(t, []string{"d", "b", "a"}, got)
}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

// TestLazyGrowthWarnsOnce drives repeated push+prune cycles on a
// small-chunked Lazy tree past the growth-warning threshold and checks
// that the injected Logger receives exactly one Infof call, matching the
// "first time only" contract of checkLazyGrowth.
func TestLazyGrowthWarnsOnce(t *testing.T) {
	logger := &recordingLogger{}
	opts := &arbor.Options{ChunkSize: 4, Logger: logger}
	tree := arbor.NewWithRootOptions[int, arbor.Dyn](0, opts)
	tree.IntoLazyReclaim()
	rm, err := tree.RootMut()
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		child, err := rm.PushChild(i)
		require.NoError(t, err)
		cm, err := tree.NodeMut(child)
		require.NoError(t, err)
		_, err = cm.Prune()
		require.NoError(t, err)
	}

	require.Len(t, logger.infos, 1, "growth warning should fire exactly once")
}

func TestAllVisitsEveryNode(t *testing.T) {
	tree, _ := buildSmallTree(t)
	seen := map[string]bool{}
	for _, v := range tree.All {
		seen[v] = true
	}
	require.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, seen)
	require.Equal(t, 4, tree.Len())
}
