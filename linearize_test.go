// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbor-tree/arbor"
	"github.com/arbor-tree/arbor/internal/treetest"
)

func TestExportEmptyTree(t *testing.T) {
	tree := arbor.New[string, arbor.Dyn]()
	require.Nil(t, tree.Export())
}

func TestExportDepthFirstPreOrder(t *testing.T) {
	tree := arbor.NewWithRoot[string, arbor.Dyn]("a")
	rm, err := tree.RootMut()
	require.NoError(t, err)
	bIdx, err := rm.PushChild("b")
	require.NoError(t, err)
	_, err = rm.PushChild("c")
	require.NoError(t, err)
	bm, err := tree.NodeMut(bIdx)
	require.NoError(t, err)
	_, err = bm.PushChild("d")
	require.NoError(t, err)

	entries := tree.Export()
	want := []arbor.LinearEntry[string]{
		{Depth: 0, Value: "a"},
		{Depth: 1, Value: "b"},
		{Depth: 2, Value: "d"},
		{Depth: 1, Value: "c"},
	}
	require.Equal(t, want, entries, treetest.DiffSequences(entries, want))
}

func TestImportRoundTrip(t *testing.T) {
	original := arbor.NewWithRoot[string, arbor.Dyn]("a")
	rm, err := original.RootMut()
	require.NoError(t, err)
	bIdx, err := rm.PushChild("b")
	require.NoError(t, err)
	_, err = rm.PushChild("c")
	require.NoError(t, err)
	bm, err := original.NodeMut(bIdx)
	require.NoError(t, err)
	_, err = bm.PushChild("d")
	require.NoError(t, err)

	entries := original.Export()
	rebuilt, err := arbor.Import[string, arbor.Dyn](entries)
	require.NoError(t, err)
	require.Equal(t, entries, rebuilt.Export())
}

func TestImportEmptyFails(t *testing.T) {
	_, err := arbor.Import[string, arbor.Dyn](nil)
	require.ErrorIs(t, err, arbor.ErrMalformedSequence)
}

func TestImportNonZeroFirstDepthFails(t *testing.T) {
	_, err := arbor.Import[string, arbor.Dyn]([]arbor.LinearEntry[string]{
		{Depth: 1, Value: "a"},
	})
	require.ErrorIs(t, err, arbor.ErrMalformedSequence)
}

func TestImportDepthSkipFails(t *testing.T) {
	_, err := arbor.Import[string, arbor.Dyn]([]arbor.LinearEntry[string]{
		{Depth: 0, Value: "a"},
		{Depth: 2, Value: "b"},
	})
	require.ErrorIs(t, err, arbor.ErrMalformedSequence)
}

func TestImportSecondRootFails(t *testing.T) {
	_, err := arbor.Import[string, arbor.Dyn]([]arbor.LinearEntry[string]{
		{Depth: 0, Value: "a"},
		{Depth: 0, Value: "b"},
	})
	require.ErrorIs(t, err, arbor.ErrMalformedSequence)
}

func TestImportIntoDaryRespectsCapacity(t *testing.T) {
	_, err := arbor.Import[string, arbor.Binary]([]arbor.LinearEntry[string]{
		{Depth: 0, Value: "a"},
		{Depth: 1, Value: "left"},
		{Depth: 1, Value: "right"},
		{Depth: 1, Value: "overflow"},
	})
	require.ErrorIs(t, err, arbor.ErrCapacityExceeded)
}
