// Copyright 2026 The Arbor Authors. All rights reserved. Use of this source
// code is governed by a BSD-style license that can be found in the LICENSE
// file.

package arbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectPositions(c childrenContainer) []childRef {
	var out []childRef
	c.positions(func(_ int, slot childRef) bool {
		out = append(out, slot)
		return true
	})
	return out
}

func TestDynChildrenCompactsOnRemove(t *testing.T) {
	c := Dyn{}.newChildren()
	for i := 0; i < 5; i++ {
		pos, err := c.pushBack(childRef(i))
		require.NoError(t, err)
		require.Equal(t, i, pos)
	}
	require.Equal(t, 5, c.count())

	removed, err := c.removeAt(1)
	require.NoError(t, err)
	require.Equal(t, childRef(1), removed)
	require.Equal(t, []childRef{0, 2, 3, 4}, collectPositions(c))
	require.Equal(t, 4, c.count())
}

func TestDynChildrenInsertAt(t *testing.T) {
	c := Dyn{}.newChildren()
	_, _ = c.pushBack(0)
	_, _ = c.pushBack(2)
	require.NoError(t, c.insertAt(1, 1))
	require.Equal(t, []childRef{0, 1, 2}, collectPositions(c))
}

func TestDaryChildrenFillsLowestEmptyIndex(t *testing.T) {
	c := Binary{}.newChildren()
	require.Equal(t, 2, c.capacity())

	pos, err := c.pushBack(10)
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	pos, err = c.pushBack(11)
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	_, err = c.pushBack(12)
	require.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestDaryChildrenLeavesHoleOnRemove(t *testing.T) {
	c := Binary{}.newChildren()
	_, _ = c.pushBack(10)
	_, _ = c.pushBack(11)

	removed, err := c.removeAt(0)
	require.NoError(t, err)
	require.Equal(t, childRef(10), removed)
	require.Equal(t, 1, c.count())

	_, ok := c.get(0)
	require.False(t, ok)
	got, ok := c.get(1)
	require.True(t, ok)
	require.Equal(t, childRef(11), got)

	pos, err := c.pushBack(20)
	require.NoError(t, err)
	require.Equal(t, 0, pos, "pushBack must fill the lowest empty index left by a hole")
}

func TestDaryChildrenCanInsertAt(t *testing.T) {
	c := Binary{}.newChildren()
	require.True(t, c.canInsertAt(0))
	require.True(t, c.canInsertAt(1))
	require.False(t, c.canInsertAt(2))

	_, _ = c.pushBack(1)
	require.False(t, c.canInsertAt(0))
	require.True(t, c.canInsertAt(1))
}
