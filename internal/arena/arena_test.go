package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocateFreeReuse(t *testing.T) {
	a := New[int](4)
	i0 := a.Allocate(10)
	i1 := a.Allocate(20)
	require.Equal(t, 2, a.Len())

	g0, err := a.Generation(i0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), g0)

	require.NoError(t, a.Free(i0))
	require.Equal(t, 1, a.Len())
	require.False(t, a.Occupied(i0))

	// Eager mode reuses the freed slot and bumps its generation.
	i2 := a.Allocate(30)
	require.Equal(t, i0, i2)
	g2, err := a.Generation(i2)
	require.NoError(t, err)
	require.Equal(t, uint64(2), g2)

	v, _, occupied, err := a.Get(i1)
	require.NoError(t, err)
	require.True(t, occupied)
	require.Equal(t, 20, *v)
}

func TestArenaLazyNeverReuses(t *testing.T) {
	a := New[int](4)
	a.SetLazy(true)
	i0 := a.Allocate(1)
	i1 := a.Allocate(2)
	require.NoError(t, a.Free(i0))

	i2 := a.Allocate(3)
	require.NotEqual(t, i0, i2)
	require.Equal(t, 2, a.Len())
	_ = i1
}

func TestArenaDoubleFree(t *testing.T) {
	a := New[int](4)
	i0 := a.Allocate(1)
	require.NoError(t, a.Free(i0))
	err := a.Free(i0)
	require.Error(t, err)
}

func TestArenaOutOfBounds(t *testing.T) {
	a := New[int](4)
	_, _, _, err := a.Get(100)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestArenaGrowsInChunksAndPinsAddresses(t *testing.T) {
	a := New[int](2)
	var ptrs []*int
	for i := 0; i < 10; i++ {
		slot := a.Allocate(i)
		v, _, _, err := a.Get(slot)
		require.NoError(t, err)
		ptrs = append(ptrs, v)
	}
	// Growth must not move previously returned addresses.
	for i, p := range ptrs {
		require.Equal(t, i, *p)
	}
	require.GreaterOrEqual(t, a.Capacity(), 10)
}

func TestArenaAllSkipsVacant(t *testing.T) {
	a := New[int](4)
	i0 := a.Allocate(1)
	a.Allocate(2)
	a.Allocate(3)
	require.NoError(t, a.Free(i0))

	var seen []int
	a.All(func(slot int, value *int) bool {
		seen = append(seen, *value)
		return true
	})
	require.ElementsMatch(t, []int{2, 3}, seen)
}
