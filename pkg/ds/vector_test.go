package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorPushGrowsByDoubling(t *testing.T) {
	v := NewVector[int]()
	assert.Equal(t, 0, v.Cap())
	assert.True(t, v.IsEmpty())

	v.Push(1)
	assert.Equal(t, vectorInitialCapacity, v.Cap())

	for i := 2; i <= 9; i++ {
		v.Push(i)
	}
	assert.Equal(t, 9, v.Len())
	assert.Equal(t, vectorInitialCapacity*2, v.Cap())

	for i := 0; i < 9; i++ {
		got, ok := v.Get(i)
		require.True(t, ok)
		assert.Equal(t, i+1, got)
	}
}

func TestVectorBoundsChecks(t *testing.T) {
	v := NewVector[string]()

	_, ok := v.Pop()
	assert.False(t, ok, "pop on empty vector")

	_, ok = v.Get(0)
	assert.False(t, ok, "get on empty vector")

	assert.ErrorIs(t, v.Set(0, "x"), ErrIndexOutOfRange)

	v.Push("a")
	_, ok = v.Get(-1)
	assert.False(t, ok)
	_, ok = v.Get(1)
	assert.False(t, ok)
	assert.ErrorIs(t, v.Set(1, "b"), ErrIndexOutOfRange)
	assert.ErrorIs(t, v.Swap(0, 1), ErrIndexOutOfRange)

	require.NoError(t, v.Set(0, "b"))
	got, ok := v.Pop()
	require.True(t, ok)
	assert.Equal(t, "b", got)
	assert.True(t, v.IsEmpty())
}

func TestVectorWithCapacity(t *testing.T) {
	v := NewVectorWithCapacity[int](3)
	assert.Equal(t, 3, v.Cap())
	assert.Equal(t, 0, v.Len())

	zero := NewVectorWithCapacity[int](0)
	assert.Equal(t, 0, zero.Cap())
}

func TestVectorReserveAndShrink(t *testing.T) {
	v := NewVector[int]()
	v.Reserve(20)
	assert.Equal(t, 20, v.Cap())

	v.Reserve(5)
	assert.Equal(t, 20, v.Cap(), "reserve never shrinks")

	v.Push(1)
	v.Push(2)
	v.Push(3)
	v.ShrinkToFit()
	assert.Equal(t, 3, v.Cap())
	assert.Equal(t, []int{1, 2, 3}, v.All())

	v.Clear()
	assert.Equal(t, 3, v.Cap(), "clear keeps storage")
	v.ShrinkToFit()
	assert.Equal(t, 0, v.Cap(), "shrinking an empty vector frees storage")
}

func TestVectorSwapAndDestroy(t *testing.T) {
	v := NewVector[int]()
	v.Push(10)
	v.Push(20)
	require.NoError(t, v.Swap(0, 1))
	assert.Equal(t, []int{20, 10}, v.All())

	v.Destroy()
	v.Destroy()
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Cap())

	v.Push(5)
	got, ok := v.Get(0)
	require.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestVectorDoesNotOwnElements(t *testing.T) {
	type item struct{ n int }
	a := &item{n: 1}
	v := NewVector[*item]()
	v.Push(a)
	v.Destroy()
	assert.Equal(t, 1, a.n)
}
