package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopBackend struct{}

func (nopBackend) LoadModel(string) (Model, error) { return 1, nil }
func (nopBackend) UnloadModel(Model)               {}
func (nopBackend) DrawModel(Model, Vec3, float32)  {}

func TestBackendRegistry(t *testing.T) {
	RegisterBackend("", func() (Backend, error) { return nopBackend{}, nil })
	RegisterBackend("nil-factory", nil)
	RegisterBackend("test-nop", func() (Backend, error) { return nopBackend{}, nil })

	assert.Contains(t, Backends(), "test-nop")
	assert.NotContains(t, Backends(), "")
	assert.NotContains(t, Backends(), "nil-factory")

	b, err := NewBackend("test-nop")
	require.NoError(t, err)
	assert.IsType(t, nopBackend{}, b)

	_, err = NewBackend("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 7)
	g.Set(5, 5, 9)

	assert.Equal(t, uint8(7), g.At(2, 1))
	assert.Equal(t, uint8(0), g.At(-1, 0))
	assert.Equal(t, 5, g.Index(2, 1))
	assert.Len(t, g.Cells(), 6)

	g.Clear()
	assert.Equal(t, uint8(0), g.At(2, 1))

	tiny := NewByteGrid(0, -1)
	assert.Equal(t, 1, tiny.W)
	assert.Equal(t, 1, tiny.H)
}

func TestStatsLookup(t *testing.T) {
	snap := StatsSnapshot{Groups: []StatGroup{
		{Name: "World", Stats: []Stat{IntStat("rooms", "Rooms", 4), Uint64Stat("seed", "Seed", 42)}},
		{Name: "Player", Stats: []Stat{FloatStat("x", "X", 1.5), StringStat("cell", "Cell", "0,0")}},
	}}

	v, ok := snap.Lookup("seed")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = snap.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "1.50", v)

	_, ok = snap.Lookup("nope")
	assert.False(t, ok)
}
