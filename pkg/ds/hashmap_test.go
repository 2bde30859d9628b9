package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMapRoundTrip(t *testing.T) {
	m := NewHashMap[string]()
	entries := map[uint64]string{
		0:          "zero",
		1:          "one",
		42:         "answer",
		1 << 63:    "high",
		0xdeadbeef: "beef",
	}
	for k, v := range entries {
		_, replaced, err := m.Set(k, v)
		require.NoError(t, err)
		assert.False(t, replaced)
	}
	assert.Equal(t, len(entries), m.Len())

	for k, v := range entries {
		got, ok := m.Get(k)
		require.True(t, ok, "key %d", k)
		assert.Equal(t, v, got)
	}

	_, ok := m.Get(7)
	assert.False(t, ok)
}

func TestHashMapSetReplacesValue(t *testing.T) {
	m := NewHashMap[int]()
	_, _, err := m.Set(5, 1)
	require.NoError(t, err)

	old, replaced, err := m.Set(5, 2)
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 1, old)
	assert.Equal(t, 1, m.Len())

	got, _ := m.Get(5)
	assert.Equal(t, 2, got)
}

func TestHashMapRemove(t *testing.T) {
	m := NewHashMap[int]()
	for k := uint64(0); k < 10; k++ {
		_, _, err := m.Set(k, int(k)*10)
		require.NoError(t, err)
	}

	v, ok := m.Remove(3)
	require.True(t, ok)
	assert.Equal(t, 30, v)
	assert.Equal(t, 9, m.Len())

	_, ok = m.Get(3)
	assert.False(t, ok)

	_, ok = m.Remove(3)
	assert.False(t, ok, "second remove is a no-op")
	_, ok = m.Remove(999)
	assert.False(t, ok, "removing an absent key is a no-op")
	assert.Equal(t, 9, m.Len())
}

func TestHashMapRemoveOnEmpty(t *testing.T) {
	m := NewHashMap[int]()
	_, ok := m.Remove(1)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

// collidingKeys returns n keys that share the same home slot in a map of the
// given capacity.
func collidingKeys(t *testing.T, n, capacity int) []uint64 {
	t.Helper()
	var keys []uint64
	home := hashKey(0) % uint64(capacity)
	for k := uint64(0); len(keys) < n; k++ {
		if hashKey(k)%uint64(capacity) == home {
			keys = append(keys, k)
		}
		require.Less(t, k, uint64(1<<20), "could not find colliding keys")
	}
	return keys
}

func TestHashMapTombstoneKeepsProbeChain(t *testing.T) {
	m := NewHashMap[string]()
	keys := collidingKeys(t, 3, m.Cap())

	for i, k := range keys {
		_, _, err := m.Set(k, string(rune('a'+i)))
		require.NoError(t, err)
	}

	_, ok := m.Remove(keys[0])
	require.True(t, ok)

	got, ok := m.Get(keys[1])
	require.True(t, ok, "probe chain broken after removal")
	assert.Equal(t, "b", got)
	got, ok = m.Get(keys[2])
	require.True(t, ok)
	assert.Equal(t, "c", got)
}

func TestHashMapReusesTombstone(t *testing.T) {
	m := NewHashMap[int]()
	keys := collidingKeys(t, 2, m.Cap())

	_, _, err := m.Set(keys[0], 1)
	require.NoError(t, err)
	_, _, err = m.Set(keys[1], 2)
	require.NoError(t, err)
	_, ok := m.Remove(keys[0])
	require.True(t, ok)
	assert.Equal(t, 1, m.tombstones)

	_, replaced, err := m.Set(keys[0], 3)
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, 0, m.tombstones, "insert should land on the tombstone")
	assert.Equal(t, 2, m.Len())

	// The reused slot is the home slot, so the key is found without probing.
	home := hashKey(keys[0]) % uint64(m.Cap())
	assert.Equal(t, keys[0], m.slots[home].key)
	assert.Equal(t, slotOccupied, m.slots[home].state)
}

func TestHashMapResizeThreshold(t *testing.T) {
	m := NewHashMap[int]()
	require.Equal(t, 16, m.Cap())

	// (len+1)*4 > cap*3 first holds when len reaches 12, so the first twelve
	// inserts fit and the thirteenth grows the table.
	for k := uint64(1); k <= 12; k++ {
		_, _, err := m.Set(k, int(k))
		require.NoError(t, err)
		assert.Equal(t, 16, m.Cap(), "after insert %d", k)
	}

	_, _, err := m.Set(13, 13)
	require.NoError(t, err)
	assert.Equal(t, 32, m.Cap())

	for k := uint64(1); k <= 13; k++ {
		got, ok := m.Get(k)
		require.True(t, ok, "key %d lost across resize", k)
		assert.Equal(t, int(k), got)
	}
}

func TestHashMapGrowsAndKeepsAllKeys(t *testing.T) {
	m := NewHashMap[uint64]()
	const n = 5000
	for k := uint64(0); k < n; k++ {
		_, _, err := m.Set(k*7919, k)
		require.NoError(t, err)
	}
	assert.Equal(t, n, m.Len())
	assert.Greater(t, m.Cap(), 16)
	assert.LessOrEqual(t, m.Len()*4, m.Cap()*3)

	for k := uint64(0); k < n; k++ {
		got, ok := m.Get(k * 7919)
		require.True(t, ok)
		require.Equal(t, k, got)
	}
}

func TestHashMapMaxCapacityLeavesMapUntouched(t *testing.T) {
	m := NewHashMap[int](WithMaxCapacity(16))
	for k := uint64(0); k < 12; k++ {
		_, _, err := m.Set(k, int(k))
		require.NoError(t, err)
	}

	_, _, err := m.Set(100, 100)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, 16, m.Cap())

	_, ok := m.Get(100)
	assert.False(t, ok)
	for k := uint64(0); k < 12; k++ {
		_, ok := m.Get(k)
		assert.True(t, ok)
	}
}

func TestHashMapChurnPurgesTombstones(t *testing.T) {
	m := NewHashMap[int]()
	for k := uint64(0); k < 10000; k++ {
		_, _, err := m.Set(k, 1)
		require.NoError(t, err)
		_, ok := m.Remove(k)
		require.True(t, ok)
	}
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 16, m.Cap(), "churn at constant size must not grow the table")

	_, ok := m.Get(123456)
	assert.False(t, ok)
}

func TestHashMapIteration(t *testing.T) {
	m := NewHashMap[int]()

	cursor := 0
	_, _, ok := m.Next(&cursor)
	assert.False(t, ok, "iterating an empty map")

	for k := uint64(0); k < 20; k++ {
		_, _, err := m.Set(k, int(k))
		require.NoError(t, err)
	}
	for k := uint64(0); k < 20; k += 2 {
		m.Remove(k)
	}

	seen := map[uint64]int{}
	cursor = 0
	for {
		k, v, ok := m.Next(&cursor)
		if !ok {
			break
		}
		seen[k] = v
	}
	assert.Len(t, seen, 10)
	for k, v := range seen {
		assert.Equal(t, uint64(1), k%2, "removed key %d was yielded", k)
		assert.Equal(t, int(k), v)
	}

	_, _, ok = m.Next(&cursor)
	assert.False(t, ok, "exhausted cursor stays exhausted")
}

func TestHashMapDestroyIsIdempotent(t *testing.T) {
	m := NewHashMap[int]()
	_, _, err := m.Set(1, 1)
	require.NoError(t, err)

	m.Destroy()
	m.Destroy()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Cap())

	cursor := 0
	_, _, ok := m.Next(&cursor)
	assert.False(t, ok)
	_, ok = m.Get(1)
	assert.False(t, ok)
}

func TestHashKeySpreadsSequentialKeys(t *testing.T) {
	const capacity = 1024
	buckets := make(map[uint64]int)
	for k := uint64(0); k < capacity; k++ {
		buckets[hashKey(k)%capacity]++
	}
	// A modulo hash would put every key in its own slot; a clustering hash
	// would leave most slots empty. An avalanche mix lands near 1-1/e.
	assert.Greater(t, len(buckets), capacity/2)
	assert.Less(t, len(buckets), capacity)
}
