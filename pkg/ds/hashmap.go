package ds

import "errors"

const (
	hashMapInitialCapacity = 16

	// Resize before an insert would push occupancy past 3/4.
	loadFactorNumerator   = 3
	loadFactorDenominator = 4
)

// ErrCapacityExceeded is returned when a map cannot grow past its configured
// maximum capacity. The map is left unchanged.
var ErrCapacityExceeded = errors.New("ds: map capacity exceeded")

type slotState uint8

const (
	slotEmpty slotState = iota
	slotTombstone
	slotOccupied
)

type slot[V any] struct {
	state slotState
	key   uint64
	value V
}

// HashMap maps uint64 keys to values using open addressing with linear
// probing. Removed entries leave tombstones so that probe chains through them
// stay intact; inserts reuse the first tombstone on their probe path.
type HashMap[V any] struct {
	slots      []slot[V]
	len        int
	tombstones int
	maxCap     int
}

// HashMapOption configures a HashMap.
type HashMapOption func(*hashMapOptions)

type hashMapOptions struct {
	capacity int
	maxCap   int
}

// WithInitialCapacity overrides the default starting capacity of 16.
func WithInitialCapacity(n int) HashMapOption {
	return func(o *hashMapOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithMaxCapacity bounds how far the map may grow. Zero means unbounded.
func WithMaxCapacity(n int) HashMapOption {
	return func(o *hashMapOptions) {
		if n >= 0 {
			o.maxCap = n
		}
	}
}

// NewHashMap allocates a map with the default capacity.
func NewHashMap[V any](opts ...HashMapOption) *HashMap[V] {
	o := hashMapOptions{capacity: hashMapInitialCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	return &HashMap[V]{
		slots:  make([]slot[V], o.capacity),
		maxCap: o.maxCap,
	}
}

// Set inserts or updates key. When the key already existed its previous value
// is returned with replaced set to true.
func (m *HashMap[V]) Set(key uint64, value V) (old V, replaced bool, err error) {
	if len(m.slots) == 0 {
		if err := m.resize(hashMapInitialCapacity); err != nil {
			return old, false, err
		}
	}
	if needsResize(m.len, len(m.slots)) {
		if err := m.resize(len(m.slots) * 2); err != nil {
			return old, false, err
		}
	} else if needsResize(m.len+m.tombstones, len(m.slots)) {
		// Purge tombstones so probes keep terminating on an empty slot.
		if err := m.resize(len(m.slots)); err != nil {
			return old, false, err
		}
	}

	s := findSlot(m.slots, key)
	if s.state == slotOccupied {
		old = s.value
		s.value = value
		return old, true, nil
	}
	if s.state == slotTombstone {
		m.tombstones--
	}

	s.state = slotOccupied
	s.key = key
	s.value = value
	m.len++
	return old, false, nil
}

// Get returns the value stored under key.
func (m *HashMap[V]) Get(key uint64) (V, bool) {
	var zero V
	if m.len == 0 {
		return zero, false
	}
	s := findSlot(m.slots, key)
	if s.state != slotOccupied {
		return zero, false
	}
	return s.value, true
}

// Remove deletes key and returns its value. Removing an absent key is a no-op.
func (m *HashMap[V]) Remove(key uint64) (V, bool) {
	var zero V
	if m.len == 0 {
		return zero, false
	}
	s := findSlot(m.slots, key)
	if s.state != slotOccupied {
		return zero, false
	}
	value := s.value
	s.state = slotTombstone
	s.value = zero
	m.len--
	m.tombstones++
	return value, true
}

// Len reports the number of live entries.
func (m *HashMap[V]) Len() int { return m.len }

// Cap reports the number of slots.
func (m *HashMap[V]) Cap() int { return len(m.slots) }

// Next advances cursor to the next live entry. Start with a zero cursor and
// call until ok is false. Empty and tombstoned slots are skipped.
func (m *HashMap[V]) Next(cursor *int) (key uint64, value V, ok bool) {
	for *cursor < len(m.slots) {
		s := &m.slots[*cursor]
		*cursor++
		if s.state == slotOccupied {
			return s.key, s.value, true
		}
	}
	return 0, value, false
}

// Destroy releases the slots. The map must not be used afterwards except for
// further Destroy calls, which are no-ops.
func (m *HashMap[V]) Destroy() {
	m.slots = nil
	m.len = 0
	m.tombstones = 0
}

func needsResize(length, capacity int) bool {
	return (length+1)*loadFactorDenominator > capacity*loadFactorNumerator
}

func (m *HashMap[V]) resize(capacity int) error {
	if m.maxCap > 0 && capacity > m.maxCap {
		return ErrCapacityExceeded
	}

	slots := make([]slot[V], capacity)
	for i := range m.slots {
		s := &m.slots[i]
		if s.state != slotOccupied {
			continue
		}
		dst := findSlot(slots, s.key)
		*dst = *s
	}
	m.slots = slots
	m.tombstones = 0
	return nil
}

// findSlot returns the slot holding key, or the slot an insert of key should
// use: the first tombstone on the probe path if any, else the terminating
// empty slot. The load factor guarantees an empty slot exists.
func findSlot[V any](slots []slot[V], key uint64) *slot[V] {
	capacity := uint64(len(slots))
	index := hashKey(key) % capacity
	var tombstone *slot[V]

	for {
		s := &slots[index]
		switch s.state {
		case slotEmpty:
			if tombstone != nil {
				return tombstone
			}
			return s
		case slotTombstone:
			if tombstone == nil {
				tombstone = s
			}
		case slotOccupied:
			if s.key == key {
				return s
			}
		}
		index = (index + 1) % capacity
	}
}

// hashKey is the murmur3 64-bit finalizer; sequential keys spread evenly.
func hashKey(key uint64) uint64 {
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}
