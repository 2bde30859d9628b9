package ds

// smallStringInline is how many bytes fit before the builder moves to the
// heap. It matches the footprint of the heap header (pointer + capacity).
const smallStringInline = 15

// SmallString builds strings without allocating while they stay short.
// Content lives in an inline array until an append would overflow it, then
// moves to a heap buffer that doubles (or grows to an exact fit when doubling
// is not enough). The buffer never shrinks on its own; ToOwned and Reset are
// the only ways back to inline storage.
//
// The zero value is an empty builder ready for use.
type SmallString struct {
	inline [smallStringInline]byte
	heap   []byte
	n      int
	onHeap bool
}

// Append adds b to the end of the string.
func (s *SmallString) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	s.grow(len(b))
	copy(s.buf()[s.n:], b)
	s.n += len(b)
}

// AppendString adds str to the end of the string.
func (s *SmallString) AppendString(str string) {
	if len(str) == 0 {
		return
	}
	s.grow(len(str))
	copy(s.buf()[s.n:], str)
	s.n += len(str)
}

// AppendByte adds a single byte.
func (s *SmallString) AppendByte(c byte) {
	s.grow(1)
	s.buf()[s.n] = c
	s.n++
}

// String returns a copy of the current contents.
func (s *SmallString) String() string {
	return string(s.buf()[:s.n])
}

// Len reports the content length in bytes.
func (s *SmallString) Len() int { return s.n }

// Cap reports how many bytes fit before the next reallocation.
func (s *SmallString) Cap() int {
	if s.onHeap {
		return len(s.heap)
	}
	return smallStringInline
}

// OnHeap reports whether the content has been promoted to a heap buffer.
func (s *SmallString) OnHeap() bool { return s.onHeap }

// ToOwned hands back an exactly sized, independent copy of the contents and
// resets the builder to empty inline storage.
func (s *SmallString) ToOwned() string {
	out := s.String()
	s.Reset()
	return out
}

// Reset empties the builder and releases any heap buffer.
func (s *SmallString) Reset() {
	*s = SmallString{}
}

func (s *SmallString) buf() []byte {
	if s.onHeap {
		return s.heap
	}
	return s.inline[:]
}

func (s *SmallString) grow(additional int) {
	required := s.n + additional
	current := s.Cap()
	if required <= current {
		return
	}

	capacity := current * 2
	if capacity < required {
		capacity = required
	}

	heap := make([]byte, capacity)
	copy(heap, s.buf()[:s.n])
	s.heap = heap
	s.onHeap = true
}
