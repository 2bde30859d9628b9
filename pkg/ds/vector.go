// Package ds provides the small containers the world engine is built on: a
// growable array, an open-addressing uint64-keyed map, and a string builder
// with inline storage for short contents.
package ds

import "errors"

const (
	vectorInitialCapacity = 8
	vectorGrowthFactor    = 2
)

// ErrIndexOutOfRange is returned by Vector.Set for an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("ds: index out of range")

// Vector is a growable array of element handles. It never releases the
// elements it holds; ownership stays with the caller.
type Vector[T any] struct {
	data []T
	len  int
}

// NewVector returns an empty vector with no backing storage.
func NewVector[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewVectorWithCapacity returns an empty vector able to hold n elements
// before growing.
func NewVectorWithCapacity[T any](n int) *Vector[T] {
	if n <= 0 {
		return NewVector[T]()
	}
	return &Vector[T]{data: make([]T, n)}
}

// Push appends v, doubling capacity when full.
func (v *Vector[T]) Push(elem T) {
	v.ensureCapacity(v.len + 1)
	v.data[v.len] = elem
	v.len++
}

// Pop removes and returns the last element.
func (v *Vector[T]) Pop() (T, bool) {
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	elem := v.data[v.len]
	v.data[v.len] = zero
	return elem, true
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.len {
		var zero T
		return zero, false
	}
	return v.data[i], true
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, elem T) error {
	if i < 0 || i >= v.len {
		return ErrIndexOutOfRange
	}
	v.data[i] = elem
	return nil
}

// Swap exchanges the elements at i and j.
func (v *Vector[T]) Swap(i, j int) error {
	if i < 0 || i >= v.len || j < 0 || j >= v.len {
		return ErrIndexOutOfRange
	}
	v.data[i], v.data[j] = v.data[j], v.data[i]
	return nil
}

// Len reports the number of elements.
func (v *Vector[T]) Len() int { return v.len }

// Cap reports the number of elements the vector can hold without growing.
func (v *Vector[T]) Cap() int { return len(v.data) }

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T]) IsEmpty() bool { return v.len == 0 }

// Clear drops all elements but keeps the storage.
func (v *Vector[T]) Clear() {
	clear(v.data[:v.len])
	v.len = 0
}

// Reserve grows the storage to at least n elements.
func (v *Vector[T]) Reserve(n int) {
	if n <= len(v.data) {
		return
	}
	v.ensureCapacity(n)
}

// ShrinkToFit reallocates the storage to exactly Len elements. An empty
// vector releases its storage entirely.
func (v *Vector[T]) ShrinkToFit() {
	if v.len == len(v.data) {
		return
	}
	if v.len == 0 {
		v.data = nil
		return
	}
	data := make([]T, v.len)
	copy(data, v.data[:v.len])
	v.data = data
}

// All returns the live elements. The slice aliases the vector's storage and
// is valid until the next mutation.
func (v *Vector[T]) All() []T { return v.data[:v.len] }

// Destroy releases the storage. Calling it twice is harmless.
func (v *Vector[T]) Destroy() {
	v.data = nil
	v.len = 0
}

func (v *Vector[T]) ensureCapacity(required int) {
	if required <= len(v.data) {
		return
	}

	capacity := vectorInitialCapacity
	if len(v.data) > 0 {
		capacity = len(v.data) * vectorGrowthFactor
	}
	if capacity < required {
		capacity = required
	}

	data := make([]T, capacity)
	copy(data, v.data[:v.len])
	v.data = data
}
