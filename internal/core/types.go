package core

import (
	"fmt"
	"sort"
)

// Vec3 is a world-space position. Rooms lie on the X/Z plane; grid Y maps to
// world Z.
type Vec3 struct {
	X, Y, Z float32
}

// Model is an opaque handle issued by a Backend. Zero is never a live handle.
type Model uint32

// Backend is the rendering boundary the world engine drives: it turns an asset
// path into a drawable model, releases it, and draws it.
type Backend interface {
	LoadModel(path string) (Model, error)
	UnloadModel(m Model)
	DrawModel(m Model, pos Vec3, scale float32)
}

// BackendFactory constructs a Backend.
type BackendFactory func() (Backend, error)

var backends = map[string]BackendFactory{}

// RegisterBackend adds a backend factory under the provided name.
func RegisterBackend(name string, f BackendFactory) {
	if name == "" || f == nil {
		return
	}
	backends[name] = f
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend constructs the backend registered under name.
func NewBackend(name string) (Backend, error) {
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("backend %q: %w", name, ErrNotFound)
	}
	return f()
}
