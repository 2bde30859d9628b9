// Package room loads room templates from an asset directory and answers the
// generator's constrained, weighted template queries.
package room

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"varazs/internal/core"
	rng "varazs/pkg/core"
	"varazs/pkg/ds"
)

// ModelExt is the file extension of room model assets.
const ModelExt = ".glb"

// Template is an immutable room blueprint. The registry owns every template
// for as long as it stays loaded; grid cells hold plain pointers to them.
type Template struct {
	Name   string // matched pattern, e.g. "hallway_0"
	Path   string
	Doors  Door
	Weight int
}

// Registry holds the loaded templates. All templates live in the arena until
// UnloadAll; the selectable pool is the subset FindConstrained draws from.
type Registry struct {
	rng   *rng.RNG
	log   *zap.Logger
	table Table

	arena   *ds.Vector[*Template]
	pool    *ds.Vector[*Template]
	matches *ds.Vector[*Template]
	loaded  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithTable replaces the default pattern table.
func WithTable(t Table) Option {
	return func(r *Registry) {
		if len(t) > 0 {
			r.table = t
		}
	}
}

// NewRegistry returns an empty registry drawing from the provided RNG.
func NewRegistry(r *rng.RNG, opts ...Option) *Registry {
	reg := &Registry{
		rng:     r,
		log:     zap.NewNop(),
		table:   DefaultTable,
		arena:   ds.NewVector[*Template](),
		pool:    ds.NewVector[*Template](),
		matches: ds.NewVector[*Template](),
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// LoadAll scans dir for room models, classifies each by file name, and
// returns how many templates were loaded. Unrecognized names are skipped with
// a warning. Calling LoadAll again while loaded returns the current count.
func (r *Registry) LoadAll(dir string) (int, error) {
	if r.loaded {
		r.log.Warn("room templates already loaded", zap.String("dir", dir))
		return r.Count(), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read room directory %s: %w: %w", dir, core.ErrIO, err)
	}

	var path ds.SmallString
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ModelExt) {
			continue
		}

		p, ok := r.table.Classify(name)
		if !ok {
			r.log.Warn("unrecognized room file name", zap.String("file", name))
			continue
		}

		path.AppendString(dir)
		if !strings.HasSuffix(dir, string(os.PathSeparator)) {
			path.AppendByte(os.PathSeparator)
		}
		path.AppendString(name)

		t := &Template{
			Name:   p.Match,
			Path:   path.ToOwned(),
			Doors:  p.Doors,
			Weight: p.Weight,
		}
		r.arena.Push(t)
		r.pool.Push(t)
	}

	r.loaded = true
	r.log.Info("loaded room templates", zap.String("dir", dir), zap.Int("count", r.pool.Len()))
	return r.pool.Len(), nil
}

// UnloadAll drops every template and returns the registry to its unloaded
// state. It is safe to call repeatedly.
func (r *Registry) UnloadAll() {
	if !r.loaded {
		return
	}
	r.arena.Destroy()
	r.pool.Destroy()
	r.matches.Destroy()
	r.loaded = false
	r.log.Info("unloaded room templates")
}

// Loaded reports whether LoadAll has succeeded since the last UnloadAll.
func (r *Registry) Loaded() bool { return r.loaded }

// Count reports how many templates are selectable.
func (r *Registry) Count() int {
	if !r.loaded {
		return 0
	}
	return r.pool.Len()
}

// At returns the i-th selectable template, or nil.
func (r *Registry) At(i int) *Template {
	if !r.loaded {
		return nil
	}
	t, _ := r.pool.Get(i)
	return t
}

// Templates returns every loaded template, including ones removed from the
// selectable pool.
func (r *Registry) Templates() []*Template {
	if !r.loaded {
		return nil
	}
	return append([]*Template(nil), r.arena.All()...)
}

// FindByName returns the first selectable template classified as name.
func (r *Registry) FindByName(name string) *Template {
	if !r.loaded {
		return nil
	}
	for _, t := range r.pool.All() {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindConstrained picks a template that has every door in required and none
// in forbidden, weighted by Template.Weight. When all candidates weigh zero
// the pick is uniform. It returns nil when nothing matches.
func (r *Registry) FindConstrained(required, forbidden Door) *Template {
	if !r.loaded {
		return nil
	}

	r.matches.Clear()
	for _, t := range r.pool.All() {
		if t.Doors.Has(required) && t.Doors&forbidden == 0 {
			r.matches.Push(t)
		}
	}
	return r.pickWeighted(r.matches.All())
}

func (r *Registry) pickWeighted(candidates []*Template) *Template {
	if len(candidates) == 0 {
		return nil
	}

	total := 0
	for _, t := range candidates {
		total += t.Weight
	}
	if total <= 0 {
		return candidates[r.rng.Range(0, len(candidates)-1)]
	}

	roll := r.rng.Range(0, total-1)
	for _, t := range candidates {
		roll -= t.Weight
		if roll < 0 {
			return t
		}
	}
	return candidates[len(candidates)-1]
}

// Remove takes t out of the selectable pool by swapping it with the last
// entry. The template itself stays valid. Unknown or nil templates are
// ignored.
func (r *Registry) Remove(t *Template) {
	if !r.loaded || t == nil {
		return
	}
	for i, cur := range r.pool.All() {
		if cur != t {
			continue
		}
		last, _ := r.pool.Pop()
		if i < r.pool.Len() {
			_ = r.pool.Set(i, last)
		}
		r.log.Debug("removed template from generation pool", zap.String("path", t.Path))
		return
	}
}
