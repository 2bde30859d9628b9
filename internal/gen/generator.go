// Package gen grows the dungeon outward from already placed rooms.
package gen

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"varazs/internal/core"
	"varazs/internal/grid"
	"varazs/internal/room"
	rng "varazs/pkg/core"
	"varazs/pkg/ds"
)

// ChunkRadius is the half-width of the square scanned by one chunk pass.
const ChunkRadius = 2

// Frontier is an empty cell next to at least one placed room.
type Frontier struct {
	X, Y int32
}

// PassStats summarises one chunk pass.
type PassStats struct {
	Frontier int // frontier cells found in the window
	Placed   int
	Skipped  int // frontier cells with no door leading in, or no template
}

// Generator places rooms into a grid using templates from a registry.
type Generator struct {
	reg  *room.Registry
	grid *grid.Grid
	rng  *rng.RNG
	log  *zap.Logger

	frontier *ds.Vector[Frontier]
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the generator's logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// New wires a generator to its registry, grid and random stream. The RNG
// should be the one the registry draws from so a seed fixes the whole world.
func New(reg *room.Registry, g *grid.Grid, r *rng.RNG, opts ...Option) *Generator {
	gen := &Generator{
		reg:      reg,
		grid:     g,
		rng:      r,
		log:      zap.NewNop(),
		frontier: ds.NewVector[Frontier](),
	}
	for _, opt := range opts {
		opt(gen)
	}
	return gen
}

// Init reseeds the stream, places the starting room at the origin and grows
// the first chunk around it. The starting room is taken out of the pool so
// it is never picked again.
func (g *Generator) Init(seed uint64) error {
	g.rng.Seed(seed)

	start := g.reg.FindByName(room.StartPattern)
	if start == nil {
		g.log.Error("starting room template not found", zap.String("pattern", room.StartPattern))
		return fmt.Errorf("find %s template: %w", room.StartPattern, core.ErrNotFound)
	}
	g.reg.Remove(start)

	if err := g.grid.Place(0, 0, start); err != nil {
		return fmt.Errorf("place starting room: %w", err)
	}
	if err := g.CreateChunk(0, 0); err != nil {
		return fmt.Errorf("initial chunk: %w", err)
	}
	return nil
}

// CreateChunk runs one generation pass over the window centred on (cx, cy).
func (g *Generator) CreateChunk(cx, cy int32) error {
	_, err := g.CreateChunkStats(cx, cy)
	return err
}

// CreateChunkStats is CreateChunk that also reports what the pass did.
// Placements made before a failing one are kept.
func (g *Generator) CreateChunkStats(cx, cy int32) (PassStats, error) {
	var st PassStats

	g.collectFrontier(cx, cy)
	g.shuffleFrontier()
	st.Frontier = g.frontier.Len()

	for _, f := range g.frontier.All() {
		required, forbidden := g.constraints(f.X, f.Y)
		if required == room.NoDoors {
			st.Skipped++
			continue
		}

		t := g.reg.FindConstrained(required, forbidden)
		if t == nil {
			st.Skipped++
			continue
		}
		if err := g.grid.Place(f.X, f.Y, t); err != nil {
			return st, fmt.Errorf("chunk (%d,%d): %w", cx, cy, err)
		}
		st.Placed++
	}

	g.log.Debug("chunk pass",
		zap.Int32("cx", cx),
		zap.Int32("cy", cy),
		zap.Int("frontier", st.Frontier),
		zap.Int("placed", st.Placed),
		zap.Int("skipped", st.Skipped),
	)
	return st, nil
}

func (g *Generator) collectFrontier(cx, cy int32) {
	g.frontier.Clear()
	// Iterate in 64 bits so a window touching the int32 limits terminates.
	for y64 := int64(cy) - ChunkRadius; y64 <= int64(cy)+ChunkRadius; y64++ {
		for x64 := int64(cx) - ChunkRadius; x64 <= int64(cx)+ChunkRadius; x64++ {
			if x64 < math.MinInt32 || x64 > math.MaxInt32 || y64 < math.MinInt32 || y64 > math.MaxInt32 {
				continue
			}
			x, y := int32(x64), int32(y64)
			if g.grid.Occupied(x, y) {
				continue
			}
			if g.grid.Occupied(x, y+1) || g.grid.Occupied(x, y-1) ||
				g.grid.Occupied(x+1, y) || g.grid.Occupied(x-1, y) {
				g.frontier.Push(Frontier{X: x, Y: y})
			}
		}
	}
}

// shuffleFrontier is a Fisher-Yates pass from the last element down to 1.
func (g *Generator) shuffleFrontier() {
	for i := g.frontier.Len() - 1; i > 0; i-- {
		j := g.rng.Range(0, i)
		_ = g.frontier.Swap(i, j)
	}
}

// constraints derives the door masks a room at (x, y) must satisfy. A placed
// neighbour with a door facing (x, y) requires a matching door; any other
// placed neighbour forbids one.
func (g *Generator) constraints(x, y int32) (required, forbidden room.Door) {
	for _, d := range room.Directions {
		dx, dy := d.Offset()
		n := g.grid.Cell(x+dx, y+dy)
		if n == nil {
			continue
		}
		if n.Template.Doors&d.Opposite() != 0 {
			required |= d
		} else {
			forbidden |= d
		}
	}
	return required, forbidden
}
