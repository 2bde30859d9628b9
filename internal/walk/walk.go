// Package walk moves a player through a world one room at a time, passing
// only through matching doors. The headless tools use it to explore.
package walk

import (
	"fmt"

	"varazs/internal/core"
	"varazs/internal/room"
	"varazs/internal/world"
	rng "varazs/pkg/core"
)

// Walker tracks a player standing in the centre of a room.
type Walker struct {
	w   *world.World
	rng *rng.RNG

	x, y    int32
	moves   int
	blocked int
	visited map[[2]int32]struct{}
}

// New starts a walker at the world's current player cell. r drives random
// steps; it should not be the world's own stream.
func New(w *world.World, r *rng.RNG) *Walker {
	x, y := w.PlayerCell()
	return &Walker{
		w:       w,
		rng:     r,
		x:       x,
		y:       y,
		visited: map[[2]int32]struct{}{{x, y}: {}},
	}
}

// Cell returns the walker's grid position.
func (k *Walker) Cell() (x, y int32) { return k.x, k.y }

// Moves reports how many steps succeeded.
func (k *Walker) Moves() int { return k.moves }

// Blocked reports how many steps hit a wall or an unplaced neighbour.
func (k *Walker) Blocked() int { return k.blocked }

// Visited reports how many distinct rooms the walker has stood in.
func (k *Walker) Visited() int { return len(k.visited) }

// Step tries to move through door d. It returns false without moving when
// the current room has no such door or nothing lies behind it.
func (k *Walker) Step(d room.Door) (bool, error) {
	if !k.open(d) {
		k.blocked++
		return false, nil
	}
	dx, dy := d.Offset()
	k.x, k.y = k.x+dx, k.y+dy
	if err := k.w.Update(k.position()); err != nil {
		return false, err
	}
	k.moves++
	k.visited[[2]int32{k.x, k.y}] = struct{}{}
	return true, nil
}

// Random steps through a uniformly chosen open door. It returns false when
// the walker is boxed in.
func (k *Walker) Random() (bool, error) {
	var open [4]room.Door
	n := 0
	for _, d := range room.Directions {
		if k.open(d) {
			open[n] = d
			n++
		}
	}
	if n == 0 {
		k.blocked++
		return false, nil
	}
	return k.Step(open[k.rng.Range(0, n-1)])
}

// Route walks a scripted list of doors, skipping blocked steps.
func (k *Walker) Route(doors []room.Door) error {
	for _, d := range doors {
		if _, err := k.Step(d); err != nil {
			return err
		}
	}
	return nil
}

func (k *Walker) open(d room.Door) bool {
	here := k.w.Cell(k.x, k.y)
	if here == nil || !here.Template.Doors.Has(d) {
		return false
	}
	dx, dy := d.Offset()
	there := k.w.Cell(k.x+dx, k.y+dy)
	return there != nil && there.Template.Doors.Has(d.Opposite())
}

func (k *Walker) position() core.Vec3 {
	size := k.w.Config().RoomSize
	return core.Vec3{X: float32(k.x) * size, Y: world.SpawnHeight, Z: float32(k.y) * size}
}

// ParseRoute reads a route written as door letters, e.g. "SSEN".
func ParseRoute(s string) ([]room.Door, error) {
	out := make([]room.Door, 0, len(s))
	for i, r := range s {
		d, ok := room.ParseDoors(string(r))
		if !ok || d == room.NoDoors {
			return nil, fmt.Errorf("route %q: bad step %q at %d: %w", s, r, i, core.ErrInvalidArgument)
		}
		out = append(out, d)
	}
	return out, nil
}
