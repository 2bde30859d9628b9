package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"varazs/internal/core"
	"varazs/internal/grid"
	"varazs/internal/room"
)

// Stats captures the world for the HUD and the headless tools.
func (w *World) Stats() core.StatsSnapshot {
	c := w.counters
	rooms, resident := 0, 0
	if w.initialized {
		rooms, resident = w.grid.Len(), w.grid.Resident()
	}

	return core.StatsSnapshot{Groups: []core.StatGroup{
		{
			Name: "World",
			Stats: []core.Stat{
				core.Uint64Stat("seed", "Seed", w.seed),
				core.IntStat("rooms", "Rooms", rooms),
				core.IntStat("resident", "Resident", resident),
				core.StringStat("player", "Cell", fmt.Sprintf("%d,%d", w.px, w.py)),
			},
		},
		{
			Name: "Generation",
			Stats: []core.Stat{
				core.IntStat("passes", "Passes", c.passes),
				core.IntStat("pass_failures", "Failed", c.passFailures),
				core.IntStat("placed", "Placed", c.placed),
				core.IntStat("last_frontier", "Frontier", c.lastPass.Frontier),
				core.IntStat("last_placed", "Last placed", c.lastPass.Placed),
			},
		},
		{
			Name: "Streaming",
			Stats: []core.Stat{
				core.IntStat("updates", "Moves", c.updates),
				core.IntStat("loads", "Loads", c.loads),
				core.IntStat("unloads", "Unloads", c.unloads),
				core.IntStat("draws", "Draws", c.draws),
			},
		},
	}}
}

// Histogram counts placed rooms per template name.
func (w *World) Histogram() map[string]int {
	out := map[string]int{}
	w.Each(func(c *grid.Cell) bool {
		out[c.Template.Name]++
		return true
	})
	return out
}

// Digest hashes the placed layout so two worlds can be compared. Map order
// does not affect it.
func (w *World) Digest() string {
	type entry struct {
		x, y int32
		name string
	}
	var cells []entry
	w.Each(func(c *grid.Cell) bool {
		cells = append(cells, entry{c.X, c.Y, c.Template.Name})
		return true
	})
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].y != cells[j].y {
			return cells[i].y < cells[j].y
		}
		return cells[i].x < cells[j].x
	})

	h := sha256.New()
	var buf [8]byte
	for _, e := range cells {
		binary.LittleEndian.PutUint32(buf[:4], uint32(e.x))
		binary.LittleEndian.PutUint32(buf[4:], uint32(e.y))
		h.Write(buf[:])
		h.Write([]byte(e.name))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Window rasterises the door masks of the (2r+1)x(2r+1) cells around the
// player into a ByteGrid, north at the top.
func (w *World) Window(r int) *core.ByteGrid {
	if r < 0 {
		r = 0
	}
	return w.Region(int64(w.px)-int64(r), int64(w.py)-int64(r), int64(w.px)+int64(r), int64(w.py)+int64(r))
}

// Region rasterises the cells in the inclusive rectangle [minX,maxX] x
// [minY,maxY]. Row 0 is maxY. Empty cells are zero; placed rooms carry their
// door mask with PlacedBit set so doorless rooms stay visible.
func (w *World) Region(minX, minY, maxX, maxY int64) *core.ByteGrid {
	out := core.NewByteGrid(int(maxX-minX+1), int(maxY-minY+1))
	if !w.initialized {
		return out
	}
	for row := 0; row < out.H; row++ {
		y := maxY - int64(row)
		if y != int64(int32(y)) {
			continue
		}
		for col := 0; col < out.W; col++ {
			x := minX + int64(col)
			if x != int64(int32(x)) {
				continue
			}
			if c := w.grid.Cell(int32(x), int32(y)); c != nil {
				out.Set(col, row, PlacedBit|uint8(c.Template.Doors&room.AllDoors))
			}
		}
	}
	return out
}

// Bounds returns the smallest rectangle holding every placed room.
func (w *World) Bounds() (minX, minY, maxX, maxY int32, ok bool) {
	w.Each(func(c *grid.Cell) bool {
		if !ok {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			ok = true
			return true
		}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
		return true
	})
	return minX, minY, maxX, maxY, ok
}

// PlacedBit marks an occupied cell in a Window or Region raster.
const PlacedBit uint8 = 0x80
