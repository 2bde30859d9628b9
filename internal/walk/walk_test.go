package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"varazs/internal/core"
	"varazs/internal/render"
	"varazs/internal/room"
	"varazs/internal/world"
	rng "varazs/pkg/core"
)

var fullSet = []string{
	"starting_room.glb", "hallway_0.glb", "hallway_90.glb", "cross_room_0.glb",
	"deadend_0.glb", "deadend_90.glb", "deadend_180.glb", "deadend_270.glb",
	"L_room_0.glb", "L_room_90.glb", "L_room_180.glb", "L_room_270.glb",
}

func newWorld(t *testing.T, seed uint64) *world.World {
	t.Helper()
	dir := t.TempDir()
	for _, name := range fullSet {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	w := world.New(world.DefaultConfig(), render.NewHeadless(), nil)
	require.NoError(t, w.Init(seed, dir))
	t.Cleanup(w.Destroy)
	return w
}

func TestStartRoomOnlyOpensSouth(t *testing.T) {
	w := newWorld(t, 42)
	k := New(w, rng.NewRNG(1))

	for _, d := range []room.Door{room.North, room.East, room.West} {
		ok, err := k.Step(d)
		require.NoError(t, err)
		assert.False(t, ok, "door %s", d)
	}
	assert.Equal(t, 3, k.Blocked())
	assert.Zero(t, k.Moves())

	ok, err := k.Step(room.South)
	require.NoError(t, err)
	require.True(t, ok)

	x, y := k.Cell()
	assert.Equal(t, int32(0), x)
	assert.Equal(t, int32(-1), y)
	px, py := w.PlayerCell()
	assert.Equal(t, x, px)
	assert.Equal(t, y, py)
	assert.Equal(t, 2, k.Visited())
}

func TestStepBackReturnsToStart(t *testing.T) {
	w := newWorld(t, 7)
	k := New(w, rng.NewRNG(1))

	require.NoError(t, k.Route([]room.Door{room.South, room.North}))
	x, y := k.Cell()
	assert.Equal(t, int32(0), x)
	assert.Equal(t, int32(0), y)
	assert.Equal(t, 2, k.Moves())
	assert.Equal(t, 2, k.Visited())
}

func TestRandomWalkOnlyUsesMatchingDoors(t *testing.T) {
	for _, seed := range []uint64{1, 42, 123} {
		w := newWorld(t, seed)
		k := New(w, rng.NewRNG(seed+1))

		for i := 0; i < 150; i++ {
			fx, fy := k.Cell()
			ok, err := k.Random()
			require.NoError(t, err)
			require.True(t, ok, "seed %d step %d boxed in", seed, i)

			tx, ty := k.Cell()
			from, to := w.Cell(fx, fy), w.Cell(tx, ty)
			require.NotNil(t, from)
			require.NotNil(t, to)

			var d room.Door
			for _, dir := range room.Directions {
				dx, dy := dir.Offset()
				if fx+dx == tx && fy+dy == ty {
					d = dir
				}
			}
			require.NotEqual(t, room.NoDoors, d, "seed %d step %d moved more than one cell", seed, i)
			assert.True(t, from.Template.Doors.Has(d))
			assert.True(t, to.Template.Doors.Has(d.Opposite()))
		}
		assert.Equal(t, 150, k.Moves())
		assert.Greater(t, k.Visited(), 1)
	}
}

func TestRandomWalkIsDeterministic(t *testing.T) {
	run := func() (int32, int32, string) {
		w := newWorld(t, 99)
		k := New(w, rng.NewRNG(5))
		for i := 0; i < 80; i++ {
			_, err := k.Random()
			require.NoError(t, err)
		}
		x, y := k.Cell()
		return x, y, w.Digest()
	}
	ax, ay, ad := run()
	bx, by, bd := run()
	assert.Equal(t, ax, bx)
	assert.Equal(t, ay, by)
	assert.Equal(t, ad, bd)
}

func TestStepOnDestroyedWorld(t *testing.T) {
	w := newWorld(t, 42)
	k := New(w, rng.NewRNG(1))
	w.Destroy()

	ok, err := k.Step(room.South)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = k.Random()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, k.Blocked())
}

func TestParseRoute(t *testing.T) {
	got, err := ParseRoute("snEW")
	require.NoError(t, err)
	assert.Equal(t, []room.Door{room.South, room.North, room.East, room.West}, got)

	got, err = ParseRoute("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"SX", "-", "N S"} {
		_, err := ParseRoute(bad)
		assert.ErrorIs(t, err, core.ErrInvalidArgument, bad)
	}
}
