package ds

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallStringStaysInline(t *testing.T) {
	var s SmallString
	s.AppendString("rooms/")
	s.AppendString("a.glb")

	assert.False(t, s.OnHeap())
	assert.Equal(t, smallStringInline, s.Cap())
	assert.Equal(t, "rooms/a.glb", s.String())
	assert.Equal(t, 11, s.Len())
}

func TestSmallStringFillsInlineExactly(t *testing.T) {
	var s SmallString
	s.AppendString(strings.Repeat("x", smallStringInline))
	assert.False(t, s.OnHeap())

	s.AppendByte('y')
	assert.True(t, s.OnHeap())
	assert.Equal(t, smallStringInline*2, s.Cap(), "promotion doubles")
	assert.Equal(t, strings.Repeat("x", smallStringInline)+"y", s.String())
}

func TestSmallStringExactFitWhenDoublingIsShort(t *testing.T) {
	var s SmallString
	long := strings.Repeat("z", 100)
	s.AppendString(long)

	assert.True(t, s.OnHeap())
	assert.Equal(t, 100, s.Cap())
	assert.Equal(t, long, s.String())

	s.AppendString("!")
	assert.Equal(t, 200, s.Cap())
}

func TestSmallStringAppendEmpty(t *testing.T) {
	var s SmallString
	s.Append(nil)
	s.AppendString("")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.String())
}

func TestSmallStringToOwnedResets(t *testing.T) {
	var s SmallString
	s.AppendString("assets/models/rooms/hallway_0.glb")
	require.True(t, s.OnHeap())

	out := s.ToOwned()
	assert.Equal(t, "assets/models/rooms/hallway_0.glb", out)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.OnHeap())
	assert.Equal(t, smallStringInline, s.Cap())

	s.AppendString("next")
	assert.Equal(t, "next", s.String())
	assert.Equal(t, "assets/models/rooms/hallway_0.glb", out, "owned copy is independent")
}

func TestSmallStringNeverShrinksOnAppend(t *testing.T) {
	var s SmallString
	s.Append([]byte(strings.Repeat("a", 40)))
	capBefore := s.Cap()
	s.Append([]byte("b"))
	assert.GreaterOrEqual(t, s.Cap(), capBefore)
}
