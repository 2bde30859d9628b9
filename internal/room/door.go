package room

import "strings"

// Door is a set of openings on the four sides of a room.
type Door uint8

const (
	North Door = 1 << iota // +Y
	South                  // -Y
	East                   // +X
	West                   // -X

	NoDoors  Door = 0
	AllDoors      = North | South | East | West
)

// Directions lists the four single-door values in a fixed order.
var Directions = [4]Door{North, South, East, West}

// Offset returns the grid step that crosses the door.
func (d Door) Offset() (dx, dy int32) {
	switch d {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

// Opposite maps each single door to the door it faces.
func (d Door) Opposite() Door {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return NoDoors
}

// Has reports whether every door in other is also in d.
func (d Door) Has(other Door) bool { return d&other == other }

// String renders the set as letters, e.g. "NE", or "-" when empty.
func (d Door) String() string {
	if d&AllDoors == 0 {
		return "-"
	}
	var b strings.Builder
	for i, dir := range Directions {
		if d&dir != 0 {
			b.WriteByte("NSEW"[i])
		}
	}
	return b.String()
}

// ParseDoors reads a set written as letters from "NSEW" in any order and
// case. Unknown letters are rejected.
func ParseDoors(s string) (Door, bool) {
	var d Door
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'N':
			d |= North
		case 'S':
			d |= South
		case 'E':
			d |= East
		case 'W':
			d |= West
		case '-', ' ':
		default:
			return NoDoors, false
		}
	}
	return d, true
}
