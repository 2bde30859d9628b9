package render

import (
	"strings"

	"varazs/internal/core"
	"varazs/internal/room"
)

// ASCII draws a room raster as text, three characters per cell edge:
//
//	+ +
//	 #
//	+-+
//
// Walls are '-' and '|', doors are gaps and the marked cell shows '@'
// instead of '#'. Pass a negative mark to draw no marker.
func ASCII(g *core.ByteGrid, markX, markY int) string {
	var b strings.Builder
	b.Grow(g.H * 3 * (g.W*3 + 1))

	for row := 0; row < g.H; row++ {
		for line := 0; line < 3; line++ {
			for col := 0; col < g.W; col++ {
				v := g.At(col, row)
				if v == 0 {
					b.WriteString("   ")
					continue
				}
				doors := room.Door(v) & room.AllDoors
				switch line {
				case 0:
					b.WriteString(edge(doors.Has(room.North)))
				case 1:
					b.WriteByte(side(doors.Has(room.West)))
					if col == markX && row == markY {
						b.WriteByte('@')
					} else {
						b.WriteByte('#')
					}
					b.WriteByte(side(doors.Has(room.East)))
				case 2:
					b.WriteString(edge(doors.Has(room.South)))
				}
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func edge(open bool) string {
	if open {
		return "+ +"
	}
	return "+-+"
}

func side(open bool) byte {
	if open {
		return ' '
	}
	return '|'
}
